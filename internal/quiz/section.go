package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"restlab/internal/question"
)

var (
	// ErrGraded reports a selection or submission after the answers were graded.
	ErrGraded = errors.New("quiz: answers are already graded")
	// ErrIncomplete reports a submission before every question was answered.
	ErrIncomplete = errors.New("quiz: not every question is answered")
	// ErrNotGraded reports a reset before the answers were graded.
	ErrNotGraded = errors.New("quiz: answers are not graded")
	// ErrQuestionRange reports a question index outside the set.
	ErrQuestionRange = errors.New("quiz: question index out of range")
	// ErrChoiceRange reports a choice index outside the question's choices.
	ErrChoiceRange = errors.New("quiz: choice index out of range")
)

// Section is one quiz instance bound to a question set and its persistence key.
type Section struct {
	mu        sync.Mutex
	set       question.Set
	store     Store
	recorder  Recorder
	logger    *zap.Logger
	answers   Answers
	submitted bool
}

// Option configures a Section.
type Option func(*Section)

// WithLogger routes swallowed storage failures to logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Section) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder hands graded attempts to recorder.
func WithRecorder(recorder Recorder) Option {
	return func(s *Section) {
		s.recorder = recorder
	}
}

// Open validates set and restores any saved state for its persistence key.
// Missing or unusable saved state starts the section fresh.
func Open(ctx context.Context, set question.Set, store Store, opts ...Option) (*Section, error) {
	normalized, err := question.NormalizeSet(set)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("quiz: store is nil")
	}
	s := &Section{
		set:     normalized,
		store:   store,
		logger:  zap.NewNop(),
		answers: Answers{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("quiz", normalized.PersistenceKey))
	s.restore(ctx)
	return s, nil
}

// restore loads the persisted record, discarding it when it does not fit the set.
func (s *Section) restore(ctx context.Context) {
	record, ok, err := s.store.Load(ctx, s.set.PersistenceKey)
	if err != nil {
		s.logger.Warn("discarding saved quiz state", zap.Error(err))
		return
	}
	if !ok {
		return
	}
	if err := checkRecord(s.set, record); err != nil {
		s.logger.Warn("discarding saved quiz state", zap.Error(err))
		return
	}
	s.answers = record.Answers.Clone()
	s.submitted = record.Submitted
	s.logger.Debug("restored quiz state",
		zap.Int("answered", len(s.answers)),
		zap.Bool("submitted", s.submitted),
	)
}

// checkRecord verifies a record's shape against the question set.
func checkRecord(set question.Set, record Record) error {
	for index, choice := range record.Answers {
		if index < 0 || index >= len(set.Questions) {
			return fmt.Errorf("%w: question %d", ErrQuestionRange, index)
		}
		if choice < 0 || choice >= len(set.Questions[index].Choices) {
			return fmt.Errorf("%w: question %d choice %d", ErrChoiceRange, index, choice)
		}
	}
	if record.Submitted && len(record.Answers) != len(set.Questions) {
		return fmt.Errorf("%w: submitted with %d of %d answers", ErrMalformed, len(record.Answers), len(set.Questions))
	}
	return nil
}

// Set returns the section's question set.
func (s *Section) Set() question.Set {
	return s.set
}

// Key returns the section's persistence key.
func (s *Section) Key() string {
	return s.set.PersistenceKey
}

// Record returns a copy of the current answers and submission flag.
func (s *Section) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Record{Answers: s.answers.Clone(), Submitted: s.submitted}
}

// Phase returns the current state machine phase.
func (s *Section) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return phaseOf(len(s.answers), len(s.set.Questions), s.submitted)
}

// CanSelect reports whether selections are accepted.
func (s *Section) CanSelect() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.submitted
}

// CanSubmit reports whether every question is answered and nothing is graded yet.
func (s *Section) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canSubmitLocked()
}

func (s *Section) canSubmitLocked() bool {
	return !s.submitted && len(s.answers) == len(s.set.Questions)
}

// CanReset reports whether the answers are graded and may be cleared.
func (s *Section) CanReset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Select records choice for the question at index, replacing any earlier choice.
func (s *Section) Select(ctx context.Context, index, choice int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrGraded
	}
	if index < 0 || index >= len(s.set.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionRange, index)
	}
	if choice < 0 || choice >= len(s.set.Questions[index].Choices) {
		return fmt.Errorf("%w: %d", ErrChoiceRange, choice)
	}
	s.answers[index] = choice
	s.persistLocked(ctx)
	return nil
}

// Submit locks the answers for grading.
func (s *Section) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return ErrGraded
	}
	if !s.canSubmitLocked() {
		return ErrIncomplete
	}
	s.submitted = true
	s.persistLocked(ctx)
	s.recordLocked(ctx)
	return nil
}

// Reset clears the answers and removes the saved record.
func (s *Section) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.submitted {
		return ErrNotGraded
	}
	s.answers = Answers{}
	s.submitted = false
	if err := s.store.Clear(ctx, s.set.PersistenceKey); err != nil {
		s.logger.Warn("clear quiz state failed", zap.Error(err))
	}
	return nil
}

// persistLocked writes the full record; failures leave progress unsaved.
func (s *Section) persistLocked(ctx context.Context) {
	record := Record{Answers: s.answers.Clone(), Submitted: s.submitted}
	if err := s.store.Save(ctx, s.set.PersistenceKey, record); err != nil {
		s.logger.Warn("save quiz state failed", zap.Error(err))
	}
}

// recordLocked reports the graded attempt to the recorder, if any.
func (s *Section) recordLocked(ctx context.Context) {
	if s.recorder == nil {
		return
	}
	result := Grade(s.set, s.answers)
	attempt := Attempt{
		Key:    s.set.PersistenceKey,
		Title:  s.set.Title,
		Score:  result.Score,
		Total:  result.Total,
		Passed: result.Passed,
	}
	if err := s.recorder.Record(ctx, attempt); err != nil {
		s.logger.Warn("record quiz attempt failed", zap.Error(err))
	}
}
