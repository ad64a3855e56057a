package quiz

import (
	"context"
	"errors"
	"sync"

	"restlab/internal/question"
)

// memStore is an in-memory Store with optional failure injection.
type memStore struct {
	mu      sync.Mutex
	records map[string]Record
	loadErr error
	saveErr error
	saves   int
	clears  int
}

func newMemStore() *memStore {
	return &memStore{records: map[string]Record{}}
}

func (m *memStore) Load(_ context.Context, key string) (Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return Record{}, false, m.loadErr
	}
	record, ok := m.records[key]
	if !ok {
		return Record{}, false, nil
	}
	return Record{Answers: record.Answers.Clone(), Submitted: record.Submitted}, true, nil
}

func (m *memStore) Save(_ context.Context, key string, record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records[key] = Record{Answers: record.Answers.Clone(), Submitted: record.Submitted}
	return nil
}

func (m *memStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.saveErr != nil {
		return m.saveErr
	}
	delete(m.records, key)
	return nil
}

func (m *memStore) get(key string) (Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[key]
	return record, ok
}

// recorderFunc adapts a function to Recorder.
type recorderFunc func(ctx context.Context, attempt Attempt) error

func (f recorderFunc) Record(ctx context.Context, attempt Attempt) error {
	return f(ctx, attempt)
}

var errStorageDown = errors.New("storage unavailable")

// twoQuestionSet builds the reference set with correct choices [1, 0].
func twoQuestionSet() question.Set {
	return question.Set{
		Version:        1,
		Title:          "REST check",
		PersistenceKey: "quiz-test",
		Questions: []question.Question{
			{
				Prompt:        "Which method reads a resource?",
				Choices:       []string{"POST", "GET", "DELETE"},
				CorrectChoice: 1,
				Explanation:   "GET is safe and reads state.",
			},
			{
				Prompt:        "Which status means created?",
				Choices:       []string{"201", "204"},
				CorrectChoice: 0,
			},
		},
	}
}

// setOfSize builds a set of n questions whose correct choice is always 0.
func setOfSize(n int) question.Set {
	set := question.Set{Version: 1, Title: "sized", PersistenceKey: "quiz-sized"}
	for i := 0; i < n; i++ {
		set.Questions = append(set.Questions, question.Question{
			Prompt:        "question",
			Choices:       []string{"right", "wrong"},
			CorrectChoice: 0,
		})
	}
	return set
}
