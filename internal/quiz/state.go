package quiz

import "maps"

// Answers maps a question index to the selected choice index.
// Unanswered questions have no entry.
type Answers map[int]int

// Clone returns an independent copy of the answers.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	maps.Copy(out, a)
	return out
}

// Record is the durable snapshot of a section's answers and submission flag.
type Record struct {
	Answers   Answers
	Submitted bool
}

// Phase is the position of a section in its state machine.
type Phase string

const (
	// PhaseUnanswered means no question has a selection.
	PhaseUnanswered Phase = "unanswered"
	// PhaseInProgress means some but not all questions have a selection.
	PhaseInProgress Phase = "in_progress"
	// PhaseComplete means every question has a selection and nothing is graded yet.
	PhaseComplete Phase = "complete"
	// PhaseGraded means the answers were submitted and are locked.
	PhaseGraded Phase = "graded"
)

// phaseOf derives the phase from the answered count and submission flag.
func phaseOf(answered, total int, submitted bool) Phase {
	switch {
	case submitted:
		return PhaseGraded
	case answered == 0:
		return PhaseUnanswered
	case answered < total:
		return PhaseInProgress
	default:
		return PhaseComplete
	}
}
