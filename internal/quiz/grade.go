package quiz

import "restlab/internal/question"

// Status is the aggregate presentation of a graded section.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
)

// Outcome messages shown with the aggregate status.
const (
	MessagePassed = "Congratulations! You have mastered this content."
	MessageFailed = "Review the content and try again."
)

// Pass threshold expressed as a fraction, score/total >= 7/10.
const (
	passNumerator   = 7
	passDenominator = 10
)

// Result is the derived grading of an answer state.
type Result struct {
	Correct []bool
	Score   int
	Total   int
	Passed  bool
}

// Grade computes per-question correctness and the aggregate score.
// The result depends only on answers and the set's correct choices.
func Grade(set question.Set, answers Answers) Result {
	total := len(set.Questions)
	result := Result{Correct: make([]bool, total), Total: total}
	for i := range set.Questions {
		if choice, ok := answers[i]; ok && set.IsCorrect(i, choice) {
			result.Correct[i] = true
			result.Score++
		}
	}
	result.Passed = Passed(result.Score, total)
	return result
}

// Passed reports whether score out of total meets the pass threshold.
func Passed(score, total int) bool {
	if total <= 0 {
		return false
	}
	return score*passDenominator >= total*passNumerator
}

// Status returns the aggregate status for the result.
func (r Result) Status() Status {
	if r.Passed {
		return StatusSuccess
	}
	return StatusWarning
}

// Message returns the aggregate message for the result.
func (r Result) Message() string {
	if r.Passed {
		return MessagePassed
	}
	return MessageFailed
}

// Percent returns the rounded score percentage.
func (r Result) Percent() int {
	return roundedPercent(r.Score, r.Total)
}

// roundedPercent returns round(100*part/whole) with halves rounded up.
func roundedPercent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (200*part + whole) / (2 * whole)
}
