package quiz

// Labels shown by front ends.
const (
	ProgressPrompt = "Answer every question to check your answers"
	BadgeCorrect   = "Correct!"
	BadgeIncorrect = "Incorrect"
)

// View is a render-ready snapshot of a section.
type View struct {
	Title     string
	Key       string
	Phase     Phase
	Answered  int
	Total     int
	Questions []QuestionView
	// Progress is set only while the answers are not graded.
	Progress *Progress
	// Outcome is set only once the answers are graded.
	Outcome   *Outcome
	CanSelect bool
	CanSubmit bool
	CanReset  bool
}

// Progress describes completion before grading.
type Progress struct {
	Percent int
	// Prompt is empty once every question is answered.
	Prompt string
}

// Outcome is the aggregate grading shown after submission.
type Outcome struct {
	Score   int
	Total   int
	Percent int
	Status  Status
	Message string
}

// QuestionView presents one question in its supplied order.
type QuestionView struct {
	Number   int
	Prompt   string
	Choices  []string
	Selected int
	Answered bool
	// Grade is set only once the answers are graded.
	Grade *QuestionGrade
}

// QuestionGrade is the per-question correctness revealed after submission.
type QuestionGrade struct {
	Correct     bool
	Badge       string
	Explanation string
}

// View returns a snapshot of the section for rendering.
func (s *Section) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.set.Questions)
	answered := len(s.answers)
	view := View{
		Title:     s.set.Title,
		Key:       s.set.PersistenceKey,
		Phase:     phaseOf(answered, total, s.submitted),
		Answered:  answered,
		Total:     total,
		Questions: make([]QuestionView, 0, total),
		CanSelect: !s.submitted,
		CanSubmit: s.canSubmitLocked(),
		CanReset:  s.submitted,
	}

	var result Result
	if s.submitted {
		result = Grade(s.set, s.answers)
		view.Outcome = &Outcome{
			Score:   result.Score,
			Total:   result.Total,
			Percent: result.Percent(),
			Status:  result.Status(),
			Message: result.Message(),
		}
	} else {
		progress := &Progress{Percent: roundedPercent(answered, total)}
		if answered < total {
			progress.Prompt = ProgressPrompt
		}
		view.Progress = progress
	}

	for i, q := range s.set.Questions {
		selected, ok := s.answers[i]
		qv := QuestionView{
			Number:   i + 1,
			Prompt:   q.Prompt,
			Choices:  append([]string(nil), q.Choices...),
			Selected: -1,
			Answered: ok,
		}
		if ok {
			qv.Selected = selected
		}
		if s.submitted {
			grade := &QuestionGrade{
				Correct:     result.Correct[i],
				Badge:       BadgeIncorrect,
				Explanation: q.Explanation,
			}
			if grade.Correct {
				grade.Badge = BadgeCorrect
			}
			qv.Grade = grade
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}
