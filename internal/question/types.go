package question

// Set is an ordered, immutable collection of questions stored under one key.
type Set struct {
	Version        int        `json:"version" yaml:"version"`
	Title          string     `json:"title" yaml:"title"`
	PersistenceKey string     `json:"persistence_key" yaml:"persistence_key"`
	Questions      []Question `json:"questions" yaml:"questions"`
}

// Question represents a single multiple-choice item with one correct choice.
type Question struct {
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Choices       []string `json:"choices" yaml:"choices"`
	CorrectChoice int      `json:"correct_choice" yaml:"correct_choice"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Len returns the number of questions in the set.
func (s Set) Len() int {
	return len(s.Questions)
}

// IsCorrect reports whether choice is the correct answer for question index.
func (s Set) IsCorrect(index, choice int) bool {
	if index < 0 || index >= len(s.Questions) {
		return false
	}
	return s.Questions[index].CorrectChoice == choice
}
