package question

import (
	"fmt"
	"regexp"
	"strings"
)

// MinChoices is the smallest number of choices a question may offer.
const MinChoices = 2

var keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Issue captures a validation problem in a question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question set validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// ValidKey reports whether key can name a persisted record in every backend.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// NormalizeSet trims whitespace and validates a question set.
func NormalizeSet(set Set) (Set, error) {
	collector := &issueCollector{}
	if set.Version == 0 {
		collector.add("version", "is required")
	} else if set.Version != 1 {
		collector.add("version", fmt.Sprintf("unsupported version %d", set.Version))
	}

	set.Title = strings.TrimSpace(set.Title)
	if set.Title == "" {
		collector.add("title", "is required")
	}
	set.PersistenceKey = strings.TrimSpace(set.PersistenceKey)
	if set.PersistenceKey == "" {
		collector.add("persistence_key", "is required")
	} else if !ValidKey(set.PersistenceKey) {
		collector.add("persistence_key", fmt.Sprintf("invalid key %q (expected lowercase letters, digits, '.', '_' or '-')", set.PersistenceKey))
	}
	if len(set.Questions) == 0 {
		collector.add("questions", "must include at least one entry")
	}

	questions := make([]Question, len(set.Questions))
	for i, question := range set.Questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		question.Prompt = strings.TrimSpace(question.Prompt)
		if question.Prompt == "" {
			collector.add(prefix+".prompt", "is required")
		}
		question.Explanation = strings.TrimSpace(question.Explanation)

		question.Choices = normalizeStringSlice(question.Choices)
		if len(question.Choices) < MinChoices {
			collector.add(prefix+".choices", fmt.Sprintf("must include at least %d entries", MinChoices))
		}
		for choiceIndex, choice := range question.Choices {
			if choice == "" {
				collector.add(fmt.Sprintf("%s.choices[%d]", prefix, choiceIndex), "is required")
			}
		}
		if question.CorrectChoice < 0 || question.CorrectChoice >= len(question.Choices) {
			collector.add(prefix+".correct_choice", fmt.Sprintf("index %d out of range for %d choices", question.CorrectChoice, len(question.Choices)))
		}
		questions[i] = question
	}
	set.Questions = questions

	if err := collector.result(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// CheckUniqueKeys reports sets that share a persistence key.
func CheckUniqueKeys(sets []Set) error {
	collector := &issueCollector{}
	seen := map[string]int{}
	for i, set := range sets {
		if first, exists := seen[set.PersistenceKey]; exists {
			collector.add(fmt.Sprintf("sets[%d].persistence_key", i), fmt.Sprintf("duplicate key %q (first used by sets[%d])", set.PersistenceKey, first))
			continue
		}
		seen[set.PersistenceKey] = i
	}
	return collector.result()
}

func normalizeStringSlice(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		normalized = append(normalized, strings.TrimSpace(value))
	}
	return normalized
}
