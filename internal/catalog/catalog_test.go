package catalog

import (
	"errors"
	"strings"
	"testing"

	"restlab/internal/question"
)

func TestLoadBuiltinTopics(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []struct {
		id        string
		key       string
		questions int
	}{
		{"principios-rest", "quiz-principios-rest", 6},
		{"endpoints", "quiz-endpoints", 6},
		{"protocolo-http", "quiz-http", 6},
		{"status-codes", "quiz-status-codes", 6},
		{"comparacao", "quiz-comparacao", 4},
	}
	topics := c.Topics()
	if len(topics) != len(want) {
		t.Fatalf("expected %d topics, got %d", len(want), len(topics))
	}
	for i, w := range want {
		topic := topics[i]
		if topic.ID != w.id || topic.Quiz.PersistenceKey != w.key || topic.Quiz.Len() != w.questions {
			t.Fatalf("topic %d: got id=%s key=%s questions=%d", i, topic.ID, topic.Quiz.PersistenceKey, topic.Quiz.Len())
		}
		if len(topic.Sections) == 0 {
			t.Fatalf("topic %s has no sections", topic.ID)
		}
	}
}

func TestBuiltinQuizContent(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	topic, err := c.Lookup("quiz-principios-rest")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if topic.Quiz.Title != "Teste seus conhecimentos sobre Princípios REST" {
		t.Fatalf("unexpected quiz title %q", topic.Quiz.Title)
	}
	first := topic.Quiz.Questions[0]
	if first.CorrectChoice != 1 || len(first.Choices) != 4 {
		t.Fatalf("unexpected first question: %+v", first)
	}
	if first.Explanation == "" {
		t.Fatalf("expected explanation on first question")
	}
}

func TestLookup(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	byID, err := c.Lookup("status-codes")
	if err != nil {
		t.Fatalf("lookup by id: %v", err)
	}
	byKey, err := c.Lookup("quiz-status-codes")
	if err != nil {
		t.Fatalf("lookup by key: %v", err)
	}
	if byID.ID != byKey.ID {
		t.Fatalf("expected same topic, got %s and %s", byID.ID, byKey.ID)
	}
	if _, err := c.Lookup("graphql"); !errors.Is(err, ErrUnknownTopic) {
		t.Fatalf("expected unknown topic error, got %v", err)
	}
}

func TestHTTPTopicCoversEachMethod(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	topic, err := c.Lookup("protocolo-http")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	sections := make(map[string]Section, len(topic.Sections))
	for _, section := range topic.Sections {
		sections[section.Heading] = section
	}
	for _, method := range []string{"GET", "POST", "PUT", "DELETE"} {
		for _, part := range []string{"Quando usar", "Como fazer uma requisição", "Status Codes Comuns", "Características", "Testar"} {
			if _, ok := sections[method+": "+part]; !ok {
				t.Fatalf("missing section %q", method+": "+part)
			}
		}
		demo := sections[method+": Testar"].Code
		if !strings.Contains(demo, "/api/products") {
			t.Fatalf("%s demo does not target the products API: %q", method, demo)
		}
		if method != "GET" && !strings.Contains(demo, "-X "+method) {
			t.Fatalf("%s demo does not use its method: %q", method, demo)
		}
	}
	for _, heading := range []string{"PUT vs PATCH", "Idempotência"} {
		if _, ok := sections[heading]; !ok {
			t.Fatalf("missing section %q", heading)
		}
	}
}

func TestLoadAppendsExtraSets(t *testing.T) {
	extra := question.Set{
		Version:        1,
		Title:          "Extra",
		PersistenceKey: "quiz-extra",
		Questions:      []question.Question{{Prompt: "p", Choices: []string{"a", "b"}}},
	}
	c, err := Load(extra)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	topic, err := c.Lookup("quiz-extra")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if topic.Title != "Extra" || len(topic.Sections) != 0 {
		t.Fatalf("unexpected extra topic: %+v", topic)
	}
	if got := len(c.Topics()); got != 6 {
		t.Fatalf("expected 6 topics, got %d", got)
	}
}

func TestLoadRejectsDuplicateKey(t *testing.T) {
	extra := question.Set{
		Version:        1,
		Title:          "Clash",
		PersistenceKey: "quiz-http",
		Questions:      []question.Question{{Prompt: "p", Choices: []string{"a", "b"}}},
	}
	if _, err := Load(extra); err == nil {
		t.Fatalf("expected duplicate key error")
	}
}

func TestParseTopicRejectsUnknownFields(t *testing.T) {
	data := []byte("id: x\ntitle: X\nsummary: s\nbogus: 1\nquiz:\n  version: 1\n  title: T\n  persistence_key: quiz-x\n  questions:\n    - prompt: p\n      choices: [a, b]\n      correct_choice: 0\n")
	if _, err := ParseTopic(data); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseTopicRejectsInvalidQuiz(t *testing.T) {
	data := []byte("id: x\ntitle: X\nquiz:\n  version: 1\n  title: T\n  persistence_key: quiz-x\n  questions:\n    - prompt: p\n      choices: [a]\n      correct_choice: 0\n")
	var validation *question.ValidationError
	if _, err := ParseTopic(data); !errors.As(err, &validation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseTopicRejectsMultipleDocuments(t *testing.T) {
	data := []byte("id: x\ntitle: X\nquiz:\n  version: 1\n  title: T\n  persistence_key: quiz-x\n  questions:\n    - prompt: p\n      choices: [a, b]\n      correct_choice: 0\n---\nid: y\n")
	if _, err := ParseTopic(data); err == nil || !strings.Contains(err.Error(), "multiple documents") {
		t.Fatalf("expected multiple document error, got %v", err)
	}
}
