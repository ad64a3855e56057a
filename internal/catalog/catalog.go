// Package catalog holds the built-in REST course topics and their quizzes.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"restlab/internal/question"
)

//go:embed topics/*.yml
var topicFiles embed.FS

// ErrUnknownTopic reports a lookup that matched no topic.
var ErrUnknownTopic = errors.New("unknown topic")

// Topic is one lesson page with its quiz.
type Topic struct {
	ID       string       `yaml:"id"`
	Title    string       `yaml:"title"`
	Summary  string       `yaml:"summary"`
	Sections []Section    `yaml:"sections"`
	Quiz     question.Set `yaml:"quiz"`
}

// Section is a headed block of lesson text. Code holds a verbatim request
// or command example.
type Section struct {
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
	Table      *Table   `yaml:"table,omitempty"`
	Code       string   `yaml:"code,omitempty"`
}

// Table is a simple header plus rows grid.
type Table struct {
	Header []string   `yaml:"header"`
	Rows   [][]string `yaml:"rows"`
}

// Catalog is an ordered, read-only set of topics.
type Catalog struct {
	topics []Topic
	index  map[string]int
}

// Load parses the embedded topics and appends extra quiz sets as bare topics.
func Load(extra ...question.Set) (*Catalog, error) {
	names, err := fs.Glob(topicFiles, "topics/*.yml")
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	sort.Strings(names)
	topics := make([]Topic, 0, len(names)+len(extra))
	for _, name := range names {
		data, err := topicFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read topic: %w", err)
		}
		topic, err := ParseTopic(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path.Base(name), err)
		}
		topics = append(topics, topic)
	}
	for _, set := range extra {
		topics = append(topics, Topic{ID: set.PersistenceKey, Title: set.Title, Quiz: set})
	}
	return New(topics)
}

// New builds a catalog from topics, rejecting duplicate ids or quiz keys.
func New(topics []Topic) (*Catalog, error) {
	sets := make([]question.Set, 0, len(topics))
	for _, topic := range topics {
		sets = append(sets, topic.Quiz)
	}
	if err := question.CheckUniqueKeys(sets); err != nil {
		return nil, err
	}
	c := &Catalog{topics: topics, index: make(map[string]int, len(topics)*2)}
	for i, topic := range topics {
		if _, exists := c.index[topic.ID]; exists {
			return nil, fmt.Errorf("duplicate topic id %q", topic.ID)
		}
		c.index[topic.ID] = i
	}
	for i, topic := range topics {
		if owner, exists := c.index[topic.Quiz.PersistenceKey]; exists && owner != i {
			return nil, fmt.Errorf("quiz key %q collides with topic id %q", topic.Quiz.PersistenceKey, topics[owner].ID)
		}
		c.index[topic.Quiz.PersistenceKey] = i
	}
	return c, nil
}

// ParseTopic decodes one topic document and validates its quiz.
func ParseTopic(data []byte) (Topic, error) {
	var topic Topic
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&topic); err != nil {
		return Topic{}, fmt.Errorf("parse topic: %w", err)
	}
	if err := decoder.Decode(new(yaml.Node)); err != io.EOF {
		return Topic{}, errors.New("parse topic: multiple documents are not supported")
	}
	topic.ID = strings.TrimSpace(topic.ID)
	topic.Title = strings.TrimSpace(topic.Title)
	if !question.ValidKey(topic.ID) {
		return Topic{}, fmt.Errorf("invalid topic id %q", topic.ID)
	}
	if topic.Title == "" {
		return Topic{}, errors.New("topic title is required")
	}
	set, err := question.NormalizeSet(topic.Quiz)
	if err != nil {
		return Topic{}, err
	}
	topic.Quiz = set
	return topic, nil
}

// Topics returns the topics in catalog order.
func (c *Catalog) Topics() []Topic {
	out := make([]Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// Lookup resolves a topic by id or quiz persistence key.
func (c *Catalog) Lookup(name string) (Topic, error) {
	if i, ok := c.index[strings.TrimSpace(name)]; ok {
		return c.topics[i], nil
	}
	return Topic{}, fmt.Errorf("%w %q", ErrUnknownTopic, name)
}
