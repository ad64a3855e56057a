package progress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"restlab/internal/quiz"
)

// document is the stored JSON shape of a quiz record.
type document struct {
	Answers   map[string]int `json:"answers"`
	Submitted bool           `json:"submitted"`
}

// Records adapts a Backend into a quiz.Store using the JSON record encoding.
type Records struct {
	backend Backend
}

// NewRecords wraps backend.
func NewRecords(backend Backend) *Records {
	return &Records{backend: backend}
}

// Load decodes the record for key. Undecodable values report quiz.ErrMalformed.
func (r *Records) Load(ctx context.Context, key string) (quiz.Record, bool, error) {
	value, ok, err := r.backend.Get(ctx, key)
	if err != nil || !ok {
		return quiz.Record{}, false, err
	}
	record, err := DecodeRecord([]byte(value))
	if err != nil {
		return quiz.Record{}, false, err
	}
	return record, true, nil
}

// Save encodes and stores the record for key.
func (r *Records) Save(ctx context.Context, key string, record quiz.Record) error {
	data, err := EncodeRecord(record)
	if err != nil {
		return err
	}
	return r.backend.Set(ctx, key, string(data))
}

// Clear deletes the record for key.
func (r *Records) Clear(ctx context.Context, key string) error {
	return r.backend.Delete(ctx, key)
}

// EncodeRecord renders a record as {"answers":{"0":1},"submitted":false}.
func EncodeRecord(record quiz.Record) ([]byte, error) {
	doc := document{Answers: make(map[string]int, len(record.Answers)), Submitted: record.Submitted}
	for index, choice := range record.Answers {
		doc.Answers[strconv.Itoa(index)] = choice
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode quiz record: %w", err)
	}
	return data, nil
}

// DecodeRecord parses a stored record, rejecting any other shape.
func DecodeRecord(data []byte) (quiz.Record, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return quiz.Record{}, fmt.Errorf("%w: %v", quiz.ErrMalformed, err)
	}
	if raw == nil {
		return quiz.Record{}, fmt.Errorf("%w: not an object", quiz.ErrMalformed)
	}
	for field := range raw {
		if field != "answers" && field != "submitted" {
			return quiz.Record{}, fmt.Errorf("%w: unexpected field %q", quiz.ErrMalformed, field)
		}
	}
	answersRaw, ok := raw["answers"]
	if !ok || isNull(answersRaw) {
		return quiz.Record{}, fmt.Errorf("%w: answers missing", quiz.ErrMalformed)
	}
	submittedRaw, ok := raw["submitted"]
	if !ok || isNull(submittedRaw) {
		return quiz.Record{}, fmt.Errorf("%w: submitted missing", quiz.ErrMalformed)
	}

	var answers map[string]int
	if err := json.Unmarshal(answersRaw, &answers); err != nil {
		return quiz.Record{}, fmt.Errorf("%w: answers: %v", quiz.ErrMalformed, err)
	}
	var submitted bool
	if err := json.Unmarshal(submittedRaw, &submitted); err != nil {
		return quiz.Record{}, fmt.Errorf("%w: submitted: %v", quiz.ErrMalformed, err)
	}

	record := quiz.Record{Answers: make(quiz.Answers, len(answers)), Submitted: submitted}
	for key, choice := range answers {
		index, err := strconv.Atoi(key)
		if err != nil || index < 0 || strconv.Itoa(index) != key {
			return quiz.Record{}, fmt.Errorf("%w: answer key %q is not an index", quiz.ErrMalformed, key)
		}
		record.Answers[index] = choice
	}
	return record, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
