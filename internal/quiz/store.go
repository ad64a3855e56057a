package quiz

import (
	"context"
	"errors"
)

// ErrMalformed reports a stored record that cannot be decoded.
var ErrMalformed = errors.New("malformed quiz record")

// Store persists section records by persistence key.
type Store interface {
	// Load returns the record for key and whether one exists.
	Load(ctx context.Context, key string) (Record, bool, error)
	// Save replaces the record for key.
	Save(ctx context.Context, key string, record Record) error
	// Clear removes the record for key; clearing a missing key is not an error.
	Clear(ctx context.Context, key string) error
}

// Attempt summarizes one graded submission.
type Attempt struct {
	Key    string
	Title  string
	Score  int
	Total  int
	Passed bool
}

// Recorder receives graded attempts for local pass/fail counts.
type Recorder interface {
	Record(ctx context.Context, attempt Attempt) error
}
