// Package progress stores quiz records in durable key-value backends.
package progress

import (
	"context"
	"errors"
	"fmt"

	"restlab/internal/question"
)

// Backend is synchronous text storage keyed by persistence key.
type Backend interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// ErrInvalidKey reports a key that cannot be stored safely.
var ErrInvalidKey = errors.New("progress: invalid key")

// checkKey rejects keys outside the persistence key pattern.
func checkKey(key string) error {
	if !question.ValidKey(key) {
		return fmt.Errorf("%w %q", ErrInvalidKey, key)
	}
	return nil
}
