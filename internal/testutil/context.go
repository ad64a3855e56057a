package testutil

import (
	"context"
	"testing"
	"time"
)

// Context returns a context cancelled after timeout or when the test ends,
// whichever comes first. A non-positive timeout means two seconds.
func Context(t testing.TB, timeout time.Duration) context.Context {
	t.Helper()
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)
	return ctx
}
