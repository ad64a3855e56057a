package products

import (
	"fmt"
	"net/http"
)

// APIError is a failed service response.
type APIError struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// Error returns the status and message.
func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Result holds either a value with a success status or an *APIError.
type Result[T any] struct {
	value   T
	status  int
	message string
	err     *APIError
}

// Ok builds a successful result.
func Ok[T any](status int, value T, message string) Result[T] {
	return Result[T]{value: value, status: status, message: message}
}

// Err builds a failed result.
func Err[T any](err *APIError) Result[T] {
	return Result[T]{status: err.Status, message: err.Message, err: err}
}

// IsOk reports whether the result carries a value.
func (r Result[T]) IsOk() bool { return r.err == nil }

// Value returns the success value, or the zero value for failures.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, or nil.
func (r Result[T]) Err() *APIError { return r.err }

// Status returns the HTTP-style status code.
func (r Result[T]) Status() int { return r.status }

// Message returns the optional human message.
func (r Result[T]) Message() string { return r.message }

func notFound[T any]() Result[T] {
	return Err[T](&APIError{Status: http.StatusNotFound, Message: MessageNotFound})
}
