// Package apperror defines the error taxonomy shared by the repository,
// service and handler layers. Handlers never build status codes from
// storage errors directly; they map these values through httputil.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when an operation references an id the store
	// does not hold.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized covers missing, malformed or expired admin tokens and
	// rejected login attempts.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when a valid token lacks the required role.
	ErrForbidden = errors.New("forbidden")
	// ErrUpstream marks failures of the document store, image host or broker.
	ErrUpstream = errors.New("upstream failure")
	// ErrUnavailable is returned by optional collaborators that were not
	// configured (image host without credentials, leaderboard without Redis).
	ErrUnavailable = errors.New("service unavailable")
)

// FieldError names one offending field and the rule it broke.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// ValidationError lists every field that failed validation. No write happens
// when one is returned.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, rule, msg string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: msg}}}
}

// UpstreamError wraps a collaborator failure with the operation that
// triggered it. errors.Is(err, ErrUpstream) holds for every UpstreamError.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string        { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *UpstreamError) Unwrap() error        { return e.Err }
func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// Upstream wraps err as an UpstreamError unless it is nil or already part of
// the taxonomy (not found, validation), which pass through unchanged.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUpstream) || errors.As(err, &ve) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
