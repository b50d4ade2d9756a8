// Package httputil resolves service errors into the status and message an
// HTTP response carries.
package httputil

import (
	"context"
	"errors"
	"net/http"

	"github.com/iliyamo/storefront-api/internal/apperror"
)

// Response is the resolved form of one error.
type Response struct {
	Status  int
	Message string
	Details any
}

type rule struct {
	target  error
	status  int
	message string
}

// ErrorMapper resolves errors against an ordered list of sentinels. The
// first sentinel matched by errors.Is wins; anything unmatched is a 500.
type ErrorMapper struct {
	rules []rule
}

// DefaultMapper knows the apperror taxonomy. Auth failures share one
// message so clients cannot tell which credential was wrong.
func DefaultMapper() *ErrorMapper {
	m := &ErrorMapper{}
	m.Register(apperror.ErrNotFound, http.StatusNotFound, "not found")
	m.Register(apperror.ErrUnauthorized, http.StatusUnauthorized, "unauthorized")
	m.Register(apperror.ErrForbidden, http.StatusForbidden, "forbidden")
	m.Register(apperror.ErrUnavailable, http.StatusServiceUnavailable, "service unavailable")
	m.Register(apperror.ErrUpstream, http.StatusBadGateway, "upstream service failure")
	m.Register(context.DeadlineExceeded, http.StatusGatewayTimeout, "request timeout")
	m.Register(context.Canceled, http.StatusServiceUnavailable, "request cancelled")
	return m
}

// Register appends a sentinel. Earlier registrations take precedence.
func (m *ErrorMapper) Register(target error, status int, message string) {
	m.rules = append(m.rules, rule{target: target, status: status, message: message})
}

// Map resolves err. Validation errors always become 400 with the offending
// fields as details.
func (m *ErrorMapper) Map(err error) Response {
	if err == nil {
		return Response{Status: http.StatusOK}
	}
	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		return Response{Status: http.StatusBadRequest, Message: "validation failed", Details: ve.Fields}
	}
	for _, r := range m.rules {
		if errors.Is(err, r.target) {
			return Response{Status: r.status, Message: r.message}
		}
	}
	return Response{Status: http.StatusInternalServerError, Message: "internal server error"}
}
