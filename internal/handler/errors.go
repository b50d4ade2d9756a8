package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/httputil"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// ErrorHandler is installed as echo's HTTPErrorHandler. Handlers and
// middleware return errors; this is the only place they become responses.
func ErrorHandler(logger *slog.Logger, mapper *httputil.ErrorMapper) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		req := c.Request()

		var (
			status int
			body   ErrorBody
		)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body.Error = http.StatusText(he.Code)
			if msg, ok := he.Message.(string); ok && msg != "" {
				body.Error = msg
			}
		} else {
			info := mapper.Map(err)
			status, body.Error, body.Details = info.Status, info.Message, info.Details
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed", "method", req.Method, "path", req.URL.Path, "status", status, "error", err)
		} else {
			logger.Debug("request rejected", "method", req.Method, "path", req.URL.Path, "status", status, "error", err)
		}

		if req.Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 12 << 20
)

// decodeJSON decodes exactly one JSON object into dst, rejecting unknown
// fields. Decoding problems come back as validation errors naming the
// offending field where possible.
func decodeJSON(c echo.Context, dst any, limit int64) error {
	body := http.MaxBytesReader(c.Response(), c.Request().Body, limit)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return bodyError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return apperror.Invalid("body", "json", "body must contain a single JSON object")
	}
	return nil
}

func bodyError(err error) error {
	var (
		typeErr *json.UnmarshalTypeError
		synErr  *json.SyntaxError
		maxErr  *http.MaxBytesError
	)
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return apperror.Invalid(field, "type", "must be of type "+jsonType(typeErr.Type.String()))
	case errors.As(err, &synErr), errors.Is(err, io.ErrUnexpectedEOF):
		return apperror.Invalid("body", "json", "malformed JSON")
	case errors.As(err, &maxErr):
		return apperror.Invalid("body", "size", "request body too large")
	case errors.Is(err, io.EOF):
		return apperror.Invalid("body", "required", "request body is empty")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return apperror.Invalid(field, "unknown", "unknown field")
	}
	return apperror.Invalid("body", "json", err.Error())
}

func jsonType(goType string) string {
	goType = strings.TrimPrefix(goType, "*")
	switch {
	case goType == "string":
		return "string"
	case goType == "bool":
		return "boolean"
	case strings.HasPrefix(goType, "int"), strings.HasPrefix(goType, "uint"), strings.HasPrefix(goType, "float"):
		return "number"
	}
	return "object"
}
