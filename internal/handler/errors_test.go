package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/httputil"
	"github.com/iliyamo/storefront-api/internal/logging"
	"github.com/iliyamo/storefront-api/internal/model"
)

func decode(t *testing.T, body string, dst any) error {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c := e.NewContext(req, httptest.NewRecorder())
	return decodeJSON(c, dst, maxJSONBody)
}

func firstField(t *testing.T, err error) apperror.FieldError {
	t.Helper()
	var ve *apperror.ValidationError
	require.True(t, errors.As(err, &ve), "expected validation error, got %v", err)
	require.NotEmpty(t, ve.Fields)
	return ve.Fields[0]
}

func TestDecodeJSON(t *testing.T) {
	var in model.ReservationInput
	require.NoError(t, decode(t, `{"customerName":"Ali","partySize":4}`, &in))
	assert.Equal(t, 4, in.PartySize)

	cases := map[string]struct {
		body  string
		field string
		rule  string
	}{
		"type mismatch": {`{"partySize":"four"}`, "partySize", "type"},
		"unknown field": {`{"status":"confirmed"}`, "status", "unknown"},
		"malformed":     {`{"partySize":`, "body", "json"},
		"empty":         {``, "body", "required"},
		"trailing data": {`{"partySize":1}{"partySize":2}`, "body", "json"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var in model.ReservationInput
			fe := firstField(t, decode(t, tc.body, &in))
			assert.Equal(t, tc.field, fe.Field)
			assert.Equal(t, tc.rule, fe.Rule)
		})
	}
}

func TestDecodeJSONSizeLimit(t *testing.T) {
	e := echo.New()
	body := `{"name":"` + strings.Repeat("a", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c := e.NewContext(req, httptest.NewRecorder())
	var in model.MenuItemInput
	fe := firstField(t, decodeJSON(c, &in, 16))
	assert.Equal(t, "size", fe.Rule)
}

func TestErrorHandler(t *testing.T) {
	h := ErrorHandler(logging.Discard(), httputil.DefaultMapper())

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("menu x: %w", apperror.ErrNotFound), http.StatusNotFound, `{"error":"not found"}`},
		{apperror.ErrUnauthorized, http.StatusUnauthorized, `{"error":"unauthorized"}`},
		{apperror.Invalid("rating", "max", "must be at most 5"), http.StatusBadRequest,
			`{"error":"validation failed","details":[{"field":"rating","rule":"max","message":"must be at most 5"}]}`},
		{apperror.Upstream("menu_items.find", errors.New("connection reset")), http.StatusBadGateway, `{"error":"upstream service failure"}`},
		{errors.New("boom"), http.StatusInternalServerError, `{"error":"internal server error"}`},
		{echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded"), http.StatusTooManyRequests, `{"error":"rate limit exceeded"}`},
		{echo.ErrNotFound, http.StatusNotFound, `{"error":"Not Found"}`},
	}
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/x", nil), rec)
		h(tc.err, c)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, rec.Body.String(), tc.err.Error())
	}
}

func TestVisible(t *testing.T) {
	active := model.GalleryImage{ID: "1", IsActive: true}
	hidden := model.GalleryImage{ID: "2"}
	assert.True(t, visible(active, activeOnly))
	assert.False(t, visible(hidden, activeOnly))
	assert.True(t, visible(hidden, nil))
}
