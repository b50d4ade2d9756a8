package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/repository"
	"github.com/iliyamo/storefront-api/internal/service"
)

// ContentHandler exposes one content collection over HTTP.
type ContentHandler[E service.Record, I model.Builder[E], P model.Patch] struct {
	Service *service.Content[E, I, P]
	// Filters are query parameters accepted as equality filters on lists.
	Filters []string
	// Public is merged into every public read; records that do not match are
	// invisible to public clients, including by id.
	Public repository.Filter
}

func NewContentHandler[E service.Record, I model.Builder[E], P model.Patch](svc *service.Content[E, I, P], public repository.Filter, filters ...string) *ContentHandler[E, I, P] {
	return &ContentHandler[E, I, P]{Service: svc, Filters: filters, Public: public}
}

func (h *ContentHandler[E, I, P]) queryFilter(c echo.Context) repository.Filter {
	f := repository.Filter{}
	for _, name := range h.Filters {
		if v := c.QueryParam(name); v != "" {
			f[name] = v
		}
	}
	return f
}

// ListPublic handles GET /api/<collection>.
func (h *ContentHandler[E, I, P]) ListPublic(c echo.Context) error {
	f := h.queryFilter(c)
	for k, v := range h.Public {
		f[k] = v
	}
	items, err := h.Service.List(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// GetPublic handles GET /api/<collection>/:id.
func (h *ContentHandler[E, I, P]) GetPublic(c echo.Context) error {
	item, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if !visible(item, h.Public) {
		return fmt.Errorf("%s %q hidden: %w", h.Service.Entity(), c.Param("id"), apperror.ErrNotFound)
	}
	return c.JSON(http.StatusOK, item)
}

// List handles the admin listing, which includes hidden records.
func (h *ContentHandler[E, I, P]) List(c echo.Context) error {
	items, err := h.Service.List(c.Request().Context(), h.queryFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler[E, I, P]) Get(c echo.Context) error {
	item, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[E, I, P]) Create(c echo.Context) error {
	var in I
	if err := decodeJSON(c, &in, maxJSONBody); err != nil {
		return err
	}
	item, err := h.Service.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler[E, I, P]) Update(c echo.Context) error {
	var p P
	if err := decodeJSON(c, &p, maxJSONBody); err != nil {
		return err
	}
	item, err := h.Service.Update(c.Request().Context(), c.Param("id"), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler[E, I, P]) Delete(c echo.Context) error {
	if err := h.Service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// visible reports whether item's JSON fields match every entry of filter.
func visible(item any, filter repository.Filter) bool {
	if len(filter) == 0 {
		return true
	}
	raw, err := json.Marshal(item)
	if err != nil {
		return false
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return false
	}
	for k, want := range filter {
		if fmt.Sprint(fields[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}
