package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/leaderboard"
)

type LeaderboardHandler struct {
	Board *leaderboard.Board
}

// Top handles GET /api/mystery/leaderboard[?limit=].
func (h *LeaderboardHandler) Top(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return apperror.Invalid("limit", "type", "must be an integer")
		}
		limit = n
	}
	entries, err := h.Board.Top(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Submit handles POST /api/mystery/scores.
func (h *LeaderboardHandler) Submit(c echo.Context) error {
	var s leaderboard.Submission
	if err := decodeJSON(c, &s, maxJSONBody); err != nil {
		return err
	}
	e, err := h.Board.Submit(c.Request().Context(), s)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}
