package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/middleware"
)

// AuthHandler serves the admin login and token check.
type AuthHandler struct {
	Credentials auth.Credentials
	Issuer      *auth.Issuer
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	Token     string    `json:"token"`
	Message   string    `json:"message"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login handles POST /api/admin/login. Every failure, including a malformed
// body, is the same 401 so callers learn nothing about which part was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := decodeJSON(c, &req, maxJSONBody); err != nil {
		return fmt.Errorf("login body: %w", apperror.ErrUnauthorized)
	}
	if !h.Credentials.Verify(req.Username, req.Password) {
		return fmt.Errorf("login rejected: %w", apperror.ErrUnauthorized)
	}
	tok, err := h.Issuer.Issue(req.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResp{Token: tok.Value, Message: "login successful", ExpiresAt: tok.ExpiresAt})
}

// Verify handles GET /api/admin/verify behind AdminAuth.
func (h *AuthHandler) Verify(c echo.Context) error {
	claims, ok := c.Get(middleware.ContextClaims).(*auth.Claims)
	if !ok {
		return apperror.ErrUnauthorized
	}
	resp := echo.Map{"valid": true, "username": claims.Subject, "role": claims.Role}
	if claims.ExpiresAt != nil {
		resp["expiresAt"] = claims.ExpiresAt.Time.UTC()
	}
	return c.JSON(http.StatusOK, resp)
}
