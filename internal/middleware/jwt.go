package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/auth"
)

// Context keys set by AdminAuth.
const (
	ContextClaims = "claims"
	ContextRole   = "role"
	ContextUser   = "user_id"
)

// AdminAuth requires a valid bearer token. On success the claims are stored
// both in the echo context and in the request context, so services can name
// the acting admin. Any failure returns an error matching
// apperror.ErrUnauthorized and the handler is never reached.
func AdminAuth(v *auth.Validator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := auth.ExtractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if raw == "" {
				return auth.ErrMissingToken
			}
			claims, err := v.Validate(raw)
			if err != nil {
				return err
			}
			c.Set(ContextClaims, claims)
			c.Set(ContextRole, claims.Role)
			c.Set(ContextUser, claims.Subject)
			c.SetRequest(c.Request().WithContext(auth.WithClaims(c.Request().Context(), claims)))
			return next(c)
		}
	}
}
