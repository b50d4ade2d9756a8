package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/middleware"
)

// RegisterPublic registers the unauthenticated site API. Reads go through
// the response cache; guest writes and login are rate limited.
func RegisterPublic(e *echo.Echo, o Options) {
	h := o.Handlers
	cache := middleware.NewRedisCache(o.Cache, o.Redis)
	limit := middleware.NewTokenBucket(o.RateLimit, o.Redis, o.Logger)

	api := e.Group("/api")

	api.GET("/menu", h.Menu.ListPublic, cache)
	api.GET("/menu/:id", h.Menu.GetPublic, cache)
	api.GET("/gallery", h.Gallery.ListPublic, cache)
	api.GET("/gallery/:id", h.Gallery.GetPublic, cache)
	api.GET("/about", h.About.ListPublic, cache)
	api.GET("/about/:id", h.About.GetPublic, cache)
	api.GET("/testimonials", h.Testimonials.ListPublic, cache)
	api.GET("/testimonials/:id", h.Testimonials.GetPublic, cache)
	api.GET("/signature-collection", h.Signature.ListPublic, cache)
	api.GET("/signature-collection/:id", h.Signature.GetPublic, cache)

	api.POST("/reservations", h.Reservations.Create, limit)
	api.POST("/contact", h.Contact.Create, limit)
	api.POST("/admin/login", h.Auth.Login, limit)

	api.GET("/mystery/leaderboard", h.Leaderboard.Top)
	api.POST("/mystery/scores", h.Leaderboard.Submit, limit)
}
