package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/handler"
	"github.com/iliyamo/storefront-api/internal/middleware"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/service"
)

// RegisterAdmin registers the admin panel API. Every route requires a valid
// admin token; successful writes purge the public response cache.
func RegisterAdmin(e *echo.Echo, o Options) {
	h := o.Handlers
	guard := []echo.MiddlewareFunc{
		middleware.AdminAuth(o.Validator),
		middleware.RequireRole(auth.RoleAdmin),
	}

	g := e.Group("/api/admin", append(guard, middleware.PurgeOnWrite(o.Cache, o.Redis, o.Logger))...)
	g.GET("/verify", h.Auth.Verify)

	mountContent(g, "/menu", h.Menu)
	mountContent(g, "/gallery", h.Gallery)
	mountContent(g, "/about", h.About)
	mountContent(g, "/testimonials", h.Testimonials)
	mountContent(g, "/signature-collection", h.Signature)

	// ---- Reservations ----
	g.GET("/reservations", h.Reservations.List)
	g.GET("/reservations/export", h.Reservations.Export)
	g.GET("/reservations/:id", h.Reservations.Get)
	g.GET("/reservations/:id/qrcode", h.Reservations.QRCode)
	g.PUT("/reservations/:id", h.Reservations.Update)
	g.PATCH("/reservations/:id", h.Reservations.Update)
	g.PATCH("/reservations/:id/status", h.Reservations.SetStatus)
	g.DELETE("/reservations/:id", h.Reservations.Delete)

	// ---- Contact ----
	g.GET("/contact", h.Contact.List)
	g.GET("/contact/:id", h.Contact.Get)
	g.PUT("/contact/:id", h.Contact.Update)
	g.PATCH("/contact/:id", h.Contact.Update)
	g.DELETE("/contact/:id", h.Contact.Delete)

	// ---- Uploads ----
	up := e.Group("/api/upload", guard...)
	up.POST("/image", h.Upload.Image)
	up.POST("/url", h.Upload.URL)
	up.DELETE("/*", h.Upload.Delete)
}

func mountContent[E service.Record, I model.Builder[E], P model.Patch](g *echo.Group, path string, h *handler.ContentHandler[E, I, P]) {
	g.GET(path, h.List)
	g.GET(path+"/:id", h.Get)
	g.POST(path, h.Create)
	g.PUT(path+"/:id", h.Update)
	g.PATCH(path+"/:id", h.Update) // alias for clients that use PATCH
	g.DELETE(path+"/:id", h.Delete)
}
