package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/export"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/service"
)

// ReservationHandler adds the QR code, export and status routes to the
// generic CRUD handler.
type ReservationHandler struct {
	*ContentHandler[model.Reservation, model.ReservationInput, model.ReservationPatch]
	Reservations *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{
		ContentHandler: NewContentHandler(svc.ReservationContent, nil, "status", "date"),
		Reservations:   svc,
	}
}

const (
	defaultQRSize = 256
	minQRSize     = 128
	maxQRSize     = 1024
)

// QRCode handles GET /api/admin/reservations/:id/qrcode[?size=]. The code
// carries guest details, so it is served to admins only.
func (h *ReservationHandler) QRCode(c echo.Context) error {
	size := defaultQRSize
	if raw := c.QueryParam("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < minQRSize || n > maxQRSize {
			return apperror.Invalid("size", "range", "must be an integer between 128 and 1024")
		}
		size = n
	}
	png, err := h.Reservations.QRCode(c.Request().Context(), c.Param("id"), size)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", png)
}

type statusReq struct {
	Status string `json:"status"`
}

// SetStatus handles PATCH /api/admin/reservations/:id/status.
func (h *ReservationHandler) SetStatus(c echo.Context) error {
	var req statusReq
	if err := decodeJSON(c, &req, maxJSONBody); err != nil {
		return err
	}
	r, err := h.Reservations.SetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Export handles GET /api/admin/reservations/export and streams an xlsx
// workbook of the reservations matching the query filters.
func (h *ReservationHandler) Export(c echo.Context) error {
	items, err := h.Service.List(c.Request().Context(), h.queryFilter(c))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.WriteReservations(&buf, items); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="`+export.ReservationsFilename(time.Now())+`"`)
	return c.Blob(http.StatusOK, export.XLSXContentType, buf.Bytes())
}
