package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is used by load balancers and monitoring to check the process is
// serving.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
