package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/imagehost"
	"github.com/iliyamo/storefront-api/internal/validation"
)

// UploadHandler proxies admin image uploads to the image host. A nil
// Uploader means the host is not configured and every route answers 503.
type UploadHandler struct {
	Uploader imagehost.Uploader
}

type uploadImageReq struct {
	Base64 string `json:"base64" validate:"required"`
	Type   string `json:"type" validate:"omitempty,oneof=menu gallery avatar signature"`
	Folder string `json:"folder" validate:"omitempty,max=120"`
}

type uploadURLReq struct {
	URL    string `json:"url" validate:"required,http_url,max=2048"`
	Type   string `json:"type" validate:"omitempty,oneof=menu gallery avatar signature"`
	Folder string `json:"folder" validate:"omitempty,max=120"`
}

var folderPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+(/[A-Za-z0-9_\-]+)*/?$`)

func checkFolder(folder string) error {
	if folder == "" || folderPattern.MatchString(strings.TrimPrefix(folder, "/")) {
		return nil
	}
	return apperror.Invalid("folder", "folder", "may contain letters, digits, '-', '_' and '/' only")
}

func (h *UploadHandler) uploader() (imagehost.Uploader, error) {
	if h.Uploader == nil {
		return nil, fmt.Errorf("image host not configured: %w", apperror.ErrUnavailable)
	}
	return h.Uploader, nil
}

// Image handles POST /api/upload/image.
func (h *UploadHandler) Image(c echo.Context) error {
	up, err := h.uploader()
	if err != nil {
		return err
	}
	var req uploadImageReq
	if err := decodeJSON(c, &req, maxUploadBody); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := checkFolder(req.Folder); err != nil {
		return err
	}
	res, err := up.UploadBase64(c.Request().Context(), req.Base64, req.Type, req.Folder)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// URL handles POST /api/upload/url.
func (h *UploadHandler) URL(c echo.Context) error {
	up, err := h.uploader()
	if err != nil {
		return err
	}
	var req uploadURLReq
	if err := decodeJSON(c, &req, maxJSONBody); err != nil {
		return err
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if err := checkFolder(req.Folder); err != nil {
		return err
	}
	res, err := up.UploadURL(c.Request().Context(), req.URL, req.Type, req.Folder)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Delete handles DELETE /api/upload/*; the wildcard is the public id, which
// may contain slashes.
func (h *UploadHandler) Delete(c echo.Context) error {
	up, err := h.uploader()
	if err != nil {
		return err
	}
	publicID, err := url.PathUnescape(c.Param("*"))
	if err != nil || strings.Trim(publicID, "/") == "" {
		return apperror.Invalid("publicId", "required", "public id is required")
	}
	if err := up.Delete(c.Request().Context(), strings.Trim(publicID, "/")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
