// Package imagehost uploads admin images to Cloudinary with a per-type
// transformation preset.
package imagehost

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/iliyamo/storefront-api/internal/apperror"
	"github.com/iliyamo/storefront-api/internal/config"
)

// Image types with a preset.
const (
	TypeMenu      = "menu"
	TypeGallery   = "gallery"
	TypeAvatar    = "avatar"
	TypeSignature = "signature"
)

// Preset is the transformation applied on upload.
type Preset struct {
	Width   int
	Height  int
	Crop    string
	Gravity string
}

var presets = map[string]Preset{
	TypeMenu:      {Width: 800, Height: 600, Crop: "fill"},
	TypeGallery:   {Width: 1200, Height: 800, Crop: "fill"},
	TypeAvatar:    {Width: 200, Height: 200, Crop: "fill", Gravity: "face"},
	TypeSignature: {Width: 900, Height: 900, Crop: "fill"},
}

// Transformation returns the Cloudinary transformation string for kind, or
// "" for types without a preset.
func Transformation(kind string) string {
	p, ok := presets[kind]
	if !ok {
		return ""
	}
	parts := []string{"c_" + p.Crop}
	if p.Gravity != "" {
		parts = append(parts, "g_"+p.Gravity)
	}
	parts = append(parts, fmt.Sprintf("w_%d", p.Width), fmt.Sprintf("h_%d", p.Height), "q_auto", "f_auto")
	return strings.Join(parts, ",")
}

// Folder returns folder, or storefront/<kind> when folder is empty.
func Folder(kind, folder string) string {
	if folder = strings.Trim(strings.TrimSpace(folder), "/"); folder != "" {
		return folder
	}
	if kind == "" {
		kind = "misc"
	}
	return "storefront/" + kind
}

// Result is the JSON shape returned to the admin panel.
type Result struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
}

// Uploader is the image host contract used by the upload handler.
type Uploader interface {
	UploadBase64(ctx context.Context, data, kind, folder string) (Result, error)
	UploadURL(ctx context.Context, url, kind, folder string) (Result, error)
	Delete(ctx context.Context, publicID string) error
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary implements Uploader.
type Cloudinary struct {
	api uploadAPI
}

func NewCloudinary(cfg config.CloudinaryConfig) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{api: &cld.Upload}, nil
}

// UploadBase64 accepts raw base64 or a data URI.
func (c *Cloudinary) UploadBase64(ctx context.Context, data, kind, folder string) (Result, error) {
	uri, err := DataURI(data)
	if err != nil {
		return Result{}, err
	}
	return c.upload(ctx, uri, kind, folder)
}

func (c *Cloudinary) UploadURL(ctx context.Context, url, kind, folder string) (Result, error) {
	return c.upload(ctx, url, kind, folder)
}

func (c *Cloudinary) upload(ctx context.Context, file, kind, folder string) (Result, error) {
	res, err := c.api.Upload(ctx, file, uploader.UploadParams{
		Folder:         Folder(kind, folder),
		Transformation: Transformation(kind),
		ResourceType:   "image",
	})
	if err != nil {
		return Result{}, apperror.Upstream("cloudinary.upload", err)
	}
	if res.Error.Message != "" {
		return Result{}, apperror.Upstream("cloudinary.upload", errors.New(res.Error.Message))
	}
	return Result{PublicID: res.PublicID, SecureURL: res.SecureURL, URL: res.URL}, nil
}

// Delete removes publicID. A missing image is NotFound.
func (c *Cloudinary) Delete(ctx context.Context, publicID string) error {
	res, err := c.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: "image"})
	if err != nil {
		return apperror.Upstream("cloudinary.destroy", err)
	}
	if res.Error.Message != "" {
		return apperror.Upstream("cloudinary.destroy", errors.New(res.Error.Message))
	}
	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return fmt.Errorf("image %q: %w", publicID, apperror.ErrNotFound)
	default:
		return apperror.Upstream("cloudinary.destroy", fmt.Errorf("unexpected result %q", res.Result))
	}
}

// DataURI normalises base64 image data to a data URI, sniffing the media
// type when the caller sent bare base64. Undecodable data is a validation
// error on the base64 field.
func DataURI(data string) (string, error) {
	data = strings.TrimSpace(data)
	payload := data
	mediaType := ""
	if strings.HasPrefix(data, "data:") {
		header, rest, ok := strings.Cut(data, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return "", apperror.Invalid("base64", "base64", "must be base64 image data")
		}
		mediaType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		payload = rest
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(raw) == 0 {
		return "", apperror.Invalid("base64", "base64", "must be base64 image data")
	}
	if mediaType == "" {
		mediaType = http.DetectContentType(raw)
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return "", apperror.Invalid("base64", "image", "data is not an image")
	}
	return "data:" + mediaType + ";base64," + payload, nil
}
