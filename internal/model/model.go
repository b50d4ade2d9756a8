// Package model defines the content records served by the storefront and the
// request shapes used to create and patch them. Every record is a flat,
// independently persisted document; ids are the store's own opaque strings.
package model

import "time"

// Collection names shared by every store backend.
const (
	CollectionMenuItems    = "menu_items"
	CollectionGallery      = "gallery_images"
	CollectionAbout        = "about_info"
	CollectionTestimonials = "testimonials"
	CollectionSignature    = "signature_collection"
	CollectionReservations = "reservations"
	CollectionContact      = "contact_messages"
)

// Ordered is implemented by records that carry an explicit displayOrder.
type Ordered interface {
	Order() int
}

// Patch is implemented by the partial-update shapes. Fields returns only the
// supplied fields keyed by their document names.
type Patch interface {
	Fields() map[string]any
}

func put[T any](fields map[string]any, key string, v *T) {
	if v != nil {
		fields[key] = *v
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

// Builder is implemented by the create shapes. Build applies the documented
// defaults and stamps the creation time.
type Builder[E any] interface {
	Build(now time.Time) E
}
