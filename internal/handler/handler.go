// Package handler contains the HTTP handlers. Handlers decode the request,
// call one service and return either a response or an error for
// ErrorHandler to render.
package handler

import (
	"github.com/iliyamo/storefront-api/internal/auth"
	"github.com/iliyamo/storefront-api/internal/imagehost"
	"github.com/iliyamo/storefront-api/internal/leaderboard"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/repository"
	"github.com/iliyamo/storefront-api/internal/service"
)

var activeOnly = repository.Filter{"isActive": true}

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Menu         *ContentHandler[model.MenuItem, model.MenuItemInput, model.MenuItemPatch]
	Gallery      *ContentHandler[model.GalleryImage, model.GalleryImageInput, model.GalleryImagePatch]
	About        *ContentHandler[model.AboutInfo, model.AboutInfoInput, model.AboutInfoPatch]
	Testimonials *ContentHandler[model.Testimonial, model.TestimonialInput, model.TestimonialPatch]
	Signature    *ContentHandler[model.SignatureCollection, model.SignatureCollectionInput, model.SignatureCollectionPatch]
	Reservations *ReservationHandler
	Contact      *ContentHandler[model.ContactMessage, model.ContactMessageInput, model.ContactMessagePatch]
	Auth         *AuthHandler
	Upload       *UploadHandler
	Leaderboard  *LeaderboardHandler
}

// Deps are the collaborators New wires into the handlers. Uploader may be
// nil; Board may wrap a nil Redis client.
type Deps struct {
	Services    *service.Services
	Credentials auth.Credentials
	Issuer      *auth.Issuer
	Uploader    imagehost.Uploader
	Board       *leaderboard.Board
}

func New(d Deps) *Handlers {
	s := d.Services
	return &Handlers{
		Menu:         NewContentHandler(s.Menu, nil, "category"),
		Gallery:      NewContentHandler(s.Gallery, activeOnly, "category"),
		About:        NewContentHandler(s.About, activeOnly, "section"),
		Testimonials: NewContentHandler(s.Testimonials, nil),
		Signature:    NewContentHandler(s.Signature, activeOnly),
		Reservations: NewReservationHandler(s.Reservations),
		Contact:      NewContentHandler(s.Contact, nil),
		Auth:         &AuthHandler{Credentials: d.Credentials, Issuer: d.Issuer},
		Upload:       &UploadHandler{Uploader: d.Uploader},
		Leaderboard:  &LeaderboardHandler{Board: d.Board},
	}
}
