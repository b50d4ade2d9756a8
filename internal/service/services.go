package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skip2/go-qrcode"

	"github.com/iliyamo/storefront-api/internal/audit"
	"github.com/iliyamo/storefront-api/internal/model"
	"github.com/iliyamo/storefront-api/internal/queue"
	"github.com/iliyamo/storefront-api/internal/repository"
	"github.com/iliyamo/storefront-api/internal/validation"
)

type (
	MenuService        = Content[model.MenuItem, model.MenuItemInput, model.MenuItemPatch]
	GalleryService     = Content[model.GalleryImage, model.GalleryImageInput, model.GalleryImagePatch]
	AboutService       = Content[model.AboutInfo, model.AboutInfoInput, model.AboutInfoPatch]
	TestimonialService = Content[model.Testimonial, model.TestimonialInput, model.TestimonialPatch]
	SignatureService   = Content[model.SignatureCollection, model.SignatureCollectionInput, model.SignatureCollectionPatch]
	ReservationContent = Content[model.Reservation, model.ReservationInput, model.ReservationPatch]
	ContactService     = Content[model.ContactMessage, model.ContactMessageInput, model.ContactMessagePatch]
)

// Services groups one service per collection.
type Services struct {
	Menu         *MenuService
	Gallery      *GalleryService
	About        *AboutService
	Testimonials *TestimonialService
	Signature    *SignatureService
	Reservations *ReservationService
	Contact      *ContactService
}

// Deps are the collaborators shared by every service. Nil Recorder and
// Notifier are replaced by no-ops.
type Deps struct {
	Store    *repository.Store
	Recorder audit.Recorder
	Notifier queue.Notifier
	Logger   *slog.Logger
}

func New(d Deps) *Services {
	if d.Notifier == nil {
		d.Notifier = queue.Nop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	s := &Services{
		Menu:         NewContent[model.MenuItem, model.MenuItemInput, model.MenuItemPatch]("menu", d.Store.Menu, d.Recorder, d.Logger),
		Gallery:      NewContent[model.GalleryImage, model.GalleryImageInput, model.GalleryImagePatch]("gallery", d.Store.Gallery, d.Recorder, d.Logger),
		About:        NewContent[model.AboutInfo, model.AboutInfoInput, model.AboutInfoPatch]("about", d.Store.About, d.Recorder, d.Logger),
		Testimonials: NewContent[model.Testimonial, model.TestimonialInput, model.TestimonialPatch]("testimonials", d.Store.Testimonials, d.Recorder, d.Logger),
		Signature:    NewContent[model.SignatureCollection, model.SignatureCollectionInput, model.SignatureCollectionPatch]("signature-collection", d.Store.Signature, d.Recorder, d.Logger),
		Reservations: &ReservationService{
			ReservationContent: NewContent[model.Reservation, model.ReservationInput, model.ReservationPatch]("reservations", d.Store.Reservations, d.Recorder, d.Logger),
		},
		Contact: NewContent[model.ContactMessage, model.ContactMessageInput, model.ContactMessagePatch]("contact", d.Store.Contact, d.Recorder, d.Logger),
	}

	notify := notifier{n: d.Notifier, logger: d.Logger}
	s.Reservations.afterCreate = func(ctx context.Context, r model.Reservation) {
		notify.send(ctx, queue.Notification{
			Kind:    queue.KindReservationCreated,
			ID:      r.ID,
			Name:    r.CustomerName,
			Email:   r.Email,
			Summary: fmt.Sprintf("%s %s party of %d", r.Date, r.Time, r.PartySize),
		})
	}
	s.Contact.afterCreate = func(ctx context.Context, m model.ContactMessage) {
		notify.send(ctx, queue.Notification{
			Kind:    queue.KindContactReceived,
			ID:      m.ID,
			Name:    m.Name,
			Email:   m.Email,
			Summary: m.Subject,
		})
	}
	return s
}

type notifier struct {
	n      queue.Notifier
	logger *slog.Logger
}

// send publishes with its own short deadline. A failure is logged and never
// reaches the guest who submitted the form.
func (n notifier) send(ctx context.Context, msg queue.Notification) {
	msg.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := n.n.Notify(ctx, msg); err != nil {
		n.logger.Warn("notification publish failed", "kind", msg.Kind, "id", msg.ID, "error", err)
	}
}

// ReservationService adds status transitions and QR codes to the generic
// reservation CRUD.
type ReservationService struct {
	*ReservationContent
}

type statusChange struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// SetStatus moves a reservation to status.
func (s *ReservationService) SetStatus(ctx context.Context, id, status string) (model.Reservation, error) {
	if err := validation.Struct(statusChange{Status: status}); err != nil {
		return model.Reservation{}, err
	}
	return s.Update(ctx, id, model.ReservationPatch{Status: &status})
}

// QRCode renders a PNG that front-of-house staff scan to find the booking.
func (s *ReservationService) QRCode(ctx context.Context, id string, size int) ([]byte, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	payload := fmt.Sprintf("RESERVATION:%s|%s %s|%d|%s", r.ID, r.Date, r.Time, r.PartySize, r.CustomerName)
	png, err := qrcode.Encode(payload, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return png, nil
}
