package repository

import (
	"database/sql"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/iliyamo/storefront-api/internal/model"
)

// Store bundles one repository per content collection. It is built once at
// startup from an explicitly opened client and handed to the services.
type Store struct {
	Menu         Repository[model.MenuItem]
	Gallery      Repository[model.GalleryImage]
	About        Repository[model.AboutInfo]
	Testimonials Repository[model.Testimonial]
	Signature    Repository[model.SignatureCollection]
	Reservations Repository[model.Reservation]
	Contact      Repository[model.ContactMessage]
}

// NewMongoStore binds every collection of db.
func NewMongoStore(db *mongo.Database) *Store {
	return &Store{
		Menu:         NewMongoRepo[model.MenuItem](db.Collection(model.CollectionMenuItems)),
		Gallery:      NewMongoRepo[model.GalleryImage](db.Collection(model.CollectionGallery)),
		About:        NewMongoRepo[model.AboutInfo](db.Collection(model.CollectionAbout)),
		Testimonials: NewMongoRepo[model.Testimonial](db.Collection(model.CollectionTestimonials)),
		Signature:    NewMongoRepo[model.SignatureCollection](db.Collection(model.CollectionSignature)),
		Reservations: NewMongoRepo[model.Reservation](db.Collection(model.CollectionReservations)),
		Contact:      NewMongoRepo[model.ContactMessage](db.Collection(model.CollectionContact)),
	}
}

// NewMySQLStore shares one documents table across all collections.
func NewMySQLStore(db *sql.DB) *Store {
	return &Store{
		Menu:         NewMySQLRepo[model.MenuItem](db, model.CollectionMenuItems),
		Gallery:      NewMySQLRepo[model.GalleryImage](db, model.CollectionGallery),
		About:        NewMySQLRepo[model.AboutInfo](db, model.CollectionAbout),
		Testimonials: NewMySQLRepo[model.Testimonial](db, model.CollectionTestimonials),
		Signature:    NewMySQLRepo[model.SignatureCollection](db, model.CollectionSignature),
		Reservations: NewMySQLRepo[model.Reservation](db, model.CollectionReservations),
		Contact:      NewMySQLRepo[model.ContactMessage](db, model.CollectionContact),
	}
}

func NewMemoryStore() *Store {
	return &Store{
		Menu:         NewMemoryRepo[model.MenuItem](model.CollectionMenuItems),
		Gallery:      NewMemoryRepo[model.GalleryImage](model.CollectionGallery),
		About:        NewMemoryRepo[model.AboutInfo](model.CollectionAbout),
		Testimonials: NewMemoryRepo[model.Testimonial](model.CollectionTestimonials),
		Signature:    NewMemoryRepo[model.SignatureCollection](model.CollectionSignature),
		Reservations: NewMemoryRepo[model.Reservation](model.CollectionReservations),
		Contact:      NewMemoryRepo[model.ContactMessage](model.CollectionContact),
	}
}
