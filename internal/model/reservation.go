package model

import "time"

// Reservation statuses. New reservations always start as pending; only an
// admin moves them forward.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Reservation is a table booking submitted from the public site.
//
// Date is a calendar day (YYYY-MM-DD) and Time a wall-clock slot (HH:MM),
// both in the restaurant's local time.
type Reservation struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	CustomerName    string    `json:"customerName" bson:"customerName"`
	Email           string    `json:"email" bson:"email"`
	Phone           string    `json:"phone" bson:"phone"`
	Date            string    `json:"date" bson:"date"`
	Time            string    `json:"time" bson:"time"`
	PartySize       int       `json:"partySize" bson:"partySize"`
	SpecialRequests string    `json:"specialRequests,omitempty" bson:"specialRequests,omitempty"`
	Status          string    `json:"status" bson:"status"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
}

func (r *Reservation) SetID(id string) { r.ID = id }
func (r Reservation) GetID() string    { return r.ID }

// ReservationInput is the public booking form. Clients cannot choose a
// status; unknown fields are rejected before validation.
type ReservationInput struct {
	CustomerName    string `json:"customerName" validate:"required,notblank,max=120"`
	Email           string `json:"email" validate:"required,email,max=254"`
	Phone           string `json:"phone" validate:"required,notblank,max=32"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	Time            string `json:"time" validate:"required,datetime=15:04"`
	PartySize       int    `json:"partySize" validate:"required,gt=0,lte=50"`
	SpecialRequests string `json:"specialRequests" validate:"max=1000"`
}

func (in ReservationInput) Build(now time.Time) Reservation {
	return Reservation{
		CustomerName:    in.CustomerName,
		Email:           in.Email,
		Phone:           in.Phone,
		Date:            in.Date,
		Time:            in.Time,
		PartySize:       in.PartySize,
		SpecialRequests: in.SpecialRequests,
		Status:          StatusPending,
		CreatedAt:       now,
	}
}

// ReservationPatch is used by the admin panel, mostly to move Status.
type ReservationPatch struct {
	CustomerName    *string `json:"customerName" validate:"omitempty,notblank,max=120"`
	Email           *string `json:"email" validate:"omitempty,email,max=254"`
	Phone           *string `json:"phone" validate:"omitempty,notblank,max=32"`
	Date            *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time            *string `json:"time" validate:"omitempty,datetime=15:04"`
	PartySize       *int    `json:"partySize" validate:"omitempty,gt=0,lte=50"`
	SpecialRequests *string `json:"specialRequests" validate:"omitempty,max=1000"`
	Status          *string `json:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

func (p ReservationPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "customerName", p.CustomerName)
	put(f, "email", p.Email)
	put(f, "phone", p.Phone)
	put(f, "date", p.Date)
	put(f, "time", p.Time)
	put(f, "partySize", p.PartySize)
	put(f, "specialRequests", p.SpecialRequests)
	put(f, "status", p.Status)
	return f
}
