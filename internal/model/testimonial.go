package model

import "time"

// Testimonial is a customer review. Rating is a whole number of stars.
type Testimonial struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	CustomerName string    `json:"customerName" bson:"customerName"`
	Rating       int       `json:"rating" bson:"rating"`
	Review       string    `json:"review" bson:"review"`
	Date         string    `json:"date" bson:"date"`
	Avatar       string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (t *Testimonial) SetID(id string) { t.ID = id }
func (t Testimonial) GetID() string    { return t.ID }

type TestimonialInput struct {
	CustomerName string `json:"customerName" validate:"required,notblank,max=120"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Review       string `json:"review" validate:"required,notblank,max=4000"`
	Date         string `json:"date" validate:"required,notblank,max=40"`
	Avatar       string `json:"avatar" validate:"max=2048"`
}

func (in TestimonialInput) Build(now time.Time) Testimonial {
	return Testimonial{
		CustomerName: in.CustomerName,
		Rating:       in.Rating,
		Review:       in.Review,
		Date:         in.Date,
		Avatar:       in.Avatar,
		CreatedAt:    now,
	}
}

type TestimonialPatch struct {
	CustomerName *string `json:"customerName" validate:"omitempty,notblank,max=120"`
	Rating       *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Review       *string `json:"review" validate:"omitempty,notblank,max=4000"`
	Date         *string `json:"date" validate:"omitempty,notblank,max=40"`
	Avatar       *string `json:"avatar" validate:"omitempty,max=2048"`
}

func (p TestimonialPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "customerName", p.CustomerName)
	put(f, "rating", p.Rating)
	put(f, "review", p.Review)
	put(f, "date", p.Date)
	put(f, "avatar", p.Avatar)
	return f
}
