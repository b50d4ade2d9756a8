package model

import "time"

// GalleryImage is a photo shown in the public gallery. Inactive images stay
// in the store but are hidden from public listings.
type GalleryImage struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	ImageURL    string    `json:"imageUrl" bson:"imageUrl"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	IsActive    bool      `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}

func (g *GalleryImage) SetID(id string) { g.ID = id }
func (g GalleryImage) GetID() string    { return g.ID }

type GalleryImageInput struct {
	Title       string `json:"title" validate:"required,notblank,max=120"`
	Description string `json:"description" validate:"max=1000"`
	ImageURL    string `json:"imageUrl" validate:"required,notblank,max=2048"`
	Category    string `json:"category" validate:"max=60"`
	IsActive    *bool  `json:"isActive"`
}

func (in GalleryImageInput) Build(now time.Time) GalleryImage {
	return GalleryImage{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		IsActive:    boolOr(in.IsActive, true),
		CreatedAt:   now,
	}
}

type GalleryImagePatch struct {
	Title       *string `json:"title" validate:"omitempty,notblank,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,notblank,max=2048"`
	Category    *string `json:"category" validate:"omitempty,max=60"`
	IsActive    *bool   `json:"isActive"`
}

func (p GalleryImagePatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "title", p.Title)
	put(f, "description", p.Description)
	put(f, "imageUrl", p.ImageURL)
	put(f, "category", p.Category)
	put(f, "isActive", p.IsActive)
	return f
}
