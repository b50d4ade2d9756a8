package model

import "time"

// SignatureCollection is a showcase item on the home page, curated
// separately from the full menu.
type SignatureCollection struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Image        string    `json:"image" bson:"image"`
	DisplayOrder int       `json:"displayOrder" bson:"displayOrder"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (s *SignatureCollection) SetID(id string) { s.ID = id }
func (s SignatureCollection) GetID() string    { return s.ID }
func (s SignatureCollection) Order() int       { return s.DisplayOrder }

type SignatureCollectionInput struct {
	Title        string `json:"title" validate:"required,notblank,max=120"`
	Description  string `json:"description" validate:"required,notblank,max=2000"`
	Image        string `json:"image" validate:"required,notblank,max=2048"`
	DisplayOrder *int   `json:"displayOrder" validate:"omitempty,min=0"`
	IsActive     *bool  `json:"isActive"`
}

func (in SignatureCollectionInput) Build(now time.Time) SignatureCollection {
	return SignatureCollection{
		Title:        in.Title,
		Description:  in.Description,
		Image:        in.Image,
		DisplayOrder: intOr(in.DisplayOrder, 0),
		IsActive:     boolOr(in.IsActive, true),
		CreatedAt:    now,
	}
}

type SignatureCollectionPatch struct {
	Title        *string `json:"title" validate:"omitempty,notblank,max=120"`
	Description  *string `json:"description" validate:"omitempty,notblank,max=2000"`
	Image        *string `json:"image" validate:"omitempty,notblank,max=2048"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive"`
}

func (p SignatureCollectionPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "title", p.Title)
	put(f, "description", p.Description)
	put(f, "image", p.Image)
	put(f, "displayOrder", p.DisplayOrder)
	put(f, "isActive", p.IsActive)
	return f
}
