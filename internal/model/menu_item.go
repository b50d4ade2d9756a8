package model

import "time"

// MenuItem is a dish on the public menu. Price is a display string ("85 ₺",
// "50") rather than a number because the site renders it verbatim.
type MenuItem struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Price        string    `json:"price" bson:"price"`
	Category     string    `json:"category" bson:"category"`
	Image        string    `json:"image" bson:"image"`
	IsSpicy      bool      `json:"isSpicy" bson:"isSpicy"`
	IsVegetarian bool      `json:"isVegetarian" bson:"isVegetarian"`
	IsPopular    bool      `json:"isPopular" bson:"isPopular"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (m *MenuItem) SetID(id string) { m.ID = id }
func (m MenuItem) GetID() string    { return m.ID }

// MenuItemInput is the create shape. Absent flags default to false.
type MenuItemInput struct {
	Name         string `json:"name" validate:"required,notblank,max=120"`
	Description  string `json:"description" validate:"max=2000"`
	Price        string `json:"price" validate:"required,notblank,max=32"`
	Category     string `json:"category" validate:"required,notblank,max=60"`
	Image        string `json:"image" validate:"required,notblank,max=2048"`
	IsSpicy      *bool  `json:"isSpicy"`
	IsVegetarian *bool  `json:"isVegetarian"`
	IsPopular    *bool  `json:"isPopular"`
}

func (in MenuItemInput) Build(now time.Time) MenuItem {
	return MenuItem{
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Image:        in.Image,
		IsSpicy:      boolOr(in.IsSpicy, false),
		IsVegetarian: boolOr(in.IsVegetarian, false),
		IsPopular:    boolOr(in.IsPopular, false),
		CreatedAt:    now,
	}
}

type MenuItemPatch struct {
	Name         *string `json:"name" validate:"omitempty,notblank,max=120"`
	Description  *string `json:"description" validate:"omitempty,max=2000"`
	Price        *string `json:"price" validate:"omitempty,notblank,max=32"`
	Category     *string `json:"category" validate:"omitempty,notblank,max=60"`
	Image        *string `json:"image" validate:"omitempty,notblank,max=2048"`
	IsSpicy      *bool   `json:"isSpicy"`
	IsVegetarian *bool   `json:"isVegetarian"`
	IsPopular    *bool   `json:"isPopular"`
}

func (p MenuItemPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "name", p.Name)
	put(f, "description", p.Description)
	put(f, "price", p.Price)
	put(f, "category", p.Category)
	put(f, "image", p.Image)
	put(f, "isSpicy", p.IsSpicy)
	put(f, "isVegetarian", p.IsVegetarian)
	put(f, "isPopular", p.IsPopular)
	return f
}
