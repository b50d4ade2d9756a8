package model

import "time"

// AboutSections lists the accepted values of AboutInfo.Section.
var AboutSections = []string{"story", "mission", "vision", "team", "values", "history", "chef"}

// AboutInfo is one block of the about page. Blocks are grouped by Section
// and rendered in ascending DisplayOrder.
type AboutInfo struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Title        string    `json:"title" bson:"title"`
	Content      string    `json:"content" bson:"content"`
	ImageURL     string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	Section      string    `json:"section" bson:"section"`
	DisplayOrder int       `json:"displayOrder" bson:"displayOrder"`
	IsActive     bool      `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

func (a *AboutInfo) SetID(id string) { a.ID = id }
func (a AboutInfo) GetID() string    { return a.ID }
func (a AboutInfo) Order() int       { return a.DisplayOrder }

type AboutInfoInput struct {
	Title        string `json:"title" validate:"required,notblank,max=160"`
	Content      string `json:"content" validate:"required,notblank,max=10000"`
	ImageURL     string `json:"imageUrl" validate:"max=2048"`
	Section      string `json:"section" validate:"required,oneof=story mission vision team values history chef"`
	DisplayOrder *int   `json:"displayOrder" validate:"omitempty,min=0"`
	IsActive     *bool  `json:"isActive"`
}

func (in AboutInfoInput) Build(now time.Time) AboutInfo {
	return AboutInfo{
		Title:        in.Title,
		Content:      in.Content,
		ImageURL:     in.ImageURL,
		Section:      in.Section,
		DisplayOrder: intOr(in.DisplayOrder, 0),
		IsActive:     boolOr(in.IsActive, true),
		CreatedAt:    now,
	}
}

type AboutInfoPatch struct {
	Title        *string `json:"title" validate:"omitempty,notblank,max=160"`
	Content      *string `json:"content" validate:"omitempty,notblank,max=10000"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,max=2048"`
	Section      *string `json:"section" validate:"omitempty,oneof=story mission vision team values history chef"`
	DisplayOrder *int    `json:"displayOrder" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"isActive"`
}

func (p AboutInfoPatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "title", p.Title)
	put(f, "content", p.Content)
	put(f, "imageUrl", p.ImageURL)
	put(f, "section", p.Section)
	put(f, "displayOrder", p.DisplayOrder)
	put(f, "isActive", p.IsActive)
	return f
}
