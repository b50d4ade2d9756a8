package model

import "time"

// ContactMessage is a note left through the contact form.
type ContactMessage struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Subject   string    `json:"subject" bson:"subject"`
	Message   string    `json:"message" bson:"message"`
	IsRead    bool      `json:"isRead" bson:"isRead"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

func (m *ContactMessage) SetID(id string) { m.ID = id }
func (m ContactMessage) GetID() string    { return m.ID }

type ContactMessageInput struct {
	Name    string `json:"name" validate:"required,notblank,max=120"`
	Email   string `json:"email" validate:"required,email,max=254"`
	Subject string `json:"subject" validate:"required,notblank,max=200"`
	Message string `json:"message" validate:"required,notblank,max=5000"`
}

func (in ContactMessageInput) Build(now time.Time) ContactMessage {
	return ContactMessage{
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		CreatedAt: now,
	}
}

// ContactMessagePatch is the admin triage shape: marking a message read and
// retitling it. The guest's own text is never edited.
type ContactMessagePatch struct {
	Subject *string `json:"subject" validate:"omitempty,notblank,max=200"`
	IsRead  *bool   `json:"isRead"`
}

func (p ContactMessagePatch) Fields() map[string]any {
	f := map[string]any{}
	put(f, "subject", p.Subject)
	put(f, "isRead", p.IsRead)
	return f
}
