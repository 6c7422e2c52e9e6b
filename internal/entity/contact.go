package entity

import (
	"context"
	"time"
)

// ContactRequest is the body of the contact page form.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

func NewContactMessage(id string, receivedAt time.Time, r ContactRequest) *ContactMessage {
	return &ContactMessage{
		ID:         id,
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Message:    r.Message,
		ReceivedAt: receivedAt,
	}
}

type ContactRepositoryInterface interface {
	Create(ctx context.Context, m *ContactMessage) error
}
