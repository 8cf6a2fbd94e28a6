package ports

import (
	"context"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// ContactSummary is the subset of a contact embedded in message views.
type ContactSummary struct {
	ID          string
	Name        string
	PhoneNumber string
}

// MessageView is a message with its contact resolved.
type MessageView struct {
	*domain.Message
	Contact *ContactSummary
}

type ListMessagesInput struct {
	Page      int
	Limit     int
	Direction string
	ContactID string
	StartDate time.Time
	EndDate   time.Time
}

type ListMessagesResult struct {
	Items      []MessageView
	Pagination Pagination
}

type SendMessageInput struct {
	ContactID string
	Content   string
	MediaURL  string
}

type MessageService interface {
	List(ctx context.Context, in ListMessagesInput) (*ListMessagesResult, error)
	Get(ctx context.Context, id string) (*MessageView, error)
	Send(ctx context.Context, in SendMessageInput) (*domain.Message, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Message, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, from, to time.Time) (*MessageStats, error)
}
