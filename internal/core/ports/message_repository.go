package ports

import (
	"context"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// ListMessagesFilter carries query parameters for listing messages.
// Soft-deleted messages are never returned.
type ListMessagesFilter struct {
	ContactID string
	Direction string
	From      time.Time // optional: timestamp >= From
	To        time.Time // optional: timestamp <= To
	Page      int
	Limit     int
}

// MessageStats aggregates message counts over a time window.
type MessageStats struct {
	Total    int64
	Incoming int64
	Outgoing int64
	ByStatus map[string]int64
	ByType   map[string]int64
}

// MessageRepository defines persistence for messages. Lookups return
// domain.ErrMessageNotFound.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	FindByID(ctx context.Context, id string) (*domain.Message, error)
	List(ctx context.Context, filter ListMessagesFilter) ([]*domain.Message, int64, error)
	CountByContact(ctx context.Context, contactID string) (int64, error)
	UpdateStatus(ctx context.Context, id string, status domain.MessageStatus) (*domain.Message, error)
	SoftDelete(ctx context.Context, id string) error
	Stats(ctx context.Context, from, to time.Time) (*MessageStats, error)
}
