package ports

import (
	"context"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// BulkSendItem records the outcome of one recipient of a bulk send.
type BulkSendItem struct {
	ContactID string
	MessageID string
	Error     string
}

// BulkSendResult is returned by SendBulk.
type BulkSendResult struct {
	BatchID string
	Sent    []BulkSendItem
	Failed  []BulkSendItem
}

type WhatsAppService interface {
	Status(ctx context.Context) MessengerStatus
	SendDirect(ctx context.Context, to, body string) (*domain.Message, error)
	SendBulk(ctx context.Context, contactIDs []string, body string) (*BulkSendResult, error)
	Restart(ctx context.Context) error
}
