package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// outbox sends a message to a contact and records it once the transport has
// accepted it. Nothing is persisted for a failed send.
type outbox struct {
	messenger ports.Messenger
	contacts  ports.ContactRepository
	messages  ports.MessageRepository
	log       zerolog.Logger
}

func (o *outbox) deliver(ctx context.Context, contact *domain.Contact, content, mediaURL string) (*domain.Message, error) {
	body := content
	if mediaURL != "" {
		if body != "" {
			body += "\n"
		}
		body += mediaURL
	}

	waID, err := o.messenger.Send(ctx, contact.PhoneNumber, body)
	if err != nil {
		o.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("whatsapp send failed")
		if errors.Is(err, domain.ErrMessengerUnavailable) || errors.Is(err, domain.ErrSendFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrSendFailed, err)
	}

	now := time.Now().UTC()
	msg, err := o.messages.Create(ctx, &domain.Message{
		ContactID:         contact.ID,
		Direction:         domain.DirectionOutgoing,
		Type:              domain.DetectMessageType(mediaURL),
		Content:           content,
		MediaURL:          mediaURL,
		WhatsAppMessageID: waID,
		Status:            domain.StatusSent,
		Timestamp:         now,
	})
	if err != nil {
		return nil, fmt.Errorf("record sent message: %w", err)
	}

	if err := o.contacts.TouchLastContact(ctx, contact.ID, now); err != nil {
		o.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("failed to update last contact")
	}
	return msg, nil
}
