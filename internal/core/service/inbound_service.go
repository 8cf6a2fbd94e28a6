package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// Deduper claims a WhatsApp message id. Claim returns false when the id was
// already claimed. Release drops a claim so the message can be retried.
type Deduper interface {
	Claim(ctx context.Context, messageID string) (bool, error)
	Release(ctx context.Context, messageID string) error
}

// AutoReply answers inbound messages containing one of Keywords.
type AutoReply struct {
	Keywords []string
	Text     string
}

type InboundService struct {
	outbox
	dedup     Deduper
	autoReply AutoReply
}

func NewInboundService(
	contacts ports.ContactRepository,
	messages ports.MessageRepository,
	messenger ports.Messenger,
	dedup Deduper,
	autoReply AutoReply,
	log zerolog.Logger,
) *InboundService {
	keywords := make([]string, 0, len(autoReply.Keywords))
	for _, k := range autoReply.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}
	autoReply.Keywords = keywords

	return &InboundService{
		outbox:    outbox{messenger: messenger, contacts: contacts, messages: messages, log: log},
		dedup:     dedup,
		autoReply: autoReply,
	}
}

// Process records one received message against its sender's contact.
func (s *InboundService) Process(ctx context.Context, in ports.InboundMessage) error {
	phone := domain.NormalizePhone(in.From)
	if phone == "" {
		return fmt.Errorf("%w: inbound message without sender", domain.ErrValidation)
	}

	// Idempotency: a message id seen before is skipped. Redis outages fail open.
	claimed := false
	if in.MessageID != "" {
		fresh, err := s.dedup.Claim(ctx, in.MessageID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("message_id", in.MessageID).Msg("dedup check failed, processing anyway")
		case !fresh:
			s.log.Debug().Str("message_id", in.MessageID).Msg("duplicate inbound message skipped")
			return nil
		default:
			claimed = true
		}
	}

	contact, ts, err := s.record(ctx, phone, in)
	if err != nil {
		if claimed {
			s.release(ctx, in.MessageID)
		}
		return fmt.Errorf("process inbound: %w", err)
	}

	if err := s.contacts.TouchLastContact(ctx, contact.ID, ts); err != nil {
		s.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("failed to update last contact")
	}

	s.log.Info().Str("contact_id", contact.ID).Str("message_id", in.MessageID).Msg("inbound message recorded")

	if s.shouldAutoReply(in.Body) {
		if _, err := s.deliver(ctx, contact, s.autoReply.Text, ""); err != nil {
			s.log.Warn().Err(err).Str("contact_id", contact.ID).Msg("auto-reply failed")
		}
	}
	return nil
}

// record stores the message under its sender's contact, creating the
// contact on first contact.
func (s *InboundService) record(ctx context.Context, phone string, in ports.InboundMessage) (*domain.Contact, time.Time, error) {
	contact, err := findOrCreateContact(ctx, s.contacts, phone)
	if err != nil {
		return nil, time.Time{}, err
	}

	ts := in.Timestamp.UTC()
	if in.Timestamp.IsZero() {
		ts = time.Now().UTC()
	}
	if _, err := s.messages.Create(ctx, &domain.Message{
		ContactID:         contact.ID,
		Direction:         domain.DirectionIncoming,
		Type:              domain.MessageText,
		Content:           in.Body,
		WhatsAppMessageID: in.MessageID,
		Status:            domain.StatusReceived,
		Timestamp:         ts,
	}); err != nil {
		return nil, time.Time{}, fmt.Errorf("record message: %w", err)
	}
	return contact, ts, nil
}

func (s *InboundService) release(ctx context.Context, messageID string) {
	if err := s.dedup.Release(context.WithoutCancel(ctx), messageID); err != nil {
		s.log.Warn().Err(err).Str("message_id", messageID).Msg("failed to release dedup claim")
	}
}

func (s *InboundService) shouldAutoReply(body string) bool {
	if s.autoReply.Text == "" || len(s.autoReply.Keywords) == 0 {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(body), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		for _, k := range s.autoReply.Keywords {
			if w == k {
				return true
			}
		}
	}
	return false
}
