package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// WhatsAppService exposes the messenger session to operators.
type WhatsAppService struct {
	outbox
}

func NewWhatsAppService(
	messenger ports.Messenger,
	contacts ports.ContactRepository,
	messages ports.MessageRepository,
	log zerolog.Logger,
) *WhatsAppService {
	return &WhatsAppService{outbox{messenger: messenger, contacts: contacts, messages: messages, log: log}}
}

func (s *WhatsAppService) Status(ctx context.Context) ports.MessengerStatus {
	return s.messenger.Status(ctx)
}

// SendDirect sends body to a phone number, creating a contact for numbers
// seen for the first time.
func (s *WhatsAppService) SendDirect(ctx context.Context, to, body string) (*domain.Message, error) {
	phone := domain.NormalizePhone(to)
	if phone == "" {
		return nil, fmt.Errorf("%w: to is required", domain.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	contact, err := findOrCreateContact(ctx, s.contacts, phone)
	if err != nil {
		return nil, fmt.Errorf("send direct: %w", err)
	}
	return s.deliver(ctx, contact, body, "")
}

// SendBulk sends body to each contact in turn. A failure for one recipient
// does not stop the batch.
func (s *WhatsAppService) SendBulk(ctx context.Context, contactIDs []string, body string) (*ports.BulkSendResult, error) {
	if len(contactIDs) == 0 {
		return nil, fmt.Errorf("%w: contactIds must not be empty", domain.ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	res := &ports.BulkSendResult{
		BatchID: uuid.NewString(),
		Sent:    []ports.BulkSendItem{},
		Failed:  []ports.BulkSendItem{},
	}
	for _, id := range contactIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		contact, err := s.contacts.FindByID(ctx, id)
		if err != nil {
			res.Failed = append(res.Failed, ports.BulkSendItem{ContactID: id, Error: err.Error()})
			continue
		}
		msg, err := s.deliver(ctx, contact, body, "")
		if err != nil {
			res.Failed = append(res.Failed, ports.BulkSendItem{ContactID: id, Error: err.Error()})
			continue
		}
		res.Sent = append(res.Sent, ports.BulkSendItem{ContactID: id, MessageID: msg.ID})
	}

	s.log.Info().
		Str("batch_id", res.BatchID).
		Int("sent", len(res.Sent)).
		Int("failed", len(res.Failed)).
		Msg("bulk send finished")
	return res, nil
}

func (s *WhatsAppService) Restart(ctx context.Context) error {
	if err := s.messenger.Restart(ctx); err != nil {
		return fmt.Errorf("restart whatsapp: %w", err)
	}
	s.log.Info().Msg("whatsapp restart requested")
	return nil
}

func findOrCreateContact(ctx context.Context, contacts ports.ContactRepository, phone string) (*domain.Contact, error) {
	c, err := contacts.FindByPhone(ctx, phone)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, domain.ErrContactNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	c, err = contacts.Create(ctx, &domain.Contact{
		PhoneNumber: phone,
		Name:        defaultContactName(phone),
		Tags:        []string{},
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if errors.Is(err, domain.ErrDuplicatePhone) {
		// Lost a race with a concurrent create for the same number.
		return contacts.FindByPhone(ctx, phone)
	}
	return c, err
}

// WhatsAppResetNotifier delivers password-reset tokens to the user's phone.
// Users without a phone number are skipped.
type WhatsAppResetNotifier struct {
	messenger ports.Messenger
	ttl       time.Duration
}

// NewWhatsAppResetNotifier builds a notifier whose message states ttl, the
// lifetime of the tokens it delivers.
func NewWhatsAppResetNotifier(m ports.Messenger, ttl time.Duration) *WhatsAppResetNotifier {
	return &WhatsAppResetNotifier{messenger: m, ttl: ttl}
}

func (n *WhatsAppResetNotifier) NotifyPasswordReset(ctx context.Context, user *domain.User, token string) error {
	phone := domain.NormalizePhone(user.Phone)
	if phone == "" {
		return nil
	}
	body := fmt.Sprintf("Your password reset code is %s. It expires in %s.", token, humanDuration(n.ttl))
	_, err := n.messenger.Send(ctx, phone, body)
	return err
}

// humanDuration renders whole minutes or hours, e.g. "30 minutes", "1 hour".
func humanDuration(d time.Duration) string {
	unit, n := "minute", int(d.Round(time.Minute)/time.Minute)
	if n >= 60 && n%60 == 0 {
		unit, n = "hour", n/60
	}
	if n != 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s", n, unit)
}
