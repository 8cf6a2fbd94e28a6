package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const defaultMessagePageSize = 50

type MessageService struct {
	outbox
}

func NewMessageService(
	messages ports.MessageRepository,
	contacts ports.ContactRepository,
	messenger ports.Messenger,
	log zerolog.Logger,
) *MessageService {
	return &MessageService{outbox{messenger: messenger, contacts: contacts, messages: messages, log: log}}
}

func (s *MessageService) List(ctx context.Context, in ports.ListMessagesInput) (*ports.ListMessagesResult, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultMessagePageSize)

	if in.Direction != "" &&
		in.Direction != string(domain.DirectionIncoming) &&
		in.Direction != string(domain.DirectionOutgoing) {
		return nil, fmt.Errorf("%w: direction must be incoming or outgoing", domain.ErrValidation)
	}
	if !in.StartDate.IsZero() && !in.EndDate.IsZero() && in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrValidation)
	}

	msgs, total, err := s.messages.List(ctx, ports.ListMessagesFilter{
		ContactID: in.ContactID,
		Direction: in.Direction,
		From:      in.StartDate,
		To:        in.EndDate,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	items, err := s.withContacts(ctx, msgs)
	if err != nil {
		return nil, err
	}
	return &ports.ListMessagesResult{Items: items, Pagination: newPagination(total, page, limit)}, nil
}

// withContacts resolves the contact of every message in one lookup.
func (s *MessageService) withContacts(ctx context.Context, msgs []*domain.Message) ([]ports.MessageView, error) {
	ids := make([]string, 0, len(msgs))
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		if !seen[m.ContactID] {
			seen[m.ContactID] = true
			ids = append(ids, m.ContactID)
		}
	}

	contacts := map[string]*domain.Contact{}
	if len(ids) > 0 {
		var err error
		if contacts, err = s.contacts.FindByIDs(ctx, ids); err != nil {
			return nil, fmt.Errorf("load message contacts: %w", err)
		}
	}

	views := make([]ports.MessageView, 0, len(msgs))
	for _, m := range msgs {
		views = append(views, ports.MessageView{Message: m, Contact: summarize(contacts[m.ContactID])})
	}
	return views, nil
}

func (s *MessageService) Get(ctx context.Context, id string) (*ports.MessageView, error) {
	m, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	views, err := s.withContacts(ctx, []*domain.Message{m})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *MessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	if in.ContactID == "" {
		return nil, fmt.Errorf("%w: contactId is required", domain.ErrValidation)
	}
	if strings.TrimSpace(in.Content) == "" && in.MediaURL == "" {
		return nil, fmt.Errorf("%w: content is required", domain.ErrValidation)
	}

	contact, err := s.contacts.FindByID(ctx, in.ContactID)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("send message: %w", err)
	}

	return s.deliver(ctx, contact, in.Content, in.MediaURL)
}

func (s *MessageService) UpdateStatus(ctx context.Context, id, status string) (*domain.Message, error) {
	st := domain.MessageStatus(status)
	if !st.Settable() {
		return nil, domain.ErrInvalidMessageStatus
	}
	m, err := s.messages.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update message status: %w", err)
	}
	return m, nil
}

// Delete hides a message from listings; the record itself is kept.
func (s *MessageService) Delete(ctx context.Context, id string) error {
	if err := s.messages.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			return err
		}
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (s *MessageService) Stats(ctx context.Context, from, to time.Time) (*ports.MessageStats, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrValidation)
	}
	stats, err := s.messages.Stats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("message stats: %w", err)
	}
	return stats, nil
}
