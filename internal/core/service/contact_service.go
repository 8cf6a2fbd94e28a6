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

const (
	defaultContactPageSize        = 20
	defaultContactMessagePageSize = 50
)

var contactSortFields = map[string]bool{
	ports.ContactSortCreatedAt:   true,
	ports.ContactSortName:        true,
	ports.ContactSortLastContact: true,
	ports.ContactSortPhone:       true,
}

type ContactService struct {
	contacts ports.ContactRepository
	messages ports.MessageRepository
	log      zerolog.Logger
}

func NewContactService(contacts ports.ContactRepository, messages ports.MessageRepository, log zerolog.Logger) *ContactService {
	return &ContactService{contacts: contacts, messages: messages, log: log}
}

func (s *ContactService) List(ctx context.Context, in ports.ListContactsInput) (*ports.ListContactsResult, error) {
	page, limit := normalizePage(in.Page, in.Limit, defaultContactPageSize)

	sortBy := in.SortBy
	if sortBy == "" {
		sortBy = ports.ContactSortCreatedAt
	}
	if !contactSortFields[sortBy] {
		return nil, fmt.Errorf("%w: cannot sort contacts by %q", domain.ErrValidation, sortBy)
	}

	items, total, err := s.contacts.List(ctx, ports.ListContactsFilter{
		Search:  strings.TrimSpace(in.Search),
		SortBy:  sortBy,
		SortAsc: strings.EqualFold(in.SortOrder, "asc"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}

	return &ports.ListContactsResult{Items: items, Pagination: newPagination(total, page, limit)}, nil
}

func (s *ContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	c, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return c, nil
}

func (s *ContactService) Create(ctx context.Context, in ports.CreateContactInput) (*domain.Contact, error) {
	phone := domain.NormalizePhone(in.PhoneNumber)
	if phone == "" {
		return nil, fmt.Errorf("%w: phoneNumber is required", domain.ErrValidation)
	}

	if _, err := s.contacts.FindByPhone(ctx, phone); err == nil {
		return nil, domain.ErrDuplicatePhone
	} else if !errors.Is(err, domain.ErrContactNotFound) {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = defaultContactName(phone)
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now().UTC()
	created, err := s.contacts.Create(ctx, &domain.Contact{
		PhoneNumber: phone,
		Name:        name,
		Email:       in.Email,
		Company:     in.Company,
		Tags:        tags,
		Notes:       in.Notes,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicatePhone) {
			return nil, err
		}
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.log.Info().Str("contact_id", created.ID).Msg("contact created")
	return created, nil
}

func (s *ContactService) Update(ctx context.Context, id string, changes ports.ContactChanges) (*domain.Contact, error) {
	if changes.Name != nil && strings.TrimSpace(*changes.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
	}
	updated, err := s.contacts.Update(ctx, id, changes)
	if err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return updated, nil
}

// Delete removes a contact without history. A contact that already has
// messages is deactivated instead so the conversation stays readable.
func (s *ContactService) Delete(ctx context.Context, id string) (*ports.DeleteContactResult, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	n, err := s.messages.CountByContact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete contact: %w", err)
	}

	if n > 0 {
		inactive := false
		if _, err := s.contacts.Update(ctx, id, ports.ContactChanges{IsActive: &inactive}); err != nil {
			return nil, fmt.Errorf("deactivate contact: %w", err)
		}
		s.log.Info().Str("contact_id", id).Int64("messages", n).Msg("contact deactivated")
		return &ports.DeleteContactResult{Deactivated: true}, nil
	}

	if err := s.contacts.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete contact: %w", err)
	}
	s.log.Info().Str("contact_id", id).Msg("contact deleted")
	return &ports.DeleteContactResult{}, nil
}

// Messages returns the conversation with a contact, newest first.
func (s *ContactService) Messages(ctx context.Context, id string, page, limit int) (*ports.ListMessagesResult, error) {
	contact, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	page, limit = normalizePage(page, limit, defaultContactMessagePageSize)
	msgs, total, err := s.messages.List(ctx, ports.ListMessagesFilter{ContactID: id, Page: page, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}

	summary := summarize(contact)
	items := make([]ports.MessageView, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ports.MessageView{Message: m, Contact: summary})
	}
	return &ports.ListMessagesResult{Items: items, Pagination: newPagination(total, page, limit)}, nil
}

func defaultContactName(phone string) string {
	return "Contact " + phone
}

func summarize(c *domain.Contact) *ports.ContactSummary {
	if c == nil {
		return nil
	}
	return &ports.ContactSummary{ID: c.ID, Name: c.Name, PhoneNumber: c.PhoneNumber}
}
