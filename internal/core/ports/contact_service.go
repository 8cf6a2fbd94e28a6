package ports

import (
	"context"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// Pagination describes one page of a listing.
type Pagination struct {
	Total int64
	Page  int
	Limit int
	Pages int
}

type ListContactsInput struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc" (default)
}

type ListContactsResult struct {
	Items      []*domain.Contact
	Pagination Pagination
}

type CreateContactInput struct {
	PhoneNumber string
	Name        string
	Email       string
	Company     string
	Tags        []string
	Notes       string
}

// DeleteContactResult tells whether the contact was removed or only deactivated.
type DeleteContactResult struct {
	Deactivated bool
}

type ContactService interface {
	List(ctx context.Context, in ListContactsInput) (*ListContactsResult, error)
	Get(ctx context.Context, id string) (*domain.Contact, error)
	Create(ctx context.Context, in CreateContactInput) (*domain.Contact, error)
	Update(ctx context.Context, id string, changes ContactChanges) (*domain.Contact, error)
	Delete(ctx context.Context, id string) (*DeleteContactResult, error)
	Messages(ctx context.Context, id string, page, limit int) (*ListMessagesResult, error)
}
