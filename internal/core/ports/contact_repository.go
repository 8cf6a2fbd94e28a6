package ports

import (
	"context"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// ListContactsFilter carries query parameters for listing contacts.
type ListContactsFilter struct {
	Search  string // optional: case-insensitive match on name, phone, email or company
	SortBy  string // one of the ContactSort* fields
	SortAsc bool
	Page    int // 1-based
	Limit   int
}

const (
	ContactSortCreatedAt   = "createdAt"
	ContactSortName        = "name"
	ContactSortLastContact = "lastContact"
	ContactSortPhone       = "phoneNumber"
)

// ContactChanges lists the mutable fields of a contact; nil means unchanged.
type ContactChanges struct {
	Name     *string
	Email    *string
	Company  *string
	Tags     *[]string
	Notes    *string
	IsActive *bool
}

// ContactRepository defines persistence for contacts. Lookups return
// domain.ErrContactNotFound, duplicate phone numbers domain.ErrDuplicatePhone.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Contact, error)
	FindByPhone(ctx context.Context, phone string) (*domain.Contact, error)
	List(ctx context.Context, filter ListContactsFilter) ([]*domain.Contact, int64, error)
	Update(ctx context.Context, id string, changes ContactChanges) (*domain.Contact, error)
	TouchLastContact(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
