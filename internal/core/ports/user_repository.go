package ports

import (
	"context"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// UserChanges names the profile fields to overwrite. Nil fields keep their
// stored value.
type UserChanges struct {
	Name           *string
	Email          *string
	PasswordHash   *string
	Phone          *string
	ProfilePicture *string
}

// UserRepository defines persistence for operator accounts.
//
// Lookups return domain.ErrUserNotFound when nothing matches. Writes that
// collide with an existing email return domain.ErrDuplicateEmail.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByResetToken returns the user holding tokenHash whose reset window
	// is still open at now.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error)
	// UpdateProfile sets only the fields named in changes and returns the
	// stored user. Reset fields are never touched.
	UpdateProfile(ctx context.Context, id string, changes UserChanges, at time.Time) (*domain.User, error)
	// SetResetToken stores the reset-token pair, replacing any previous one.
	SetResetToken(ctx context.Context, id, tokenHash string, expiresAt, at time.Time) error
	// ConsumeResetToken atomically swaps the password hash and clears the
	// reset fields, but only while tokenHash is still stored and unexpired.
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}
