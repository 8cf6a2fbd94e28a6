package ports

import (
	"context"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// RegisterInput carries a self-registration request. Role defaults to agent.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateProfileInput carries optional profile changes; nil fields are untouched.
type UpdateProfileInput struct {
	Name           *string
	Email          *string
	Password       *string
	Phone          *string
	ProfilePicture *string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, password string) error
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
}

// PasswordHasher is a one-way salted hash with constant-time verification.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, hash, password string) (bool, error)
}

// TokenIssuer signs and verifies bearer tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	Verify(token string) (string, error)
}

// ResetNotifier delivers a plaintext reset token out-of-band.
type ResetNotifier interface {
	NotifyPasswordReset(ctx context.Context, user *domain.User, token string) error
}
