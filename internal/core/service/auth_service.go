package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/auth"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

const (
	defaultResetTokenTTL = 30 * time.Minute
	lastLoginTimeout     = 5 * time.Second
	resetNotifyTimeout   = time.Minute
)

// AuthService implements registration, login, password recovery and the
// profile operations of the signed-in user.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	notifier ports.ResetNotifier
	resetTTL time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

type AuthOption func(*AuthService)

// WithResetTokenTTL overrides the lifetime of password-reset tokens.
func WithResetTokenTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.resetTTL = ttl
		}
	}
}

// WithResetNotifier delivers reset tokens out-of-band after forgot-password.
func WithResetNotifier(n ports.ResetNotifier) AuthOption {
	return func(s *AuthService) { s.notifier = n }
}

func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	s := &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		resetTTL: defaultResetTokenTTL,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleAgent
	}
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be one of admin, manager, agent", domain.ErrValidation)
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// A concurrent registration can still lose the race at the unique index.
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return nil, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login returns domain.ErrInvalidCredentials for an unknown email, a wrong
// password and a disabled account alike.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return nil, fmt.Errorf("login: verify password: %w", err)
	}
	if !ok || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: issue token: %w", err)
	}

	now := s.now().UTC()
	user.LastLoginAt = &now
	s.touchLastLogin(ctx, user.ID, now)

	return &ports.AuthResult{User: user, Token: token}, nil
}

// touchLastLogin records the login time without holding up the response.
func (s *AuthService) touchLastLogin(ctx context.Context, userID string, at time.Time) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), lastLoginTimeout)
	go func() {
		defer cancel()
		if err := s.users.TouchLastLogin(ctx, userID, at); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to update last login")
		}
	}()
}

// ForgotPassword stores a fresh reset token for the account and returns the
// plaintext token. Any previous token is replaced.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", fmt.Errorf("forgot password: %w", err)
	}

	plain, hash, err := auth.NewResetToken()
	if err != nil {
		return "", fmt.Errorf("forgot password: generate token: %w", err)
	}

	now := s.now().UTC()
	if err := s.users.SetResetToken(ctx, user.ID, hash, now.Add(s.resetTTL), now); err != nil {
		return "", fmt.Errorf("forgot password: %w", err)
	}
	s.notifyReset(ctx, user, plain)

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return plain, nil
}

// notifyReset hands the token to the notifier off the request path; a
// WhatsApp send can hold the browser tab for its whole timeout.
func (s *AuthService) notifyReset(ctx context.Context, user *domain.User, token string) {
	if s.notifier == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resetNotifyTimeout)
	go func() {
		defer cancel()
		if err := s.notifier.NotifyPasswordReset(ctx, user, token); err != nil {
			s.log.Warn().Err(err).Str("user_id", user.ID).Msg("reset token delivery failed")
		}
	}()
}

// ResetPassword sets a new password for the holder of token. The token is
// consumed atomically in storage, so it succeeds at most once.
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	if token == "" {
		return domain.ErrInvalidOrExpiredResetToken
	}

	tokenHash := auth.HashResetToken(token)
	now := s.now().UTC()

	if _, err := s.users.FindByResetToken(ctx, tokenHash, now); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidOrExpiredResetToken
		}
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := s.hasher.Hash(ctx, password)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}

	user, err := s.users.ConsumeResetToken(ctx, tokenHash, now, hash)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidOrExpiredResetToken
		}
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return user, nil
}

// UpdateProfile writes only the supplied fields, so it never undoes a
// concurrent password reset or forgot-password request.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	changes := ports.UserChanges{Phone: in.Phone, ProfilePicture: in.ProfilePicture}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		changes.Name = &name
	}
	if in.Email != nil && *in.Email != user.Email {
		if *in.Email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
		}
		if _, err := s.users.FindByEmail(ctx, *in.Email); err == nil {
			return nil, domain.ErrDuplicateEmail
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		changes.Email = in.Email
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("%w: password cannot be empty", domain.ErrValidation)
		}
		hash, err := s.hasher.Hash(ctx, *in.Password)
		if err != nil {
			return nil, fmt.Errorf("update profile: hash password: %w", err)
		}
		changes.PasswordHash = &hash
	}

	updated, err := s.users.UpdateProfile(ctx, userID, changes, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return updated, nil
}
