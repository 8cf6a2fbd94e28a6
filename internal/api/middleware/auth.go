package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/api/handler"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// TokenVerifier resolves a bearer token to the user id it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLoader fetches the user a verified token points at.
type UserLoader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

var (
	errMissingToken   = fmt.Errorf("%w: missing bearer token", domain.ErrUnauthorized)
	errMalformedToken = fmt.Errorf("%w: malformed authorization header", domain.ErrUnauthorized)
	errUnknownUser    = fmt.Errorf("%w: token subject does not exist", domain.ErrUnauthorized)
	errDisabledUser   = fmt.Errorf("%w: account is disabled", domain.ErrUnauthorized)
)

// Auth authenticates the request and stores the loaded user on the context.
//
// Each step moves the request one state forward:
// NoToken → TokenExtracted → TokenVerified → UserLoaded.
// The first failing step ends the request; all of them render as 401 except
// storage failures, which are 500.
func Auth(tokens TokenVerifier, users UserLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			userID, err := verifyToken(tokens, raw)
			if err != nil {
				return err
			}
			user, err := loadUser(c.Request().Context(), users, userID)
			if err != nil {
				return err
			}

			c.Set(handler.UserContextKey, user)
			return next(c)
		}
	}
}

func extractToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", errMalformedToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMalformedToken
	}
	return token, nil
}

func verifyToken(tokens TokenVerifier, raw string) (string, error) {
	id, err := tokens.Verify(raw)
	if err != nil {
		if errors.Is(err, domain.ErrExpiredToken) || errors.Is(err, domain.ErrInvalidToken) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	return id, nil
}

func loadUser(ctx context.Context, users UserLoader, id string) (*domain.User, error) {
	user, err := users.FindByID(ctx, id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, errUnknownUser
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", id, err)
	}
	if !user.IsActive {
		return nil, errDisabledUser
	}
	return user, nil
}
