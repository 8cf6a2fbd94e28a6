package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/api/handler"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

type stubVerifier struct {
	ids map[string]string
	err error
}

func (s stubVerifier) Verify(token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	id, ok := s.ids[token]
	if !ok {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}

type stubUsers struct {
	users map[string]*domain.User
	err   error
}

func (s stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(zerolog.Nop())
	return e
}

func fixtures() (stubVerifier, stubUsers) {
	tokens := stubVerifier{ids: map[string]string{
		"good":     "u1",
		"disabled": "u2",
		"orphan":   "u3",
	}}
	users := stubUsers{users: map[string]*domain.User{
		"u1": {ID: "u1", Role: domain.RoleAgent, IsActive: true},
		"u2": {ID: "u2", Role: domain.RoleAdmin, IsActive: false},
	}}
	return tokens, users
}

// serve runs the Auth middleware for a request carrying header and reports
// whether the next handler ran.
func serve(t *testing.T, header string, tokens TokenVerifier, users UserLoader) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := Auth(tokens, users)(func(c echo.Context) error {
		called = true
		u, err := handler.CurrentUser(c)
		if err != nil {
			t.Fatalf("user not set: %v", err)
		}
		if u.ID != "u1" {
			t.Fatalf("expected user u1, got %s", u.ID)
		}
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens, users := fixtures()
	rec, called := serve(t, "Bearer good", tokens, users)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	tokens, users := fixtures()
	rec, called := serve(t, "bearer good", tokens, users)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tokens, users := fixtures()

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token good"},
		{"no token", "Bearer "},
		{"bare token", "good"},
		{"unknown token", "Bearer forged"},
		{"disabled user", "Bearer disabled"},
		{"deleted user", "Bearer orphan"},
	}

	var body string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, called := serve(t, tc.header, tokens, users)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if body == "" {
				body = rec.Body.String()
			} else if rec.Body.String() != body {
				t.Fatalf("401 bodies differ: %q vs %q", rec.Body.String(), body)
			}
		})
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	_, users := fixtures()
	rec, called := serve(t, "Bearer good", stubVerifier{err: domain.ErrExpiredToken}, users)

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "not authorized") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestAuthMiddleware_StoreFailureIs500(t *testing.T) {
	tokens, _ := fixtures()
	rec, called := serve(t, "Bearer good", tokens, stubUsers{err: errors.New("connection reset")})

	if called {
		t.Fatalf("should not reach next")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestExtractToken(t *testing.T) {
	got, err := extractToken("Bearer   abc.def.ghi ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc.def.ghi" {
		t.Fatalf("expected trimmed token, got %q", got)
	}

	if _, err := extractToken(""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
