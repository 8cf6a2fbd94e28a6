package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// UserContextKey is where the Auth middleware stores the loaded *domain.User.
const UserContextKey = "user"

// CurrentUser returns the user loaded by the Auth middleware. Its absence
// means the route was registered without the middleware; reject with 401.
func CurrentUser(c echo.Context) (*domain.User, error) {
	u, _ := c.Get(UserContextKey).(*domain.User)
	if u == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, msgNotAuthorized)
	}
	return u, nil
}

type pageQuery struct {
	Page  int
	Limit int
}

func bindPage(c echo.Context) (pageQuery, error) {
	var q pageQuery
	err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		BindError()
	if err != nil {
		return q, echo.NewHTTPError(http.StatusBadRequest, "page and limit must be integers")
	}
	return q, nil
}

// parseDate accepts RFC 3339 timestamps and plain YYYY-MM-DD dates. An empty
// value yields the zero time. With endOfDay, a plain date covers the whole day.
func parseDate(c echo.Context, name string, endOfDay bool) (time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// bindAndValidate binds the request body into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
