package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/api/handler"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

// RBAC admits only users whose role is in allowedRoles. It must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := handler.CurrentUser(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
