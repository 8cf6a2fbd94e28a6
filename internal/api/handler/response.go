package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// envelope is the JSON shape of every API response.
type envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	ResetToken string      `json:"resetToken,omitempty"`
	Error      string      `json:"error,omitempty"`
}

type pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func toPagination(p ports.Pagination) *pagination {
	return &pagination{Total: p.Total, Page: p.Page, Limit: p.Limit, Pages: p.Pages}
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func okMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Message: msg})
}

func okPage(c echo.Context, data any, p ports.Pagination) error {
	return c.JSON(http.StatusOK, envelope{Success: true, Data: data, Pagination: toPagination(p)})
}
