package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// ContactHandler handles HTTP requests for the contact book.
type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /api/contacts.
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page (default 1)"
// @Param        limit      query     int     false  "Page size (default 20, max 100)"
// @Param        search     query     string  false  "Match on name, phone, email or company"
// @Param        sortBy     query     string  false  "createdAt | name | lastContact | phoneNumber"
// @Param        sortOrder  query     string  false  "asc | desc"
// @Success      200        {object}  envelope{data=[]domain.Contact}
// @Failure      401        {object}  envelope
// @Router       /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	pq, err := bindPage(c)
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), ports.ListContactsInput{
		Page:      pq.Page,
		Limit:     pq.Limit,
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	})
	if err != nil {
		return err
	}
	return okPage(c, res.Items, res.Pagination)
}

// Get handles GET /api/contacts/:id.
//
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  envelope{data=domain.Contact}
// @Failure      404  {object}  envelope
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	contact, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, contact)
}

// Create handles POST /api/contacts.
//
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createContactRequest  true  "Contact details"
// @Success      201   {object}  envelope{data=domain.Contact}
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Create(c.Request().Context(), toCreateContactInput(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/:id.
//
// @Summary      Update a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Contact id"
// @Param        body  body      updateContactRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.Contact}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	contact, err := h.service.Update(c.Request().Context(), c.Param("id"), toContactChanges(req))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/:id. Contacts with message history are
// deactivated instead of removed.
//
// @Summary      Delete a contact
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Contact id"
// @Success      200  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	res, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if res.Deactivated {
		return okMessage(c, "contact has messages and was marked inactive")
	}
	return okMessage(c, "contact deleted")
}

// Messages handles GET /api/contacts/:id/messages.
//
// @Summary      List a contact's messages
// @Tags         contacts
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      string  true   "Contact id"
// @Param        page   query     int     false  "Page (default 1)"
// @Param        limit  query     int     false  "Page size (default 50, max 100)"
// @Success      200    {object}  envelope{data=[]messageResponse}
// @Failure      404    {object}  envelope
// @Router       /contacts/{id}/messages [get]
func (h *ContactHandler) Messages(c echo.Context) error {
	pq, err := bindPage(c)
	if err != nil {
		return err
	}

	res, err := h.service.Messages(c.Request().Context(), c.Param("id"), pq.Page, pq.Limit)
	if err != nil {
		return err
	}
	return okPage(c, toMessageResponses(res.Items), res.Pagination)
}
