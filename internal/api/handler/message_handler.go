package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// MessageHandler handles HTTP requests for the message log.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /api/messages.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "Page (default 1)"
// @Param        limit      query     int     false  "Page size (default 50, max 100)"
// @Param        direction  query     string  false  "incoming | outgoing"
// @Param        contactId  query     string  false  "Only messages of this contact"
// @Param        startDate  query     string  false  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  false  "YYYY-MM-DD or RFC 3339"
// @Success      200        {object}  envelope{data=[]messageResponse}
// @Failure      400        {object}  envelope
// @Router       /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	pq, err := bindPage(c)
	if err != nil {
		return err
	}
	from, err := parseDate(c, "startDate", false)
	if err != nil {
		return err
	}
	to, err := parseDate(c, "endDate", true)
	if err != nil {
		return err
	}

	res, err := h.service.List(c.Request().Context(), ports.ListMessagesInput{
		Page:      pq.Page,
		Limit:     pq.Limit,
		Direction: c.QueryParam("direction"),
		ContactID: c.QueryParam("contactId"),
		StartDate: from,
		EndDate:   to,
	})
	if err != nil {
		return err
	}
	return okPage(c, toMessageResponses(res.Items), res.Pagination)
}

// Get handles GET /api/messages/:id.
//
// @Summary      Get a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  envelope{data=messageResponse}
// @Failure      404  {object}  envelope
// @Router       /messages/{id} [get]
func (h *MessageHandler) Get(c echo.Context) error {
	view, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, toMessageResponse(*view))
}

// Send handles POST /api/messages.
//
// @Summary      Send a message to a contact
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendMessageRequest  true  "Message"
// @Success      201   {object}  envelope{data=domain.Message}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Failure      502   {object}  envelope
// @Router       /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.Send(c.Request().Context(), ports.SendMessageInput{
		ContactID: req.ContactID,
		Content:   req.Content,
		MediaURL:  req.MediaURL,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, msg)
}

// UpdateStatus handles PUT /api/messages/:id/status.
//
// @Summary      Change a message's delivery status
// @Tags         messages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Message id"
// @Param        body  body      updateStatusRequest  true  "sent | delivered | read | failed"
// @Success      200   {object}  envelope{data=domain.Message}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /messages/{id}/status [put]
func (h *MessageHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, msg)
}

// Delete handles DELETE /api/messages/:id.
//
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return okMessage(c, "message deleted")
}

// Stats handles GET /api/messages/stats.
//
// @Summary      Message statistics
// @Tags         messages
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  false  "YYYY-MM-DD or RFC 3339"
// @Param        endDate    query     string  false  "YYYY-MM-DD or RFC 3339"
// @Success      200        {object}  envelope{data=messageStatsResponse}
// @Failure      400        {object}  envelope
// @Router       /messages/stats [get]
func (h *MessageHandler) Stats(c echo.Context) error {
	from, err := parseDate(c, "startDate", false)
	if err != nil {
		return err
	}
	to, err := parseDate(c, "endDate", true)
	if err != nil {
		return err
	}

	stats, err := h.service.Stats(c.Request().Context(), from, to)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, toStatsResponse(stats, from, to))
}
