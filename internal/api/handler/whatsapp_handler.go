package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// WhatsAppHandler exposes the WhatsApp session and direct sends.
type WhatsAppHandler struct {
	service ports.WhatsAppService
}

func NewWhatsAppHandler(service ports.WhatsAppService) *WhatsAppHandler {
	return &WhatsAppHandler{service: service}
}

// Status handles GET /api/whatsapp/status.
//
// @Summary      WhatsApp session status
// @Tags         whatsapp
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=statusResponse}
// @Router       /whatsapp/status [get]
func (h *WhatsAppHandler) Status(c echo.Context) error {
	return ok(c, http.StatusOK, toStatusResponse(h.service.Status(c.Request().Context())))
}

// Send handles POST /api/whatsapp/send. Unknown numbers get a new contact.
//
// @Summary      Send a message to a phone number
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendDirectRequest  true  "Recipient and text"
// @Success      200   {object}  envelope{data=sendDirectResponse}
// @Failure      400   {object}  envelope
// @Failure      502   {object}  envelope
// @Router       /whatsapp/send [post]
func (h *WhatsAppHandler) Send(c echo.Context) error {
	var req sendDirectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	msg, err := h.service.SendDirect(c.Request().Context(), req.To, req.Message)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, sendDirectResponse{MessageID: msg.WhatsAppMessageID, ContactID: msg.ContactID})
}

// SendBulk handles POST /api/whatsapp/send-bulk.
//
// @Summary      Send one message to many contacts
// @Tags         whatsapp
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendBulkRequest  true  "Contact ids and text"
// @Success      200   {object}  envelope{data=sendBulkResponse}
// @Failure      400   {object}  envelope
// @Failure      403   {object}  envelope
// @Router       /whatsapp/send-bulk [post]
func (h *WhatsAppHandler) SendBulk(c echo.Context) error {
	var req sendBulkRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.service.SendBulk(c.Request().Context(), req.Contacts, req.Message)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, toSendBulkResponse(res))
}

// Restart handles POST /api/whatsapp/restart. The session restarts in the
// background; poll Status to follow it.
//
// @Summary      Restart the WhatsApp session
// @Tags         whatsapp
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  envelope
// @Failure      403  {object}  envelope
// @Failure      502  {object}  envelope
// @Router       /whatsapp/restart [post]
func (h *WhatsAppHandler) Restart(c echo.Context) error {
	if err := h.service.Restart(c.Request().Context()); err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, envelope{Success: true, Message: "whatsapp session restarting"})
}
