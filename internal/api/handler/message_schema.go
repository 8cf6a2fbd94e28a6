package handler

import (
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
)

type sendMessageRequest struct {
	ContactID string `json:"contactId" validate:"required"`
	Content   string `json:"content"   validate:"required"`
	MediaURL  string `json:"mediaUrl"  validate:"omitempty,url"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type contactSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// messageResponse is a message with its contact resolved. Contact is omitted
// when the contact no longer exists.
type messageResponse struct {
	*domain.Message
	Contact *contactSummary `json:"contact,omitempty"`
}

type messageStatsResponse struct {
	Total     int64            `json:"total"`
	Incoming  int64            `json:"incoming"`
	Outgoing  int64            `json:"outgoing"`
	ByStatus  map[string]int64 `json:"byStatus"`
	ByType    map[string]int64 `json:"byType"`
	StartDate *time.Time       `json:"startDate,omitempty"`
	EndDate   *time.Time       `json:"endDate,omitempty"`
}
