package handler

import (
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

// --- Request → Service input ---

func toCreateContactInput(req createContactRequest) ports.CreateContactInput {
	return ports.CreateContactInput{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Tags:        req.Tags,
		Notes:       req.Notes,
	}
}

func toContactChanges(req updateContactRequest) ports.ContactChanges {
	return ports.ContactChanges{
		Name:     req.Name,
		Email:    req.Email,
		Company:  req.Company,
		Tags:     req.Tags,
		Notes:    req.Notes,
		IsActive: req.IsActive,
	}
}

// --- Service result → HTTP response ---

func toMessageResponse(v ports.MessageView) messageResponse {
	resp := messageResponse{Message: v.Message}
	if v.Contact != nil {
		resp.Contact = &contactSummary{
			ID:          v.Contact.ID,
			Name:        v.Contact.Name,
			PhoneNumber: v.Contact.PhoneNumber,
		}
	}
	return resp
}

func toMessageResponses(views []ports.MessageView) []messageResponse {
	out := make([]messageResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toMessageResponse(v))
	}
	return out
}

func toStatsResponse(s *ports.MessageStats, from, to time.Time) messageStatsResponse {
	resp := messageStatsResponse{
		Total:    s.Total,
		Incoming: s.Incoming,
		Outgoing: s.Outgoing,
		ByStatus: s.ByStatus,
		ByType:   s.ByType,
	}
	if resp.ByStatus == nil {
		resp.ByStatus = map[string]int64{}
	}
	if resp.ByType == nil {
		resp.ByType = map[string]int64{}
	}
	if !from.IsZero() {
		resp.StartDate = &from
	}
	if !to.IsZero() {
		resp.EndDate = &to
	}
	return resp
}

func toStatusResponse(s ports.MessengerStatus) statusResponse {
	return statusResponse{Authenticated: s.Authenticated, Connected: s.Connected, QRCode: s.QRCode}
}

func toBulkItems(items []ports.BulkSendItem) []bulkItem {
	out := make([]bulkItem, 0, len(items))
	for _, it := range items {
		out = append(out, bulkItem{ContactID: it.ContactID, MessageID: it.MessageID, Error: it.Error})
	}
	return out
}

func toSendBulkResponse(r *ports.BulkSendResult) sendBulkResponse {
	return sendBulkResponse{
		BatchID:     r.BatchID,
		TotalSent:   len(r.Sent),
		TotalFailed: len(r.Failed),
		Results:     toBulkItems(r.Sent),
		Errors:      toBulkItems(r.Failed),
	}
}
