package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

type stubMessageService struct {
	listFn   func(ctx context.Context, in ports.ListMessagesInput) (*ports.ListMessagesResult, error)
	getFn    func(ctx context.Context, id string) (*ports.MessageView, error)
	sendFn   func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error)
	statusFn func(ctx context.Context, id, status string) (*domain.Message, error)
	deleteFn func(ctx context.Context, id string) error
	statsFn  func(ctx context.Context, from, to time.Time) (*ports.MessageStats, error)
}

func (s *stubMessageService) List(ctx context.Context, in ports.ListMessagesInput) (*ports.ListMessagesResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubMessageService) Get(ctx context.Context, id string) (*ports.MessageView, error) {
	return s.getFn(ctx, id)
}

func (s *stubMessageService) Send(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
	return s.sendFn(ctx, in)
}

func (s *stubMessageService) UpdateStatus(ctx context.Context, id, status string) (*domain.Message, error) {
	return s.statusFn(ctx, id, status)
}

func (s *stubMessageService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubMessageService) Stats(ctx context.Context, from, to time.Time) (*ports.MessageStats, error) {
	return s.statsFn(ctx, from, to)
}

func TestMessageHandler_List_DateRange(t *testing.T) {
	e := newTestEcho()
	stub := &stubMessageService{
		listFn: func(ctx context.Context, in ports.ListMessagesInput) (*ports.ListMessagesResult, error) {
			wantFrom := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			if !in.StartDate.Equal(wantFrom) {
				t.Fatalf("unexpected start %v", in.StartDate)
			}
			if in.EndDate.Day() != 31 || in.EndDate.Hour() != 23 {
				t.Fatalf("end date should cover the whole day, got %v", in.EndDate)
			}
			if in.Direction != "incoming" || in.ContactID != "c1" {
				t.Fatalf("unexpected filter %+v", in)
			}
			return &ports.ListMessagesResult{
				Items: []ports.MessageView{{
					Message: &domain.Message{ID: "m1", ContactID: "c1", Direction: domain.DirectionIncoming, Type: domain.MessageText},
					Contact: &ports.ContactSummary{ID: "c1", Name: "Ana", PhoneNumber: "5511999"},
				}},
				Pagination: ports.Pagination{Total: 1, Page: 1, Limit: 50, Pages: 1},
			}, nil
		},
	}
	h := NewMessageHandler(stub)

	rec := call(e, h.List, http.MethodGet,
		"/api/messages?direction=incoming&contactId=c1&startDate=2026-01-01&endDate=2026-01-31", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	items, _ := decode(t, rec)["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one message, got %d", len(items))
	}
	item := items[0].(map[string]any)
	contact, _ := item["contact"].(map[string]any)
	if item["messageType"] != "text" || contact["name"] != "Ana" {
		t.Fatalf("unexpected item %+v", item)
	}
}

func TestMessageHandler_List_BadDate(t *testing.T) {
	e := newTestEcho()
	h := NewMessageHandler(&stubMessageService{})

	rec := call(e, h.List, http.MethodGet, "/api/messages?startDate=yesterday", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageHandler_Send(t *testing.T) {
	e := newTestEcho()
	stub := &stubMessageService{
		sendFn: func(ctx context.Context, in ports.SendMessageInput) (*domain.Message, error) {
			switch in.ContactID {
			case "offline":
				return nil, domain.ErrSendFailed
			case "missing":
				return nil, domain.ErrContactNotFound
			}
			return &domain.Message{ID: "m1", ContactID: in.ContactID, Content: in.Content, Status: domain.StatusSent}, nil
		},
	}
	h := NewMessageHandler(stub)

	cases := []struct {
		body string
		want int
	}{
		{`{"contactId":"c1","content":"hi"}`, http.StatusCreated},
		{`{"contactId":"c1"}`, http.StatusBadRequest},
		{`{"contactId":"c1","content":"hi","mediaUrl":"not a url"}`, http.StatusBadRequest},
		{`{"contactId":"missing","content":"hi"}`, http.StatusNotFound},
		{`{"contactId":"offline","content":"hi"}`, http.StatusBadGateway},
	}
	for _, tc := range cases {
		rec := call(e, h.Send, http.MethodPost, "/api/messages", tc.body)
		if rec.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.body, tc.want, rec.Code)
		}
	}
}

func TestMessageHandler_UpdateStatus_Invalid(t *testing.T) {
	e := newTestEcho()
	stub := &stubMessageService{
		statusFn: func(ctx context.Context, id, status string) (*domain.Message, error) {
			return nil, domain.ErrInvalidMessageStatus
		},
	}
	h := NewMessageHandler(stub)

	rec := call(e, h.UpdateStatus, http.MethodPut, "/api/messages/m1/status", `{"status":"received"}`, withParam("id", "m1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMessageHandler_Stats(t *testing.T) {
	e := newTestEcho()
	stub := &stubMessageService{
		statsFn: func(ctx context.Context, from, to time.Time) (*ports.MessageStats, error) {
			if !from.IsZero() || !to.IsZero() {
				t.Fatalf("expected open range, got %v..%v", from, to)
			}
			return &ports.MessageStats{Total: 3, Incoming: 1, Outgoing: 2, ByStatus: map[string]int64{"sent": 2, "received": 1}}, nil
		},
	}
	h := NewMessageHandler(stub)

	rec := call(e, h.Stats, http.MethodGet, "/api/messages/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, _ := decode(t, rec)["data"].(map[string]any)
	if data["total"] != float64(3) || data["outgoing"] != float64(2) {
		t.Fatalf("unexpected stats %+v", data)
	}
	if _, ok := data["byType"].(map[string]any); !ok {
		t.Fatalf("byType should render as an object, got %+v", data["byType"])
	}
}
