package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

type stubContactService struct {
	listFn     func(ctx context.Context, in ports.ListContactsInput) (*ports.ListContactsResult, error)
	getFn      func(ctx context.Context, id string) (*domain.Contact, error)
	createFn   func(ctx context.Context, in ports.CreateContactInput) (*domain.Contact, error)
	updateFn   func(ctx context.Context, id string, changes ports.ContactChanges) (*domain.Contact, error)
	deleteFn   func(ctx context.Context, id string) (*ports.DeleteContactResult, error)
	messagesFn func(ctx context.Context, id string, page, limit int) (*ports.ListMessagesResult, error)
}

func (s *stubContactService) List(ctx context.Context, in ports.ListContactsInput) (*ports.ListContactsResult, error) {
	return s.listFn(ctx, in)
}

func (s *stubContactService) Get(ctx context.Context, id string) (*domain.Contact, error) {
	return s.getFn(ctx, id)
}

func (s *stubContactService) Create(ctx context.Context, in ports.CreateContactInput) (*domain.Contact, error) {
	return s.createFn(ctx, in)
}

func (s *stubContactService) Update(ctx context.Context, id string, changes ports.ContactChanges) (*domain.Contact, error) {
	return s.updateFn(ctx, id, changes)
}

func (s *stubContactService) Delete(ctx context.Context, id string) (*ports.DeleteContactResult, error) {
	return s.deleteFn(ctx, id)
}

func (s *stubContactService) Messages(ctx context.Context, id string, page, limit int) (*ports.ListMessagesResult, error) {
	return s.messagesFn(ctx, id, page, limit)
}

func TestContactHandler_List_PassesQuery(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		listFn: func(ctx context.Context, in ports.ListContactsInput) (*ports.ListContactsResult, error) {
			if in.Page != 2 || in.Limit != 5 || in.Search != "acme" || in.SortBy != "name" || in.SortOrder != "asc" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.ListContactsResult{
				Items:      []*domain.Contact{{ID: "c1", PhoneNumber: "5511999", Name: "Acme", Tags: []string{}}},
				Pagination: ports.Pagination{Total: 6, Page: 2, Limit: 5, Pages: 2},
			}, nil
		},
	}
	h := NewContactHandler(stub)

	rec := call(e, h.List, http.MethodGet, "/api/contacts?page=2&limit=5&search=acme&sortBy=name&sortOrder=asc", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	p, ok := resp["pagination"].(map[string]any)
	if !ok || p["total"] != float64(6) || p["pages"] != float64(2) {
		t.Fatalf("unexpected pagination: %+v", resp["pagination"])
	}
	items, _ := resp["data"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one contact, got %d", len(items))
	}
}

func TestContactHandler_List_BadPage(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	rec := call(e, h.List, http.MethodGet, "/api/contacts?page=two", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestContactHandler_Create(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		createFn: func(ctx context.Context, in ports.CreateContactInput) (*domain.Contact, error) {
			if in.PhoneNumber == "dup" {
				return nil, domain.ErrDuplicatePhone
			}
			return &domain.Contact{ID: "c1", PhoneNumber: in.PhoneNumber, Name: in.Name, Tags: in.Tags, IsActive: true}, nil
		},
	}
	h := NewContactHandler(stub)

	rec := call(e, h.Create, http.MethodPost, "/api/contacts", `{"phoneNumber":"5511999","name":"Ana","tags":["vip"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = call(e, h.Create, http.MethodPost, "/api/contacts", `{"name":"No phone"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without phone, got %d", rec.Code)
	}

	rec = call(e, h.Create, http.MethodPost, "/api/contacts", `{"phoneNumber":"dup"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 on duplicate, got %d", rec.Code)
	}
}

func TestContactHandler_Update_PartialFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		updateFn: func(ctx context.Context, id string, changes ports.ContactChanges) (*domain.Contact, error) {
			if id != "c1" {
				t.Fatalf("unexpected id %s", id)
			}
			if changes.IsActive == nil || *changes.IsActive || changes.Name != nil || changes.Tags == nil || len(*changes.Tags) != 0 {
				t.Fatalf("unexpected changes: %+v", changes)
			}
			return &domain.Contact{ID: id}, nil
		},
	}
	h := NewContactHandler(stub)

	rec := call(e, h.Update, http.MethodPut, "/api/contacts/c1", `{"isActive":false,"tags":[]}`, withParam("id", "c1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestContactHandler_Delete(t *testing.T) {
	e := newTestEcho()
	stub := &stubContactService{
		deleteFn: func(ctx context.Context, id string) (*ports.DeleteContactResult, error) {
			switch id {
			case "busy":
				return &ports.DeleteContactResult{Deactivated: true}, nil
			case "gone":
				return nil, domain.ErrContactNotFound
			}
			return &ports.DeleteContactResult{}, nil
		},
	}
	h := NewContactHandler(stub)

	rec := call(e, h.Delete, http.MethodDelete, "/api/contacts/busy", "", withParam("id", "busy"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg, _ := decode(t, rec)["message"].(string); msg != "contact has messages and was marked inactive" {
		t.Fatalf("unexpected message %q", msg)
	}

	rec = call(e, h.Delete, http.MethodDelete, "/api/contacts/gone", "", withParam("id", "gone"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
