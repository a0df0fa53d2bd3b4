package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/bookstore/catalog-system/internal/core/domain"
)

type stubRoleService struct {
	createFn func(ctx context.Context, name string) (*domain.Role, error)
	updateFn func(ctx context.Context, id int64, name string) (*domain.Role, error)
	deleteFn func(ctx context.Context, id int64) error
	getFn    func(ctx context.Context, id int64) (*domain.Role, error)
	listFn   func(ctx context.Context) ([]*domain.Role, error)
}

func (s *stubRoleService) Create(ctx context.Context, name string) (*domain.Role, error) {
	return s.createFn(ctx, name)
}

func (s *stubRoleService) Update(ctx context.Context, id int64, name string) (*domain.Role, error) {
	return s.updateFn(ctx, id, name)
}

func (s *stubRoleService) Delete(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func (s *stubRoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.getFn(ctx, id)
}

func (s *stubRoleService) List(ctx context.Context) ([]*domain.Role, error) {
	return s.listFn(ctx)
}

func TestRoleHandler_Create(t *testing.T) {
	e := newTestEcho()
	h := NewRoleHandler(&stubRoleService{
		createFn: func(_ context.Context, name string) (*domain.Role, error) {
			return &domain.Role{ID: 3, Name: name}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/roles", `{"name":"Clerk"}`), rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp roleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 3 || resp.Name != "Clerk" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestRoleHandler_Create_EmptyName(t *testing.T) {
	e := newTestEcho()
	h := NewRoleHandler(&stubRoleService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/roles", `{"name":""}`), httptest.NewRecorder())
	var he *echo.HTTPError
	if err := h.Create(c); !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRoleHandler_Delete_InUse(t *testing.T) {
	e := newTestEcho()
	h := NewRoleHandler(&stubRoleService{
		deleteFn: func(context.Context, int64) error { return domain.ErrRoleInUse },
	})

	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/roles/2", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Delete(c); !errors.Is(err, domain.ErrRoleInUse) {
		t.Fatalf("expected ErrRoleInUse, got %v", err)
	}
}

func TestRoleHandler_Update(t *testing.T) {
	e := newTestEcho()
	h := NewRoleHandler(&stubRoleService{
		updateFn: func(_ context.Context, id int64, name string) (*domain.Role, error) {
			if id != 2 || name != "Staff" {
				t.Fatalf("unexpected args: %d %q", id, name)
			}
			return &domain.Role{ID: id, Name: name}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/roles/2", `{"name":"Staff"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRoleHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewRoleHandler(&stubRoleService{
		listFn: func(context.Context) ([]*domain.Role, error) {
			return []*domain.Role{{ID: 1, Name: "Admin"}, {ID: 2, Name: "User"}}, nil
		},
	})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/roles", nil), rec)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp roleListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 || resp.Data[0].Name != "Admin" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
