package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/merrbio/marketplace-api/internal/core/domain"
)

type stubUserService struct {
	listFn   func(ctx context.Context) ([]domain.User, error)
	createFn func(ctx context.Context, username, password, role string) (*domain.User, error)
	deleteFn func(ctx context.Context, username string) error
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, username, password, role string) (*domain.User, error) {
	return s.createFn(ctx, username, password, role)
}

func (s *stubUserService) Delete(ctx context.Context, username string) error {
	return s.deleteFn(ctx, username)
}

func TestUserHandler_List(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{
				{ID: 1, Username: "admin", Role: domain.RoleAdmin, PasswordHash: "$2a$10$secret"},
				{ID: 2, Username: "ana", Role: domain.RoleFarmer, PasswordHash: "$2a$10$secret"},
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("password hashes leaked into response: %s", rec.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 || users[1]["username"] != "ana" {
		t.Fatalf("unexpected payload: %+v", users)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(ctx context.Context, username, password, role string) (*domain.User, error) {
			if username != "driton" || role != "konsumator" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.User{ID: 3, Username: username, Role: role}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"driton","password":"secret","role":"konsumator"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RejectsBadPayload(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(ctx context.Context, username, password, role string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"jo","password":"short","role":"wizard"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Create(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	for _, want := range []string{"username", "password", "role"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("expected %q in error message, got %s", want, rec.Body.String())
		}
	}
}

func TestUserHandler_Create_DuplicateUsername(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubUserService{
		createFn: func(ctx context.Context, username, password, role string) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	handler := NewUserHandler(stub)

	body := strings.NewReader(`{"username":"ana","password":"secret","role":"fermer"}`)
	req := httptest.NewRequest(http.MethodPost, "/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = handler.Create(c)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_Success(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, username string) error {
			if username != "ana" {
				t.Fatalf("unexpected username %q", username)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/users/ana", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ana")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, username string) error {
			return domain.ErrUserNotFound
		},
	}
	handler := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/users/ghost", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("ghost")

	_ = handler.Delete(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
