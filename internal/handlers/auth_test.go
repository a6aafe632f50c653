package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type requestValidator struct {
	validator *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validator.Struct(i)
}

func registerContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = &requestValidator{validator: validator.New()}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

// TestRegisterRejectsUnknownRole проверяет отказ на неподдерживаемой роли.
func TestRegisterRejectsUnknownRole(t *testing.T) {
	handler := NewAuthHandler(nil, nil, nil)

	c, rec := registerContext(t, `{
		"email": "user@test.local",
		"password": "secret1",
		"full_name": "Test User",
		"role": "manager"
	}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("expected handled response, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "invalid role") {
		t.Fatalf("expected invalid role message, got %s", rec.Body.String())
	}
}

// TestRegisterRejectsShortPassword проверяет минимальную длину пароля.
func TestRegisterRejectsShortPassword(t *testing.T) {
	handler := NewAuthHandler(nil, nil, nil)

	c, rec := registerContext(t, `{
		"email": "user@test.local",
		"password": "123",
		"full_name": "Test User"
	}`)

	if err := handler.Register(c); err != nil {
		t.Fatalf("expected handled response, got %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
