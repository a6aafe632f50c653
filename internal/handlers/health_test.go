package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

// TestHealth проверяет ответ liveness-пробы.
func TestHealth(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Health(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("expected valid json, got %v", err)
	}

	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %s", body.Status)
	}
	if body.Service != "gym-backend" {
		t.Fatalf("expected service gym-backend, got %s", body.Service)
	}
}

// TestHealthNoSideEffects проверяет идемпотентность повторных запросов.
func TestHealthNoSideEffects(t *testing.T) {
	e := echo.New()

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := Health(c); err != nil {
			t.Fatalf("expected no error on request %d, got %v", i, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200 on request %d, got %d", i, rec.Code)
		}
	}
}
