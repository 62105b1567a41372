package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func newTestHandler() *Handler {
	return NewHandler(NewStaticDirectory(), NewTokenService("test-secret", time.Hour))
}

func TestLogin_Success(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	body := `{"username":"Domenico","password":"infermiere"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccessToken == "" {
		t.Error("expected non-empty access token")
	}
	if resp.TokenType != "bearer" {
		t.Errorf("expected bearer token type, got %s", resp.TokenType)
	}
	if resp.User.ID != "domenico" {
		t.Errorf("expected user id domenico, got %s", resp.User.ID)
	}
	if len(resp.User.Clinics) != 2 {
		t.Errorf("expected 2 clinics, got %v", resp.User.Clinics)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	body := `{"username":"Domenico","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}

func TestMe(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	ctx := WithPrincipal(req.Context(), &Principal{Username: "G.Domenico", Clinics: []string{"pta_centro"}})
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Me(c); err != nil {
		t.Fatalf("Me() error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "g_domenico" {
		t.Errorf("expected id g_domenico, got %s", resp.ID)
	}
	if resp.Username != "G.Domenico" {
		t.Errorf("expected username G.Domenico, got %s", resp.Username)
	}
}

func TestMe_Unauthenticated(t *testing.T) {
	h := newTestHandler()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", httpErr.Code)
	}
}
