package scheduling

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/platform/auth"
)

func mustParse(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("invalid uuid %q: %v", s, err)
	}
	return id
}

func newTestHandler() (*Handler, *mockAppointmentRepo, string, *echo.Echo) {
	svc, repo, patient := newTestService()
	return NewHandler(svc), repo, patient.ID.String(), echo.New()
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, pr *auth.Principal) echo.Context {
	req = req.WithContext(auth.WithPrincipal(req.Context(), pr))
	return e.NewContext(req, rec)
}

func TestHandler_CreateAppointment(t *testing.T) {
	h, _, patientID, e := newTestHandler()
	body := `{"patientId":"` + patientID + `","clinic":"pta_centro","date":"2026-03-02","time":"09:00","careType":"MED","procedures":["medicazione_semplice"]}`
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	if err := h.CreateAppointment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var created Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if created.PatientLastName != "Rossi" {
		t.Errorf("expected snapshotted last name, got %q", created.PatientLastName)
	}
}

func TestHandler_CreateAppointment_SlotFull(t *testing.T) {
	h, repo, patientID, e := newTestHandler()
	for i := 0; i < SlotCapacity; i++ {
		a := booking(mustParse(t, patientID), "2026-03-02", "09:00")
		repo.Create(context.Background(), a)
	}
	body := `{"patientId":"` + patientID + `","clinic":"pta_centro","date":"2026-03-02","time":"09:00","careType":"MED"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	err := h.CreateAppointment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for full slot, got %v", err)
	}
}

func TestHandler_ListAppointments_RequiresClinic(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	err := h.ListAppointments(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetHolidays(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/calendar/holidays?year=2026", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	if err := h.GetHolidays(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var days []string
	if err := json.Unmarshal(rec.Body.Bytes(), &days); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(days) != 13 {
		t.Errorf("expected 13 holidays, got %d", len(days))
	}
}

func TestHandler_GetTimeSlots(t *testing.T) {
	h, _, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/calendar/slots", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	if err := h.GetTimeSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var slots SlotSet
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(slots.All) != 13 {
		t.Errorf("expected 13 slots total, got %d", len(slots.All))
	}
}
