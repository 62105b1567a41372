package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

func newTestHandler(deps ...Dependent) (*Handler, *mockPatientRepo, *echo.Echo) {
	svc, repo := newTestService(deps...)
	return NewHandler(svc), repo, echo.New()
}

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, pr *auth.Principal) echo.Context {
	req = req.WithContext(auth.WithPrincipal(req.Context(), pr))
	return e.NewContext(req, rec)
}

func TestHandler_CreatePatient(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"firstName":"Maria","lastName":"Rossi","clinic":"pta_centro","careType":"MED"}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	if err := h.CreatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var created Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if created.ID == uuid.Nil || created.Status != StatusInCare {
		t.Errorf("unexpected created patient: %+v", created)
	}
}

func TestHandler_CreatePatient_Unauthenticated(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHandler_CreatePatient_WrongClinic(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"firstName":"Maria","lastName":"Rossi","clinic":"villa_ginestre","careType":"PICC"}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal(clinic.PTACentro))

	err := h.CreatePatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %v", err)
	}
}

func TestHandler_GetPatient(t *testing.T) {
	h, repo, e := newTestHandler()
	p := &Patient{FirstName: "Maria", LastName: "Rossi", Clinic: clinic.PTACentro, CareType: clinic.CareMED, Status: StatusInCare}
	repo.Create(context.Background(), p)

	req := httptest.NewRequest(http.MethodGet, "/patients/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.GetPatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPatient_NotFound(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/patients/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GetPatient(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_ListPatients_RequiresClinic(t *testing.T) {
	h, _, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	err := h.ListPatients(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListPatients(t *testing.T) {
	h, repo, e := newTestHandler()
	repo.Create(context.Background(), &Patient{FirstName: "Maria", LastName: "Rossi", Clinic: clinic.PTACentro, CareType: clinic.CareMED, Status: StatusInCare})

	req := httptest.NewRequest(http.MethodGet, "/patients?clinic=pta_centro", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())

	if err := h.ListPatients(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Total != 1 {
		t.Errorf("expected total 1, got %d", resp.Total)
	}
}

func TestHandler_UpdatePatient(t *testing.T) {
	h, repo, e := newTestHandler()
	p := &Patient{FirstName: "Maria", LastName: "Rossi", Clinic: clinic.PTACentro, CareType: clinic.CareMED, Status: StatusInCare}
	repo.Create(context.Background(), p)

	body := `{"status":"sospeso","suspendNotes":"ricovero temporaneo"}`
	req := httptest.NewRequest(http.MethodPut, "/patients/"+p.ID.String(), strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.UpdatePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var updated Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if updated.Status != StatusSuspended || updated.SuspendNotes == nil {
		t.Errorf("unexpected updated patient: %+v", updated)
	}
}

func TestHandler_DeletePatient(t *testing.T) {
	dep := &mockDependent{}
	h, repo, e := newTestHandler(dep)
	p := &Patient{FirstName: "Maria", LastName: "Rossi", Clinic: clinic.PTACentro, CareType: clinic.CareMED, Status: StatusInCare}
	repo.Create(context.Background(), p)

	req := httptest.NewRequest(http.MethodDelete, "/patients/"+p.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, testPrincipal())
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DeletePatient(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if len(dep.deleted) != 1 {
		t.Error("expected dependent records to be removed")
	}
}
