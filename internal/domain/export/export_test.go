package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// =========== Mocks ===========

type mockDirectory struct {
	store map[uuid.UUID]*registry.Patient
}

func (m *mockDirectory) GetByID(_ context.Context, id uuid.UUID) (*registry.Patient, error) {
	p, ok := m.store[id]
	if !ok {
		return nil, registry.ErrNotFound
	}
	return p, nil
}

type mockDressings struct{ items []*forms.DressingRecord }

func (m *mockDressings) Create(_ context.Context, d *forms.DressingRecord) error { return nil }
func (m *mockDressings) GetByID(_ context.Context, _ uuid.UUID) (*forms.DressingRecord, error) {
	return nil, forms.ErrNotFound
}
func (m *mockDressings) Update(_ context.Context, _ *forms.DressingRecord) error { return nil }
func (m *mockDressings) Delete(_ context.Context, _ uuid.UUID) error             { return nil }
func (m *mockDressings) DeleteByPatient(_ context.Context, _ uuid.UUID) error    { return nil }
func (m *mockDressings) ListByPatient(_ context.Context, _ uuid.UUID, _ string) ([]*forms.DressingRecord, error) {
	return m.items, nil
}

type mockImplants struct{ items []*forms.ImplantRecord }

func (m *mockImplants) Create(_ context.Context, _ *forms.ImplantRecord) error { return nil }
func (m *mockImplants) GetByID(_ context.Context, id uuid.UUID) (*forms.ImplantRecord, error) {
	for _, r := range m.items {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, forms.ErrNotFound
}
func (m *mockImplants) Update(_ context.Context, _ *forms.ImplantRecord) error { return nil }
func (m *mockImplants) Delete(_ context.Context, _ uuid.UUID) error            { return nil }
func (m *mockImplants) DeleteByPatient(_ context.Context, _ uuid.UUID) error   { return nil }
func (m *mockImplants) ListByPatient(_ context.Context, _ uuid.UUID, _ string) ([]*forms.ImplantRecord, error) {
	return m.items, nil
}

type mockLogs struct{ items []*forms.MonthlyLog }

func (m *mockLogs) Create(_ context.Context, _ *forms.MonthlyLog) error { return nil }
func (m *mockLogs) GetByID(_ context.Context, _ uuid.UUID) (*forms.MonthlyLog, error) {
	return nil, forms.ErrNotFound
}
func (m *mockLogs) GetByPatientMonth(_ context.Context, _ uuid.UUID, _, _ string) (*forms.MonthlyLog, error) {
	return nil, forms.ErrNotFound
}
func (m *mockLogs) Update(_ context.Context, _ *forms.MonthlyLog) error      { return nil }
func (m *mockLogs) Delete(_ context.Context, _ uuid.UUID) error              { return nil }
func (m *mockLogs) DeleteByPatient(_ context.Context, _ uuid.UUID) error     { return nil }
func (m *mockLogs) ListByPatient(_ context.Context, _ uuid.UUID, _, _ string) ([]*forms.MonthlyLog, error) {
	return m.items, nil
}

func str(s string) *string { return &s }

func testPatient() *registry.Patient {
	return &registry.Patient{
		ID:        uuid.New(),
		Clinic:    clinic.PTACentro,
		CareType:  clinic.CarePICC,
		FirstName: "Maria",
		LastName:  "Rossi",
		Status:    registry.StatusInCare,
		TaxCode:   str("RSSMRA70A41G273H"),
		History:   str("Diabete tipo 2"),
	}
}

func testPrincipal() *auth.Principal {
	return &auth.Principal{
		Username: "Domenico",
		Clinics:  []string{clinic.PTACentro, clinic.VillaGinestre},
	}
}

func newTestService(p *registry.Patient, implants []*forms.ImplantRecord, logs []*forms.MonthlyLog) *Service {
	dir := &mockDirectory{store: map[uuid.UUID]*registry.Patient{}}
	if p != nil {
		dir.store[p.ID] = p
	}
	return NewService(dir,
		&mockDressings{items: []*forms.DressingRecord{{
			ID: uuid.New(), RecordedAt: "2026-03-10",
			WoundBed: []string{"granuleggiante"}, Treatment: forms.DefaultTreatment,
		}}},
		&mockImplants{items: implants},
		&mockLogs{items: logs})
}

// =========== Tests ===========

func TestPatientSummaryPDF(t *testing.T) {
	p := testPatient()
	logs := []*forms.MonthlyLog{{
		ID: uuid.New(), PatientID: p.ID, Clinic: p.Clinic, Month: "2026-03",
		Days: map[string]forms.DayEntries{
			"2026-03-04": {"lavaggio_mani": "SI", "sigla_operatore": "DG"},
		},
	}}
	data, err := PatientSummaryPDF(p, nil, nil, logs)
	if err != nil {
		t.Fatalf("PatientSummaryPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestImplantFormPDFWithoutPatient(t *testing.T) {
	rec := &forms.ImplantRecord{
		ID: uuid.New(), Clinic: clinic.PTACentro, Variant: forms.VariantComplete,
		ImplantDate: "2026-02-14", CatheterType: "picc", Arm: str("dx"),
	}
	data, err := ImplantFormPDF(rec, nil)
	if err != nil {
		t.Fatalf("ImplantFormPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF header")
	}
}

func TestPatientArchiveZIPEntries(t *testing.T) {
	p := testPatient()
	implants := []*forms.ImplantRecord{
		{ID: uuid.New(), PatientID: p.ID, Clinic: p.Clinic, Variant: forms.VariantComplete, ImplantDate: "2026-01-10", CatheterType: "picc"},
		{ID: uuid.New(), PatientID: p.ID, Clinic: p.Clinic, Variant: forms.VariantSimplified, ImplantDate: "2026-01-11", CatheterType: "midline"},
	}
	dressings := []*forms.DressingRecord{{ID: uuid.New(), PatientID: p.ID, RecordedAt: "2026-03-10"}}

	data, err := PatientArchiveZIP(p, dressings, implants, nil)
	if err != nil {
		t.Fatalf("PatientArchiveZIP: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("invalid zip: %v", err)
	}

	names := map[string]bool{}
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{
		"cartella_clinica_Rossi_Maria.pdf",
		"dati_paziente.json",
		"schede_medicazione_med.json",
		"schede_impianto_picc.json",
	} {
		if !names[want] {
			t.Errorf("missing zip entry %s, have %v", want, names)
		}
	}
	if names["schede_gestione_picc.json"] {
		t.Error("unexpected monthly log entry with no logs")
	}
}

func TestServiceAuthorizesClinic(t *testing.T) {
	p := testPatient()
	svc := newTestService(p, nil, nil)
	pr := &auth.Principal{Username: "Giovanna", Clinics: []string{clinic.VillaGinestre}}

	if _, _, err := svc.PatientPDF(context.Background(), pr, p.ID); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestServiceUnknownPatient(t *testing.T) {
	svc := newTestService(nil, nil, nil)
	if _, _, err := svc.PatientPDF(context.Background(), testPrincipal(), uuid.New()); !errors.Is(err, registry.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestHandler_PatientPDFDownload(t *testing.T) {
	p := testPatient()
	h := NewHandler(newTestService(p, nil, nil))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/patients/"+p.ID.String()+"/download/pdf", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), testPrincipal()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.PatientPDF(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cd := rec.Header().Get(echo.HeaderContentDisposition)
	if !strings.Contains(cd, "cartella_Rossi_Maria.pdf") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestHandler_ImplantFormNotFound(t *testing.T) {
	h := NewHandler(newTestService(testPatient(), nil, nil))
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/implant-records/"+uuid.NewString()+"/pdf", nil)
	req = req.WithContext(auth.WithPrincipal(req.Context(), testPrincipal()))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.ImplantForm(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
