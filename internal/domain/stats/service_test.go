package stats

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// =========== Mocks ===========

type mockRepo struct {
	visits   []Visit
	implants []Implant
	patients map[uuid.UUID]struct{}
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[uuid.UUID]struct{})}
}

func (m *mockRepo) VisitsInWindow(_ context.Context, _, careType, start, end string) ([]Visit, error) {
	var out []Visit
	for _, v := range m.visits {
		if v.Date < start || v.Date >= end {
			continue
		}
		out = append(out, v)
	}
	_ = careType
	return out, nil
}

func (m *mockRepo) ImplantsInWindow(_ context.Context, _, start, end string) ([]Implant, error) {
	var out []Implant
	for _, im := range m.implants {
		if im.ImplantDate < start || im.ImplantDate >= end {
			continue
		}
		out = append(out, im)
	}
	return out, nil
}

func (m *mockRepo) PatientIDs(_ context.Context, _ string) (map[uuid.UUID]struct{}, error) {
	return m.patients, nil
}

func testPrincipal() *auth.Principal {
	return &auth.Principal{
		Username: "Oriana",
		Clinics:  []string{clinic.PTACentro, clinic.VillaGinestre},
	}
}

// =========== Tests ===========

func TestComputeAggregates(t *testing.T) {
	repo := newMockRepo()
	p1 := uuid.New()
	p2 := uuid.New()
	repo.visits = []Visit{
		{PatientID: p1, Date: "2026-03-10", Procedures: []string{"medicazione", "lavaggio"}},
		{PatientID: p1, Date: "2026-03-24", Procedures: []string{"medicazione"}},
		{PatientID: p2, Date: "2026-04-02", Procedures: []string{"lavaggio"}},
	}
	svc := NewService(repo)

	p, err := svc.Compute(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 0, "")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if p.TotalVisits != 3 {
		t.Errorf("TotalVisits = %d, want 3", p.TotalVisits)
	}
	if p.UniquePatients != 2 {
		t.Errorf("UniquePatients = %d, want 2", p.UniquePatients)
	}
	if p.Procedures["medicazione"] != 2 || p.Procedures["lavaggio"] != 2 {
		t.Errorf("Procedures = %v", p.Procedures)
	}
	march, ok := p.MonthlyDetail["2026-03"]
	if !ok {
		t.Fatal("missing 2026-03 bucket")
	}
	if march.Visits != 2 || march.UniquePatients != 1 {
		t.Errorf("march = %+v", march)
	}
	if _, ok := p.MonthlyDetail["2026-04"]; !ok {
		t.Error("missing 2026-04 bucket")
	}
}

func TestComputeDecemberWindow(t *testing.T) {
	repo := newMockRepo()
	pid := uuid.New()
	repo.visits = []Visit{
		{PatientID: pid, Date: "2026-12-31", Procedures: nil},
		{PatientID: pid, Date: "2027-01-01", Procedures: nil},
	}
	svc := NewService(repo)

	p, err := svc.Compute(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 12, "")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if p.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1 (December ends before January 1st)", p.TotalVisits)
	}
}

func TestComputeMonthWindowBoundary(t *testing.T) {
	repo := newMockRepo()
	pid := uuid.New()
	repo.visits = []Visit{
		{PatientID: pid, Date: "2026-01-31", Procedures: nil},
		{PatientID: pid, Date: "2026-02-01", Procedures: nil},
	}
	svc := NewService(repo)

	p, err := svc.Compute(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 1, "")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if p.TotalVisits != 1 {
		t.Errorf("TotalVisits = %d, want 1 (January 31st in, February 1st out)", p.TotalVisits)
	}
}

func TestComputeVillaGinestreDefaultsPICC(t *testing.T) {
	svc := NewService(newMockRepo())

	p, err := svc.Compute(context.Background(), testPrincipal(), clinic.VillaGinestre, 2026, 0, "")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if p.CareType != clinic.CarePICC {
		t.Errorf("CareType = %q, want %q", p.CareType, clinic.CarePICC)
	}

	if _, err := svc.Compute(context.Background(), testPrincipal(), clinic.VillaGinestre, 2026, 0, clinic.CareMED); !errors.Is(err, ErrCareTypeUnavailable) {
		t.Errorf("MED at Villa delle Ginestre: err = %v, want ErrCareTypeUnavailable", err)
	}
}

func TestComputeForbiddenClinic(t *testing.T) {
	svc := NewService(newMockRepo())
	pr := &auth.Principal{Username: "Giovanna", Clinics: []string{clinic.PTACentro}}

	if _, err := svc.Compute(context.Background(), pr, clinic.VillaGinestre, 2026, 0, ""); !errors.Is(err, auth.ErrForbidden) {
		t.Errorf("err = %v, want ErrForbidden", err)
	}
}

func TestComputeInvalidMonth(t *testing.T) {
	svc := NewService(newMockRepo())
	if _, err := svc.Compute(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 13, ""); err == nil {
		t.Error("expected error for month 13")
	}
}

func TestCompareSamePeriodIsZero(t *testing.T) {
	repo := newMockRepo()
	pid := uuid.New()
	repo.visits = []Visit{
		{PatientID: pid, Date: "2026-05-04", Procedures: []string{"medicazione"}},
	}
	svc := NewService(repo)

	cmp, err := svc.Compare(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 5, 0, 5, "")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp.Period2.Year != 2026 {
		t.Errorf("Period2.Year = %d, want year1 reused", cmp.Period2.Year)
	}
	if cmp.Diff.Visits != 0 || cmp.Diff.UniquePatients != 0 {
		t.Errorf("Diff = %+v, want zero", cmp.Diff)
	}
	if d := cmp.Diff.Procedures["medicazione"]; d != 0 {
		t.Errorf("Diff.Procedures[medicazione] = %d, want 0", d)
	}
}

func TestCompareAcrossMonths(t *testing.T) {
	repo := newMockRepo()
	p1 := uuid.New()
	p2 := uuid.New()
	repo.visits = []Visit{
		{PatientID: p1, Date: "2026-01-12", Procedures: []string{"medicazione"}},
		{PatientID: p1, Date: "2026-02-03", Procedures: []string{"lavaggio"}},
		{PatientID: p2, Date: "2026-02-17", Procedures: []string{"lavaggio"}},
	}
	svc := NewService(repo)

	cmp, err := svc.Compare(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 1, 2026, 2, "")
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp.Diff.Visits != 1 {
		t.Errorf("Diff.Visits = %d, want 1", cmp.Diff.Visits)
	}
	if cmp.Diff.Procedures["medicazione"] != -1 {
		t.Errorf("Diff medicazione = %d, want -1", cmp.Diff.Procedures["medicazione"])
	}
	if cmp.Diff.Procedures["lavaggio"] != 2 {
		t.Errorf("Diff lavaggio = %d, want 2", cmp.Diff.Procedures["lavaggio"])
	}
}

func TestImplantsSkipsDeletedPatients(t *testing.T) {
	repo := newMockRepo()
	kept := uuid.New()
	gone := uuid.New()
	repo.patients[kept] = struct{}{}
	repo.implants = []Implant{
		{PatientID: kept, ImplantDate: "2026-06-10", CatheterType: "picc"},
		{PatientID: kept, ImplantDate: "2026-07-01", CatheterType: "midline"},
		{PatientID: gone, ImplantDate: "2026-06-20", CatheterType: "picc"},
	}
	svc := NewService(repo)

	rep, err := svc.Implants(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 0)
	if err != nil {
		t.Fatalf("Implants: %v", err)
	}
	if rep.TotalImplants != 3 {
		t.Errorf("TotalImplants = %d, want 3 (total keeps orphaned records)", rep.TotalImplants)
	}
	if rep.ByType["picc"] != 1 || rep.ByType["midline"] != 1 {
		t.Errorf("ByType = %v", rep.ByType)
	}
	if rep.MonthlyDetail["2026-06"]["picc"] != 1 {
		t.Errorf("MonthlyDetail = %v", rep.MonthlyDetail)
	}
	if rep.TypeLabels["picc_port"] != "PICC/Port" {
		t.Errorf("TypeLabels = %v", rep.TypeLabels)
	}
}

func TestImplantsUnknownTypeBucketsAsAltro(t *testing.T) {
	repo := newMockRepo()
	pid := uuid.New()
	repo.patients[pid] = struct{}{}
	repo.implants = []Implant{{PatientID: pid, ImplantDate: "2026-02-02", CatheterType: ""}}
	svc := NewService(repo)

	rep, err := svc.Implants(context.Background(), testPrincipal(), clinic.PTACentro, 2026, 2)
	if err != nil {
		t.Fatalf("Implants: %v", err)
	}
	if rep.ByType["altro"] != 1 {
		t.Errorf("ByType = %v, want altro bucket", rep.ByType)
	}
}
