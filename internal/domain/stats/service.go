package stats

import (
	"context"
	"errors"
	"fmt"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// ErrCareTypeUnavailable is returned when a report is requested for a care
// track the clinic does not offer.
var ErrCareTypeUnavailable = errors.New("care type not available at this clinic")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// window turns a year and an optional month into a [start, end) pair of ISO
// date strings. December rolls the end over into January of the next year.
func window(year, month int) (string, string, error) {
	if year < 1900 || year > 9999 {
		return "", "", fmt.Errorf("invalid year %d", year)
	}
	if month == 0 {
		return fmt.Sprintf("%d-01-01", year), fmt.Sprintf("%d-01-01", year+1), nil
	}
	if month < 1 || month > 12 {
		return "", "", fmt.Errorf("invalid month %d", month)
	}
	start := fmt.Sprintf("%d-%02d-01", year, month)
	if month == 12 {
		return start, fmt.Sprintf("%d-01-01", year+1), nil
	}
	return start, fmt.Sprintf("%d-%02d-01", year, month+1), nil
}

// Compute aggregates the visits of one clinic over a year, or a single month
// when month is non-zero. Wound care reports are refused at PICC-only
// clinics, which also default careType to PICC when none is given.
func (s *Service) Compute(ctx context.Context, pr *auth.Principal, clinicID string, year, month int, careType string) (*Period, error) {
	if !clinic.Valid(clinicID) {
		return nil, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, err
	}
	if careType != "" && !clinic.Supports(clinicID, careType) {
		return nil, ErrCareTypeUnavailable
	}
	if careType == "" && clinicID == clinic.VillaGinestre {
		careType = clinic.CarePICC
	}

	start, end, err := window(year, month)
	if err != nil {
		return nil, err
	}
	visits, err := s.repo.VisitsInWindow(ctx, clinicID, careType, start, end)
	if err != nil {
		return nil, err
	}

	p := &Period{
		Year:          year,
		Month:         month,
		Clinic:        clinicID,
		CareType:      careType,
		TotalVisits:   len(visits),
		Procedures:    map[string]int{},
		MonthlyDetail: map[string]MonthlyStats{},
	}

	patients := map[string]struct{}{}
	monthlyPatients := map[string]map[string]struct{}{}
	for _, v := range visits {
		pid := v.PatientID.String()
		patients[pid] = struct{}{}
		for _, proc := range v.Procedures {
			p.Procedures[proc]++
		}

		if len(v.Date) < 7 {
			continue
		}
		key := v.Date[:7]
		ms := p.MonthlyDetail[key]
		if ms.Procedures == nil {
			ms.Procedures = map[string]int{}
			monthlyPatients[key] = map[string]struct{}{}
		}
		ms.Visits++
		monthlyPatients[key][pid] = struct{}{}
		for _, proc := range v.Procedures {
			ms.Procedures[proc]++
		}
		ms.UniquePatients = len(monthlyPatients[key])
		p.MonthlyDetail[key] = ms
	}
	p.UniquePatients = len(patients)
	return p, nil
}

// Compare computes two periods and their difference, period2 minus period1.
// When year2 is zero the first period's year is reused.
func (s *Service) Compare(ctx context.Context, pr *auth.Principal, clinicID string, year1, month1, year2, month2 int, careType string) (*Comparison, error) {
	if year2 == 0 {
		year2 = year1
	}
	p1, err := s.Compute(ctx, pr, clinicID, year1, month1, careType)
	if err != nil {
		return nil, err
	}
	p2, err := s.Compute(ctx, pr, clinicID, year2, month2, careType)
	if err != nil {
		return nil, err
	}

	cmp := &Comparison{
		Period1: p1,
		Period2: p2,
		Diff: Diff{
			Visits:         p2.TotalVisits - p1.TotalVisits,
			UniquePatients: p2.UniquePatients - p1.UniquePatients,
			Procedures:     map[string]int{},
		},
	}
	for proc := range p1.Procedures {
		cmp.Diff.Procedures[proc] = p2.Procedures[proc] - p1.Procedures[proc]
	}
	for proc := range p2.Procedures {
		cmp.Diff.Procedures[proc] = p2.Procedures[proc] - p1.Procedures[proc]
	}
	return cmp, nil
}

// Implants reports catheter placements in the window. Records whose patient
// has been deleted still count toward the total but are left out of the
// per-type and monthly breakdowns.
func (s *Service) Implants(ctx context.Context, pr *auth.Principal, clinicID string, year, month int) (*ImplantReport, error) {
	if !clinic.Valid(clinicID) {
		return nil, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, err
	}
	start, end, err := window(year, month)
	if err != nil {
		return nil, err
	}

	implants, err := s.repo.ImplantsInWindow(ctx, clinicID, start, end)
	if err != nil {
		return nil, err
	}
	known, err := s.repo.PatientIDs(ctx, clinicID)
	if err != nil {
		return nil, err
	}

	rep := &ImplantReport{
		TotalImplants: len(implants),
		ByType:        map[string]int{},
		TypeLabels:    catheterTypeLabels,
		MonthlyDetail: map[string]map[string]int{},
	}
	for _, im := range implants {
		if _, ok := known[im.PatientID]; !ok {
			continue
		}
		typ := im.CatheterType
		if typ == "" {
			typ = "altro"
		}
		rep.ByType[typ]++
		if len(im.ImplantDate) >= 7 {
			key := im.ImplantDate[:7]
			if rep.MonthlyDetail[key] == nil {
				rep.MonthlyDetail[key] = map[string]int{}
			}
			rep.MonthlyDetail[key][typ]++
		}
	}
	return rep, nil
}
