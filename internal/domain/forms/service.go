package forms

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// Service provides business logic for the clinical record forms.
type Service struct {
	dressings DressingRepository
	implants  ImplantRepository
	monthlies MonthlyLogRepository
}

// NewService creates a new forms service.
func NewService(d DressingRepository, i ImplantRepository, m MonthlyLogRepository) *Service {
	return &Service{dressings: d, implants: i, monthlies: m}
}

func checkOwnership(pr *auth.Principal, patientID uuid.UUID, clinicID string) error {
	if patientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if !clinic.Valid(clinicID) {
		return fmt.Errorf("unknown clinic %q", clinicID)
	}
	return pr.Authorize(clinicID)
}

// -- Dressing records --

func (s *Service) CreateDressingRecord(ctx context.Context, pr *auth.Principal, d *DressingRecord) error {
	if err := checkOwnership(pr, d.PatientID, d.Clinic); err != nil {
		return err
	}
	if d.RecordedAt == "" {
		return fmt.Errorf("recordedAt is required")
	}
	if d.Treatment == "" {
		d.Treatment = DefaultTreatment
	}
	return s.dressings.Create(ctx, d)
}

func (s *Service) GetDressingRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*DressingRecord, error) {
	d, err := s.dressings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(d.Clinic); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) UpdateDressingRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID, in *DressingRecord) (*DressingRecord, error) {
	existing, err := s.dressings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(existing.Clinic); err != nil {
		return nil, err
	}
	in.ID = existing.ID
	in.PatientID = existing.PatientID
	in.Clinic = existing.Clinic
	if err := s.dressings.Update(ctx, in); err != nil {
		return nil, err
	}
	return s.dressings.GetByID(ctx, id)
}

func (s *Service) DeleteDressingRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	d, err := s.dressings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(d.Clinic); err != nil {
		return err
	}
	return s.dressings.Delete(ctx, id)
}

func (s *Service) ListDressingRecords(ctx context.Context, pr *auth.Principal, patientID uuid.UUID, clinicID string) ([]*DressingRecord, error) {
	if err := checkOwnership(pr, patientID, clinicID); err != nil {
		return nil, err
	}
	return s.dressings.ListByPatient(ctx, patientID, clinicID)
}

// -- Implant records --

func (s *Service) CreateImplantRecord(ctx context.Context, pr *auth.Principal, r *ImplantRecord) error {
	if err := checkOwnership(pr, r.PatientID, r.Clinic); err != nil {
		return err
	}
	if r.ImplantDate == "" {
		return fmt.Errorf("implantDate is required")
	}
	if r.CatheterType == "" {
		return fmt.Errorf("catheterType is required")
	}
	if r.Variant == "" {
		r.Variant = VariantComplete
	}
	if r.Variant != VariantComplete && r.Variant != VariantSimplified {
		return fmt.Errorf("unknown variant %q", r.Variant)
	}
	return s.implants.Create(ctx, r)
}

func (s *Service) GetImplantRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*ImplantRecord, error) {
	r, err := s.implants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(r.Clinic); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) UpdateImplantRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID, in *ImplantRecord) (*ImplantRecord, error) {
	existing, err := s.implants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(existing.Clinic); err != nil {
		return nil, err
	}
	if in.Variant == "" {
		in.Variant = existing.Variant
	}
	if in.Variant != VariantComplete && in.Variant != VariantSimplified {
		return nil, fmt.Errorf("unknown variant %q", in.Variant)
	}
	in.ID = existing.ID
	in.PatientID = existing.PatientID
	in.Clinic = existing.Clinic
	if err := s.implants.Update(ctx, in); err != nil {
		return nil, err
	}
	return s.implants.GetByID(ctx, id)
}

func (s *Service) DeleteImplantRecord(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	r, err := s.implants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(r.Clinic); err != nil {
		return err
	}
	return s.implants.Delete(ctx, id)
}

func (s *Service) ListImplantRecords(ctx context.Context, pr *auth.Principal, patientID uuid.UUID, clinicID string) ([]*ImplantRecord, error) {
	if err := checkOwnership(pr, patientID, clinicID); err != nil {
		return nil, err
	}
	return s.implants.ListByPatient(ctx, patientID, clinicID)
}

// -- Monthly logs --

func (s *Service) CreateMonthlyLog(ctx context.Context, pr *auth.Principal, l *MonthlyLog) error {
	if err := checkOwnership(pr, l.PatientID, l.Clinic); err != nil {
		return err
	}
	if !validMonth(l.Month) {
		return fmt.Errorf("month must be YYYY-MM")
	}
	if _, err := s.monthlies.GetByPatientMonth(ctx, l.PatientID, l.Clinic, l.Month); err == nil {
		return ErrDuplicateMonth
	} else if err != ErrNotFound {
		return err
	}
	return s.monthlies.Create(ctx, l)
}

func (s *Service) GetMonthlyLog(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*MonthlyLog, error) {
	l, err := s.monthlies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(l.Clinic); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) UpdateMonthlyLog(ctx context.Context, pr *auth.Principal, id uuid.UUID, in *MonthlyLog) (*MonthlyLog, error) {
	existing, err := s.monthlies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(existing.Clinic); err != nil {
		return nil, err
	}
	existing.Days = in.Days
	existing.Notes = in.Notes
	if existing.Days == nil {
		existing.Days = map[string]DayEntries{}
	}
	if err := s.monthlies.Update(ctx, existing); err != nil {
		return nil, err
	}
	return s.monthlies.GetByID(ctx, id)
}

func (s *Service) DeleteMonthlyLog(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	l, err := s.monthlies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(l.Clinic); err != nil {
		return err
	}
	return s.monthlies.Delete(ctx, id)
}

func (s *Service) ListMonthlyLogs(ctx context.Context, pr *auth.Principal, patientID uuid.UUID, clinicID, month string) ([]*MonthlyLog, error) {
	if err := checkOwnership(pr, patientID, clinicID); err != nil {
		return nil, err
	}
	return s.monthlies.ListByPatient(ctx, patientID, clinicID, month)
}

func validMonth(m string) bool {
	if len(m) != 7 || m[4] != '-' {
		return false
	}
	for i, c := range m {
		if i == 4 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	mm := (m[5]-'0')*10 + (m[6] - '0')
	return mm >= 1 && mm <= 12
}
