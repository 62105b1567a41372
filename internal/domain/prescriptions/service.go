package prescriptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// Service provides business logic for therapy prescriptions.
type Service struct {
	prescriptions Repository
}

// NewService creates a new prescriptions service.
func NewService(prescriptions Repository) *Service {
	return &Service{prescriptions: prescriptions}
}

// Save creates the prescription or renews the existing one for the same
// patient and clinic.
func (s *Service) Save(ctx context.Context, pr *auth.Principal, p *Prescription) (*Prescription, error) {
	if p.PatientID == uuid.Nil {
		return nil, fmt.Errorf("patientId is required")
	}
	if !clinic.Valid(p.Clinic) {
		return nil, fmt.Errorf("unknown clinic %q", p.Clinic)
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return nil, err
	}
	if p.StartDate == "" {
		return nil, fmt.Errorf("startDate is required")
	}
	if p.DurationMonths < 1 || p.DurationMonths > 3 {
		return nil, fmt.Errorf("durationMonths must be between 1 and 3")
	}

	existing, err := s.prescriptions.GetByPatient(ctx, p.PatientID, p.Clinic)
	if errors.Is(err, ErrNotFound) {
		if err := s.prescriptions.Create(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	existing.StartDate = p.StartDate
	existing.DurationMonths = p.DurationMonths
	if err := s.prescriptions.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *Service) Delete(ctx context.Context, pr *auth.Principal, patientID uuid.UUID, clinicID string) error {
	if !clinic.Valid(clinicID) {
		return fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return err
	}
	return s.prescriptions.DeleteByPatientClinic(ctx, patientID, clinicID)
}

func (s *Service) List(ctx context.Context, pr *auth.Principal, clinicID string) ([]*Prescription, error) {
	if !clinic.Valid(clinicID) {
		return nil, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, err
	}
	return s.prescriptions.ListByClinic(ctx, clinicID)
}
