package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// Dependent is implemented by repositories holding rows owned by a patient.
// Deleting a patient removes those rows in the same transaction.
type Dependent interface {
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
}

// TxRunner runs fn inside a database transaction.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

// Service provides business logic for the patient registry.
type Service struct {
	patients   PatientRepository
	inTx       TxRunner
	dependents []Dependent
}

// NewService creates a new registry service. Pass a nil runner to execute
// cascade deletes without a transaction (tests).
func NewService(patients PatientRepository, inTx TxRunner, dependents ...Dependent) *Service {
	if inTx == nil {
		inTx = func(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }
	}
	return &Service{patients: patients, inTx: inTx, dependents: dependents}
}

func (s *Service) CreatePatient(ctx context.Context, pr *auth.Principal, p *Patient) error {
	if p.FirstName == "" {
		return fmt.Errorf("firstName is required")
	}
	if p.LastName == "" {
		return fmt.Errorf("lastName is required")
	}
	if !clinic.Valid(p.Clinic) {
		return fmt.Errorf("unknown clinic %q", p.Clinic)
	}
	if !clinic.ValidCareType(p.CareType) {
		return fmt.Errorf("unknown care type %q", p.CareType)
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return err
	}
	if !clinic.Supports(p.Clinic, p.CareType) {
		return ErrCareTypeUnavailable
	}
	if p.Status == "" {
		p.Status = StatusInCare
	}
	if !validStatus(p.Status) {
		return fmt.Errorf("unknown status %q", p.Status)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, pr *auth.Principal, id uuid.UUID, patch *Patch) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return nil, err
	}
	if patch.CareType != nil {
		if !clinic.ValidCareType(*patch.CareType) {
			return nil, fmt.Errorf("unknown care type %q", *patch.CareType)
		}
		if !clinic.Supports(p.Clinic, *patch.CareType) {
			return nil, ErrCareTypeUnavailable
		}
		p.CareType = *patch.CareType
	}
	if patch.Status != nil {
		if !validStatus(*patch.Status) {
			return nil, fmt.Errorf("unknown status %q", *patch.Status)
		}
		p.Status = *patch.Status
	}
	if patch.DischargeReason != nil {
		if *patch.DischargeReason != "" && !validDischargeReason(*patch.DischargeReason) {
			return nil, fmt.Errorf("unknown discharge reason %q", *patch.DischargeReason)
		}
		p.DischargeReason = patch.DischargeReason
	}
	if patch.FirstName != nil {
		p.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}
	if patch.BirthDate != nil {
		p.BirthDate = patch.BirthDate
	}
	if patch.TaxCode != nil {
		p.TaxCode = patch.TaxCode
	}
	if patch.Sex != nil {
		p.Sex = patch.Sex
	}
	if patch.Phone != nil {
		p.Phone = patch.Phone
	}
	if patch.Email != nil {
		p.Email = patch.Email
	}
	if patch.FamilyDoctor != nil {
		p.FamilyDoctor = patch.FamilyDoctor
	}
	if patch.History != nil {
		p.History = patch.History
	}
	if patch.CurrentTherapy != nil {
		p.CurrentTherapy = patch.CurrentTherapy
	}
	if patch.Allergies != nil {
		p.Allergies = patch.Allergies
	}
	if patch.DischargeNotes != nil {
		p.DischargeNotes = patch.DischargeNotes
	}
	if patch.SuspendNotes != nil {
		p.SuspendNotes = patch.SuspendNotes
	}
	if patch.LesionMarkers != nil {
		p.LesionMarkers = *patch.LesionMarkers
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return s.patients.GetByID(ctx, id)
}

// DeletePatient removes the patient together with every dependent record
// (implant and dressing records, monthly logs, appointments, prescriptions,
// attachments) in a single transaction.
func (s *Service) DeletePatient(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return err
	}
	return s.inTx(ctx, func(ctx context.Context) error {
		for _, dep := range s.dependents {
			if err := dep.DeleteByPatient(ctx, id); err != nil {
				return err
			}
		}
		return s.patients.Delete(ctx, id)
	})
}

func (s *Service) ListPatients(ctx context.Context, pr *auth.Principal, clinicID string, f ListFilter, limit, offset int) ([]*Patient, int, error) {
	if !clinic.Valid(clinicID) {
		return nil, 0, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, 0, err
	}
	return s.patients.List(ctx, clinicID, f, limit, offset)
}
