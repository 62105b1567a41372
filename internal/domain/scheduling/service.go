package scheduling

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/domain/registry"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// PatientDirectory resolves patients when booking. Satisfied by the
// registry repository.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error)
}

// Service provides business logic for the agenda.
type Service struct {
	appointments AppointmentRepository
	patients     PatientDirectory
}

// NewService creates a new scheduling service.
func NewService(appointments AppointmentRepository, patients PatientDirectory) *Service {
	return &Service{appointments: appointments, patients: patients}
}

// validVisitCareType reports whether t can be booked as a visit track.
// Patients followed on both tracks book each visit on one of the two.
func validVisitCareType(t string) bool {
	return t == clinic.CarePICC || t == clinic.CareMED
}

func (s *Service) CreateAppointment(ctx context.Context, pr *auth.Principal, a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if a.Date == "" || a.Time == "" {
		return fmt.Errorf("date and time are required")
	}
	if !clinic.Valid(a.Clinic) {
		return fmt.Errorf("unknown clinic %q", a.Clinic)
	}
	if !validVisitCareType(a.CareType) {
		return fmt.Errorf("unknown care type %q", a.CareType)
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return err
	}
	p, err := s.patients.GetByID(ctx, a.PatientID)
	if err != nil {
		return err
	}
	booked, err := s.appointments.CountSlot(ctx, a.Clinic, a.Date, a.Time, a.CareType)
	if err != nil {
		return err
	}
	if booked >= SlotCapacity {
		return ErrSlotFull
	}
	a.PatientFirstName = p.FirstName
	a.PatientLastName = p.LastName
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) UpdateAppointment(ctx context.Context, pr *auth.Principal, id uuid.UUID, patch *Patch) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return nil, err
	}
	if patch.CareType != nil {
		if !validVisitCareType(*patch.CareType) {
			return nil, fmt.Errorf("unknown care type %q", *patch.CareType)
		}
		a.CareType = *patch.CareType
	}
	if patch.Date != nil {
		a.Date = *patch.Date
	}
	if patch.Time != nil {
		a.Time = *patch.Time
	}
	if patch.Procedures != nil {
		a.Procedures = *patch.Procedures
	}
	if patch.Notes != nil {
		a.Notes = patch.Notes
	}
	if patch.Completed != nil {
		a.Completed = *patch.Completed
	}
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) DeleteAppointment(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, pr *auth.Principal, clinicID string, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	if !clinic.Valid(clinicID) {
		return nil, 0, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, 0, err
	}
	return s.appointments.List(ctx, clinicID, f, limit, offset)
}
