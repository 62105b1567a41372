package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/forms"
	"github.com/ambulatorio/api/internal/domain/registry"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// PatientDirectory looks up the patient a download belongs to.
type PatientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*registry.Patient, error)
}

// Service assembles patient folder downloads.
type Service struct {
	patients  PatientDirectory
	dressings forms.DressingRepository
	implants  forms.ImplantRepository
	logs      forms.MonthlyLogRepository
}

func NewService(patients PatientDirectory, dressings forms.DressingRepository, implants forms.ImplantRepository, logs forms.MonthlyLogRepository) *Service {
	return &Service{patients: patients, dressings: dressings, implants: implants, logs: logs}
}

type folder struct {
	patient   *registry.Patient
	dressings []*forms.DressingRecord
	implants  []*forms.ImplantRecord
	logs      []*forms.MonthlyLog
}

func (s *Service) collect(ctx context.Context, pr *auth.Principal, patientID uuid.UUID) (*folder, error) {
	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(p.Clinic); err != nil {
		return nil, err
	}

	f := &folder{patient: p}
	if f.dressings, err = s.dressings.ListByPatient(ctx, patientID, p.Clinic); err != nil {
		return nil, fmt.Errorf("list dressing records: %w", err)
	}
	if f.implants, err = s.implants.ListByPatient(ctx, patientID, p.Clinic); err != nil {
		return nil, fmt.Errorf("list implant records: %w", err)
	}
	if f.logs, err = s.logs.ListByPatient(ctx, patientID, p.Clinic, ""); err != nil {
		return nil, fmt.Errorf("list monthly logs: %w", err)
	}
	return f, nil
}

// PatientPDF renders the clinical folder of one patient and returns the
// bytes with the download filename.
func (s *Service) PatientPDF(ctx context.Context, pr *auth.Principal, patientID uuid.UUID) ([]byte, string, error) {
	f, err := s.collect(ctx, pr, patientID)
	if err != nil {
		return nil, "", err
	}
	data, err := PatientSummaryPDF(f.patient, f.dressings, f.implants, f.logs)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("cartella_%s_%s.pdf", f.patient.LastName, f.patient.FirstName)
	return data, name, nil
}

// PatientArchive builds the ZIP folder download.
func (s *Service) PatientArchive(ctx context.Context, pr *auth.Principal, patientID uuid.UUID) ([]byte, string, error) {
	f, err := s.collect(ctx, pr, patientID)
	if err != nil {
		return nil, "", err
	}
	data, err := PatientArchiveZIP(f.patient, f.dressings, f.implants, f.logs)
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("cartella_%s_%s.zip", f.patient.LastName, f.patient.FirstName)
	return data, name, nil
}

// ImplantForm renders one implant record in the official form layout. The
// patient block is left blank when the patient was deleted in the meantime.
func (s *Service) ImplantForm(ctx context.Context, pr *auth.Principal, recordID uuid.UUID) ([]byte, string, error) {
	rec, err := s.implants.GetByID(ctx, recordID)
	if err != nil {
		return nil, "", err
	}
	if err := pr.Authorize(rec.Clinic); err != nil {
		return nil, "", err
	}

	p, err := s.patients.GetByID(ctx, rec.PatientID)
	if err != nil {
		if !errors.Is(err, registry.ErrNotFound) {
			return nil, "", err
		}
		p = nil
	}

	data, err := ImplantFormPDF(rec, p)
	if err != nil {
		return nil, "", err
	}
	date := rec.ImplantDate
	if date == "" {
		date = "nd"
	}
	return data, fmt.Sprintf("scheda_impianto_%s.pdf", date), nil
}
