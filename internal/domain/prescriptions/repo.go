package prescriptions

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no prescription matches.
var ErrNotFound = errors.New("prescription not found")

// Repository persists prescriptions.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByPatient(ctx context.Context, patientID uuid.UUID, clinic string) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	DeleteByPatientClinic(ctx context.Context, patientID uuid.UUID, clinic string) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	ListByClinic(ctx context.Context, clinic string) ([]*Prescription, error)
}
