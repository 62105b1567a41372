package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository persists appointments.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	List(ctx context.Context, clinic string, f ListFilter, limit, offset int) ([]*Appointment, int, error)
	CountSlot(ctx context.Context, clinic, date, time, careType string) (int, error)
}
