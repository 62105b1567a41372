package forms

import (
	"context"

	"github.com/google/uuid"
)

// DressingRepository persists wound dressing records.
type DressingRepository interface {
	Create(ctx context.Context, d *DressingRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*DressingRecord, error)
	Update(ctx context.Context, d *DressingRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, clinic string) ([]*DressingRecord, error)
}

// ImplantRepository persists vascular access implant records.
type ImplantRepository interface {
	Create(ctx context.Context, r *ImplantRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*ImplantRecord, error)
	Update(ctx context.Context, r *ImplantRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, clinic string) ([]*ImplantRecord, error)
}

// MonthlyLogRepository persists monthly vascular access management logs.
type MonthlyLogRepository interface {
	Create(ctx context.Context, l *MonthlyLog) error
	GetByID(ctx context.Context, id uuid.UUID) (*MonthlyLog, error)
	GetByPatientMonth(ctx context.Context, patientID uuid.UUID, clinic, month string) (*MonthlyLog, error)
	Update(ctx context.Context, l *MonthlyLog) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, clinic, month string) ([]*MonthlyLog, error)
}
