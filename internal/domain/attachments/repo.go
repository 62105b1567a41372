package attachments

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no attachment matches the requested id.
var ErrNotFound = errors.New("attachment not found")

// Repository persists attachments.
type Repository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Attachment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPatient(ctx context.Context, patientID uuid.UUID) error
	ListByPatient(ctx context.Context, patientID uuid.UUID, clinic, category string) ([]*Attachment, error)
}
