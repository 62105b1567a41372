package registry

import (
	"context"

	"github.com/google/uuid"
)

// PatientRepository persists patients.
type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, clinic string, f ListFilter, limit, offset int) ([]*Patient, int, error)
}
