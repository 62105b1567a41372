package stats

import (
	"context"

	"github.com/google/uuid"
)

// Visit is the slice of an appointment the aggregations need.
type Visit struct {
	PatientID  uuid.UUID
	Date       string
	Procedures []string
}

// Implant is the slice of an implant record the aggregations need.
type Implant struct {
	PatientID    uuid.UUID
	ImplantDate  string
	CatheterType string
}

// Repository reads raw rows for the statistics service. Windows are
// [start, end) on the stored ISO date strings.
type Repository interface {
	VisitsInWindow(ctx context.Context, clinicID, careType, start, end string) ([]Visit, error)
	ImplantsInWindow(ctx context.Context, clinicID, start, end string) ([]Implant, error)
	PatientIDs(ctx context.Context, clinicID string) (map[uuid.UUID]struct{}, error)
}
