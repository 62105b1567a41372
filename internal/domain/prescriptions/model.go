package prescriptions

import (
	"time"

	"github.com/google/uuid"
)

// Prescription maps to the prescriptions table. A patient holds at most
// one active prescription per clinic, renewing replaces the previous one.
type Prescription struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patientId"`
	Clinic         string    `db:"clinic" json:"clinic"`
	StartDate      string    `db:"start_date" json:"startDate"`
	DurationMonths int       `db:"duration_months" json:"durationMonths"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}
