package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Each half-hour slot takes at most this many bookings per care track.
const SlotCapacity = 2

// Appointment maps to the appointments table. Patient names are copied at
// booking time so the agenda renders without a join.
type Appointment struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patientId"`
	PatientFirstName string    `db:"patient_first_name" json:"patientFirstName"`
	PatientLastName  string    `db:"patient_last_name" json:"patientLastName"`
	Clinic           string    `db:"clinic" json:"clinic"`
	Date             string    `db:"visit_date" json:"date"`
	Time             string    `db:"visit_time" json:"time"`
	CareType         string    `db:"care_type" json:"careType"`
	Procedures       []string  `db:"procedures" json:"procedures"`
	Notes            *string   `db:"notes" json:"notes,omitempty"`
	Completed        bool      `db:"completed" json:"completed"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// Patch carries the fields a PUT may change. Nil means "leave as is".
// Rescheduling does not re-check slot capacity, the nurse decides.
type Patch struct {
	Date       *string   `json:"date"`
	Time       *string   `json:"time"`
	CareType   *string   `json:"careType"`
	Procedures *[]string `json:"procedures"`
	Notes      *string   `json:"notes"`
	Completed  *bool     `json:"completed"`
}

// ListFilter narrows the agenda. An exact Date wins over the From/To range,
// both bounds of which are inclusive.
type ListFilter struct {
	Date     string
	From     string
	To       string
	CareType string
}
