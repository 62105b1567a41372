package registry

import (
	"time"

	"github.com/google/uuid"
)

// Patient statuses.
const (
	StatusInCare     = "in_cura"
	StatusDischarged = "dimesso"
	StatusSuspended  = "sospeso"
)

// Discharge reasons.
const (
	DischargeRecovered = "guarito"
	DischargeHomeCare  = "adi"
	DischargeOther     = "altro"
)

// LesionMarker is a point annotated on the body map by the nurse.
// The frontend owns the shape, the backend stores it as-is.
type LesionMarker map[string]interface{}

// Patient maps to the patients table.
type Patient struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	Clinic          string         `db:"clinic" json:"clinic"`
	CareType        string         `db:"care_type" json:"careType"`
	FirstName       string         `db:"first_name" json:"firstName"`
	LastName        string         `db:"last_name" json:"lastName"`
	Status          string         `db:"status" json:"status"`
	BirthDate       *string        `db:"birth_date" json:"birthDate,omitempty"`
	TaxCode         *string        `db:"tax_code" json:"taxCode,omitempty"`
	Sex             *string        `db:"sex" json:"sex,omitempty"`
	Phone           *string        `db:"phone" json:"phone,omitempty"`
	Email           *string        `db:"email" json:"email,omitempty"`
	FamilyDoctor    *string        `db:"family_doctor" json:"familyDoctor,omitempty"`
	History         *string        `db:"history" json:"history,omitempty"`
	CurrentTherapy  *string        `db:"current_therapy" json:"currentTherapy,omitempty"`
	Allergies       *string        `db:"allergies" json:"allergies,omitempty"`
	LesionMarkers   []LesionMarker `db:"lesion_markers" json:"lesionMarkers"`
	DischargeReason *string        `db:"discharge_reason" json:"dischargeReason,omitempty"`
	DischargeNotes  *string        `db:"discharge_notes" json:"dischargeNotes,omitempty"`
	SuspendNotes    *string        `db:"suspend_notes" json:"suspendNotes,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updatedAt"`
}

// Patch carries the fields a PUT may change. Nil means "leave as is".
type Patch struct {
	FirstName       *string         `json:"firstName"`
	LastName        *string         `json:"lastName"`
	CareType        *string         `json:"careType"`
	BirthDate       *string         `json:"birthDate"`
	TaxCode         *string         `json:"taxCode"`
	Sex             *string         `json:"sex"`
	Phone           *string         `json:"phone"`
	Email           *string         `json:"email"`
	FamilyDoctor    *string         `json:"familyDoctor"`
	History         *string         `json:"history"`
	CurrentTherapy  *string         `json:"currentTherapy"`
	Allergies       *string         `json:"allergies"`
	Status          *string         `json:"status"`
	DischargeReason *string         `json:"dischargeReason"`
	DischargeNotes  *string         `json:"dischargeNotes"`
	SuspendNotes    *string         `json:"suspendNotes"`
	LesionMarkers   *[]LesionMarker `json:"lesionMarkers"`
}

// ListFilter narrows the patient list.
type ListFilter struct {
	Status   string
	CareType string
	Search   string
}

func validStatus(s string) bool {
	return s == StatusInCare || s == StatusDischarged || s == StatusSuspended
}

func validDischargeReason(r string) bool {
	return r == DischargeRecovered || r == DischargeHomeCare || r == DischargeOther
}
