package forms

import (
	"time"

	"github.com/google/uuid"
)

// Treatment text pre-filled on new wound dressing records.
const DefaultTreatment = "La lesione è stata trattata seguendo le 4 fasi del Wound Hygiene:\n" +
	"Detersione con Prontosan\n" +
	"Debridement e Riattivazione dei margini\n" +
	"Medicazione: "

// Implant record variants. The simplified form collects the bare minimum
// at bedside, the complete one is the official implant report.
const (
	VariantComplete   = "complete"
	VariantSimplified = "simplified"
)

// DressingRecord maps to the dressing_records table (wound care track).
type DressingRecord struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patientId"`
	Clinic           string    `db:"clinic" json:"clinic"`
	RecordedAt       string    `db:"recorded_at" json:"recordedAt"`
	WoundBed         []string  `db:"wound_bed" json:"woundBed"`
	Margins          []string  `db:"margins" json:"margins"`
	PerilesionalSkin []string  `db:"perilesional_skin" json:"perilesionalSkin"`
	ExudateAmount    *string   `db:"exudate_amount" json:"exudateAmount,omitempty"`
	ExudateType      []string  `db:"exudate_type" json:"exudateType"`
	Treatment        string    `db:"treatment" json:"treatment"`
	NextChange       *string   `db:"next_change" json:"nextChange,omitempty"`
	Signature        *string   `db:"signature" json:"signature,omitempty"`
	PhotoIDs         []string  `db:"photo_ids" json:"photoIds"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// ImplantRecord maps to the implant_records table (vascular access track).
type ImplantRecord struct {
	ID                  uuid.UUID `db:"id" json:"id"`
	PatientID           uuid.UUID `db:"patient_id" json:"patientId"`
	Clinic              string    `db:"clinic" json:"clinic"`
	Variant             string    `db:"variant" json:"variant"`
	ImplantDate         string    `db:"implant_date" json:"implantDate"`
	CatheterType        string    `db:"catheter_type" json:"catheterType"`
	Site                string    `db:"site" json:"site"`
	Arm                 *string   `db:"arm" json:"arm,omitempty"`
	Vein                *string   `db:"vein" json:"vein,omitempty"`
	ExitSiteCM          *string   `db:"exit_site_cm" json:"exitSiteCm,omitempty"`
	Ultrasound          bool      `db:"ultrasound" json:"ultrasound"`
	HandHygiene         *string   `db:"hand_hygiene" json:"handHygiene,omitempty"`
	BarrierPrecautions  bool      `db:"barrier_precautions" json:"barrierPrecautions"`
	Disinfectant        *string   `db:"disinfectant" json:"disinfectant,omitempty"`
	SuturelessDevice    bool      `db:"sutureless_device" json:"suturelessDevice"`
	TransparentDressing bool      `db:"transparent_dressing" json:"transparentDressing"`
	OcclusiveDressing   bool      `db:"occlusive_dressing" json:"occlusiveDressing"`
	Tunneled            bool      `db:"tunneled" json:"tunneled"`
	XRayCheck           bool      `db:"xray_check" json:"xrayCheck"`
	PriorXRayCheck      bool      `db:"prior_xray_check" json:"priorXrayCheck"`
	ECGCheck            bool      `db:"ecg_check" json:"ecgCheck"`
	Mode                *string   `db:"mode" json:"mode,omitempty"`
	Reason              *string   `db:"reason" json:"reason,omitempty"`
	ReasonOther         *string   `db:"reason_other" json:"reasonOther,omitempty"`
	ImplantFacility     *string   `db:"implant_facility" json:"implantFacility,omitempty"`
	ReferringWard       *string   `db:"referring_ward" json:"referringWard,omitempty"`
	SiteAssessment      *string   `db:"site_assessment" json:"siteAssessment,omitempty"`
	Operator            *string   `db:"operator" json:"operator,omitempty"`
	Notes               *string   `db:"notes" json:"notes,omitempty"`
	AttachmentIDs       []string  `db:"attachment_ids" json:"attachmentIds"`
	CreatedAt           time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}

// DayEntries records what was done on one visit day, keyed by activity id.
type DayEntries map[string]interface{}

// MonthlyLog maps to the monthly_logs table. One row per patient, clinic
// and month, days keyed by YYYY-MM-DD date.
type MonthlyLog struct {
	ID        uuid.UUID             `db:"id" json:"id"`
	PatientID uuid.UUID             `db:"patient_id" json:"patientId"`
	Clinic    string                `db:"clinic" json:"clinic"`
	Month     string                `db:"month" json:"month"`
	Days      map[string]DayEntries `db:"days" json:"days"`
	Notes     *string               `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time             `db:"updated_at" json:"updatedAt"`
}
