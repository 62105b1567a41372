package attachments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attachment categories, matching the section of the record the file
// belongs to.
const (
	CategoryMED         = "MED"
	CategoryPICC        = "PICC"
	CategoryMEDDressing = "MED_SCHEDA"
)

// File kinds recognised by the viewer.
const (
	KindImage = "image"
	KindPDF   = "pdf"
	KindWord  = "word"
	KindExcel = "excel"
)

// Attachment maps to the attachments table. Content is the base64 encoded
// file body.
type Attachment struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patientId"`
	Clinic           string     `db:"clinic" json:"clinic"`
	Category         string     `db:"category" json:"category"`
	Description      *string    `db:"description" json:"description,omitempty"`
	Date             string     `db:"taken_at" json:"date"`
	Content          string     `db:"content" json:"content"`
	FileKind         string     `db:"file_kind" json:"fileKind"`
	OriginalName     *string    `db:"original_name" json:"originalName,omitempty"`
	MimeType         *string    `db:"mime_type" json:"mimeType,omitempty"`
	DressingRecordID *uuid.UUID `db:"dressing_record_id" json:"dressingRecordId,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
}

// InferFileKind resolves the stored kind from the declared one and the
// upload's MIME type. An explicit non-image declaration wins.
func InferFileKind(declared, mimeType string) string {
	if declared != "" && declared != KindImage {
		return declared
	}
	m := strings.ToLower(mimeType)
	switch {
	case strings.Contains(m, "pdf"):
		return KindPDF
	case strings.Contains(m, "word"), strings.Contains(m, "document"):
		return KindWord
	case strings.Contains(m, "excel"), strings.Contains(m, "spreadsheet"):
		return KindExcel
	case strings.HasPrefix(m, "image/"):
		return KindImage
	}
	return declared
}
