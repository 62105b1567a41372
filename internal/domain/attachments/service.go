package attachments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ambulatorio/api/internal/domain/clinic"
	"github.com/ambulatorio/api/internal/platform/auth"
)

// Service provides business logic for patient attachments.
type Service struct {
	attachments Repository
}

// NewService creates a new attachments service.
func NewService(attachments Repository) *Service {
	return &Service{attachments: attachments}
}

func (s *Service) Upload(ctx context.Context, pr *auth.Principal, a *Attachment) error {
	if a.PatientID == uuid.Nil {
		return fmt.Errorf("patientId is required")
	}
	if !clinic.Valid(a.Clinic) {
		return fmt.Errorf("unknown clinic %q", a.Clinic)
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return err
	}
	if a.Category == "" {
		return fmt.Errorf("category is required")
	}
	if a.Content == "" {
		return fmt.Errorf("file content is required")
	}
	mime := ""
	if a.MimeType != nil {
		mime = *a.MimeType
	}
	a.FileKind = InferFileKind(a.FileKind, mime)
	return s.attachments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, pr *auth.Principal, id uuid.UUID) (*Attachment, error) {
	a, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, pr *auth.Principal, id uuid.UUID) error {
	a, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := pr.Authorize(a.Clinic); err != nil {
		return err
	}
	return s.attachments.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, pr *auth.Principal, patientID uuid.UUID, clinicID, category string) ([]*Attachment, error) {
	if !clinic.Valid(clinicID) {
		return nil, fmt.Errorf("unknown clinic %q", clinicID)
	}
	if err := pr.Authorize(clinicID); err != nil {
		return nil, err
	}
	return s.attachments.ListByPatient(ctx, patientID, clinicID, category)
}
