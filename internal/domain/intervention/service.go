package intervention

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

var ErrPatientNotFound = fmt.Errorf("patient not found")

type Service struct {
	repo     Repository
	patients visit.PatientDirectory
}

func NewService(repo Repository, patients visit.PatientDirectory) *Service {
	return &Service{repo: repo, patients: patients}
}

// Create validates the draft, normalizes the detail sub-records and stores
// the intervention. Validation failures come back verbatim so handlers can
// return the message as-is.
func (s *Service) Create(ctx context.Context, nurseID, patientID uuid.UUID, iv *Intervention) error {
	owned, err := s.patients.Owned(ctx, patientID, nurseID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrPatientNotFound
	}

	if !validTypes[iv.InterventionType] {
		return fmt.Errorf("invalid intervention_type: %s", iv.InterventionType)
	}
	if err := Validate(iv); err != nil {
		return err
	}
	NormalizeDetails(iv)

	if iv.InterventionDate == "" {
		iv.InterventionDate = time.Now().UTC().Format(time.RFC3339)
	}
	iv.PatientID = patientID
	iv.NurseID = nurseID
	return s.repo.Create(ctx, iv)
}

func (s *Service) Get(ctx context.Context, id, nurseID uuid.UUID) (*Intervention, error) {
	return s.repo.GetByID(ctx, id, nurseID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Intervention, int, error) {
	owned, err := s.patients.Owned(ctx, patientID, nurseID)
	if err != nil {
		return nil, 0, err
	}
	if !owned {
		return nil, 0, ErrPatientNotFound
	}
	return s.repo.ListByPatient(ctx, patientID, nurseID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	return s.repo.Delete(ctx, id, nurseID)
}
