package unabletocontact

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

func (s *Service) Create(ctx context.Context, nurseID, patientID uuid.UUID, r *Record) error {
	owned, err := s.patients.Owned(ctx, patientID, nurseID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrPatientNotFound
	}
	if err := Validate(r); err != nil {
		return err
	}
	if r.AttemptDate == "" {
		r.AttemptDate = time.Now().UTC().Format(time.RFC3339)
	}
	r.PatientID = patientID
	r.NurseID = nurseID
	return s.repo.Create(ctx, r)
}

func (s *Service) Get(ctx context.Context, id, nurseID uuid.UUID) (*Record, error) {
	return s.repo.GetByID(ctx, id, nurseID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Record, int, error) {
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
