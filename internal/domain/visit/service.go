package visit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrPatientNotFound = fmt.Errorf("patient not found")

type Service struct {
	repo     Repository
	patients PatientDirectory
}

func NewService(repo Repository, patients PatientDirectory) *Service {
	return &Service{repo: repo, patients: patients}
}

// Create stores a new visit for the patient and overwrites the patient's
// cached last vitals with this visit's vitals. The derived bp_abnormal flag
// is recomputed server-side so the stored record always satisfies the
// threshold rule, whatever the client sent.
func (s *Service) Create(ctx context.Context, nurseID, patientID uuid.UUID, v *Visit) error {
	owned, err := s.patients.Owned(ctx, patientID, nurseID)
	if err != nil {
		return err
	}
	if !owned {
		return ErrPatientNotFound
	}

	if v.VisitType == "" {
		v.VisitType = TypeNurseVisit
	}
	if !validVisitTypes[v.VisitType] {
		return fmt.Errorf("invalid visit_type: %s", v.VisitType)
	}
	if v.VisitDate == "" {
		v.VisitDate = time.Now().UTC().Format(time.RFC3339)
	}
	v.PatientID = patientID
	v.NurseID = nurseID
	v.VitalSigns.Evaluate()

	if err := s.repo.Create(ctx, v); err != nil {
		return err
	}

	// The visit is committed at this point. A failed last-vitals push must
	// not surface as a rejected submission.
	vitals := v.VitalSigns
	if err := s.patients.SetLastVitals(ctx, patientID, nurseID, &vitals); err != nil {
		log.Warn().Err(err).
			Str("visit_id", v.ID.String()).
			Str("patient_id", patientID.String()).
			Msg("last vitals update failed after visit create")
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id, nurseID uuid.UUID) (*Visit, error) {
	return s.repo.GetByID(ctx, id, nurseID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
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
