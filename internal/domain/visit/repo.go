package visit

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists visits. All reads and deletes are scoped to the
// owning nurse; a visit belonging to another nurse behaves as not-found.
type Repository interface {
	Create(ctx context.Context, v *Visit) error
	GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Visit, error)
	ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Visit, int, error)
	Delete(ctx context.Context, id, nurseID uuid.UUID) error
}

// PatientDirectory is the slice of the patient domain the visit service
// needs: ownership checks and the last-vitals denormalization hook.
type PatientDirectory interface {
	Owned(ctx context.Context, patientID, nurseID uuid.UUID) (bool, error)
	SetLastVitals(ctx context.Context, patientID, nurseID uuid.UUID, vitals *VitalSigns) error
}
