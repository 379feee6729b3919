package intervention

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists interventions, scoped to the owning nurse.
type Repository interface {
	Create(ctx context.Context, iv *Intervention) error
	GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Intervention, error)
	ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Intervention, int, error)
	Delete(ctx context.Context, id, nurseID uuid.UUID) error
}
