package unabletocontact

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists unable-to-contact records, scoped to the owning nurse.
type Repository interface {
	Create(ctx context.Context, r *Record) error
	GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Record, error)
	ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Record, int, error)
	Delete(ctx context.Context, id, nurseID uuid.UUID) error
}
