package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

// Repository persists roster entries. Everything is scoped to the owning
// nurse; another nurse's patient behaves as not-found.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Patient, error)
	List(ctx context.Context, nurseID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id, nurseID uuid.UUID) error
	Owned(ctx context.Context, id, nurseID uuid.UUID) (bool, error)
	SetLastVitals(ctx context.Context, id uuid.UUID, vitals *visit.VitalSigns) error
}
