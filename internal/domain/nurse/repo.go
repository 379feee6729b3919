package nurse

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists nurse accounts. Create must fail with a
// duplicate-email error when the address is already registered;
// implementations surface that through IsDuplicateEmail.
type Repository interface {
	Create(ctx context.Context, n *Nurse) error
	GetByEmail(ctx context.Context, email string) (*Nurse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Nurse, error)
}
