package nurse

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const nurseCols = `id, email, password_hash, full_name, license_number, created_at`

func (r *repoPG) Create(ctx context.Context, n *Nurse) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO nurses (id, email, password_hash, full_name, license_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		n.ID, n.Email, n.PasswordHash, n.FullName, n.LicenseNumber,
	).Scan(&n.CreatedAt)
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*Nurse, error) {
	var n Nurse
	err := r.pool.QueryRow(ctx,
		`SELECT `+nurseCols+` FROM nurses WHERE email = $1`, email,
	).Scan(&n.ID, &n.Email, &n.PasswordHash, &n.FullName, &n.LicenseNumber, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	var n Nurse
	err := r.pool.QueryRow(ctx,
		`SELECT `+nurseCols+` FROM nurses WHERE id = $1`, id,
	).Scan(&n.ID, &n.Email, &n.PasswordHash, &n.FullName, &n.LicenseNumber, &n.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// IsDuplicateEmail reports whether err is the unique-violation raised by the
// nurses email index.
func IsDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
