package patient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const patientCols = `id, nurse_id, full_name, permanent_info, last_vitals, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var infoJSON, vitalsJSON []byte
	err := row.Scan(&p.ID, &p.NurseID, &p.FullName, &infoJSON, &vitalsJSON, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(infoJSON) > 0 {
		if err := json.Unmarshal(infoJSON, &p.PermanentInfo); err != nil {
			return nil, fmt.Errorf("decode permanent_info: %w", err)
		}
	}
	if len(vitalsJSON) > 0 {
		p.LastVitals = &visit.VitalSigns{}
		if err := json.Unmarshal(vitalsJSON, p.LastVitals); err != nil {
			return nil, fmt.Errorf("decode last_vitals: %w", err)
		}
	}
	return &p, nil
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	infoJSON, err := json.Marshal(p.PermanentInfo)
	if err != nil {
		return fmt.Errorf("encode permanent_info: %w", err)
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, nurse_id, full_name, permanent_info)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		p.ID, p.NurseID, p.FullName, infoJSON,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1 AND nurse_id = $2`,
		id, nurseID)
	return scanPatient(row)
}

func (r *repoPG) List(ctx context.Context, nurseID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM patients WHERE nurse_id = $1`, nurseID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+patientCols+` FROM patients
		 WHERE nurse_id = $1
		 ORDER BY full_name ASC
		 LIMIT $2 OFFSET $3`,
		nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients := make([]*Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	infoJSON, err := json.Marshal(p.PermanentInfo)
	if err != nil {
		return fmt.Errorf("encode permanent_info: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients
		SET full_name = $1, permanent_info = $2, updated_at = now()
		WHERE id = $3 AND nurse_id = $4`,
		p.FullName, infoJSON, p.ID, p.NurseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM patients WHERE id = $1 AND nurse_id = $2`, id, nurseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *repoPG) Owned(ctx context.Context, id, nurseID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM patients WHERE id = $1 AND nurse_id = $2)`,
		id, nurseID,
	).Scan(&exists)
	return exists, err
}

func (r *repoPG) SetLastVitals(ctx context.Context, id uuid.UUID, vitals *visit.VitalSigns) error {
	vitalsJSON, err := json.Marshal(vitals)
	if err != nil {
		return fmt.Errorf("encode last_vitals: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`UPDATE patients SET last_vitals = $1, updated_at = now() WHERE id = $2`,
		vitalsJSON, id)
	return err
}
