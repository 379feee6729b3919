package unabletocontact

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct {
	pool *pgxpool.Pool
}

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const recordCols = `id, patient_id, nurse_id, attempt_date, attempt_location, attempt_location_other,
	spoke_with_someone, spoke_with_whom, individual_location, individual_location_other,
	expected_return_date, admission_date, admission_reason, notes, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var r Record
	err := row.Scan(
		&r.ID, &r.PatientID, &r.NurseID, &r.AttemptDate, &r.AttemptLocation, &r.AttemptLocationOther,
		&r.SpokeWithSomeone, &r.SpokeWithWhom, &r.IndividualLocation, &r.IndividualLocationOther,
		&r.ExpectedReturnDate, &r.AdmissionDate, &r.AdmissionReason, &r.Notes, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *repoPG) Create(ctx context.Context, rec *Record) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	return r.pool.QueryRow(ctx, `
		INSERT INTO unable_to_contact (
			id, patient_id, nurse_id, attempt_date, attempt_location, attempt_location_other,
			spoke_with_someone, spoke_with_whom, individual_location, individual_location_other,
			expected_return_date, admission_date, admission_reason, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at`,
		rec.ID, rec.PatientID, rec.NurseID, rec.AttemptDate, rec.AttemptLocation, rec.AttemptLocationOther,
		rec.SpokeWithSomeone, rec.SpokeWithWhom, rec.IndividualLocation, rec.IndividualLocationOther,
		rec.ExpectedReturnDate, rec.AdmissionDate, rec.AdmissionReason, rec.Notes,
	).Scan(&rec.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+recordCols+` FROM unable_to_contact WHERE id = $1 AND nurse_id = $2`,
		id, nurseID)
	return scanRecord(row)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM unable_to_contact WHERE patient_id = $1 AND nurse_id = $2`,
		patientID, nurseID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+recordCols+` FROM unable_to_contact
		 WHERE patient_id = $1 AND nurse_id = $2
		 ORDER BY attempt_date DESC
		 LIMIT $3 OFFSET $4`,
		patientID, nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rec)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM unable_to_contact WHERE id = $1 AND nurse_id = $2`, id, nurseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
