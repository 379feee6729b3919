package visit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const visitCols = `id, patient_id, nurse_id, visit_date, visit_type, organization,
	vital_signs, physical_assessment, head_to_toe, gastrointestinal,
	genito_urinary, respiratory, endocrine, changes_since_last,
	overall_health_status, nurse_notes, daily_note_content, created_at`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	var vitals, physical, headToToe, gastro, genito, resp, endo, changes []byte
	err := row.Scan(&v.ID, &v.PatientID, &v.NurseID, &v.VisitDate, &v.VisitType,
		&v.Organization, &vitals, &physical, &headToToe, &gastro, &genito,
		&resp, &endo, &changes, &v.OverallHealthStatus, &v.NurseNotes,
		&v.DailyNoteContent, &v.CreatedAt)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw []byte
		dst interface{}
	}{
		{vitals, &v.VitalSigns},
		{physical, &v.PhysicalAssessment},
		{headToToe, &v.HeadToToe},
		{gastro, &v.Gastrointestinal},
		{genito, &v.GenitoUrinary},
		{resp, &v.Respiratory},
		{endo, &v.Endocrine},
		{changes, &v.ChangesSinceLast},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
			return nil, fmt.Errorf("decode visit sub-record: %w", err)
		}
	}
	return &v, nil
}

func (r *repoPG) Create(ctx context.Context, v *Visit) error {
	v.ID = uuid.New()

	sub := make([][]byte, 8)
	for i, src := range []interface{}{
		v.VitalSigns, v.PhysicalAssessment, v.HeadToToe, v.Gastrointestinal,
		v.GenitoUrinary, v.Respiratory, v.Endocrine, v.ChangesSinceLast,
	} {
		raw, err := json.Marshal(src)
		if err != nil {
			return fmt.Errorf("encode visit sub-record: %w", err)
		}
		sub[i] = raw
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO visits (id, patient_id, nurse_id, visit_date, visit_type, organization,
			vital_signs, physical_assessment, head_to_toe, gastrointestinal,
			genito_urinary, respiratory, endocrine, changes_since_last,
			overall_health_status, nurse_notes, daily_note_content)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING created_at`,
		v.ID, v.PatientID, v.NurseID, v.VisitDate, v.VisitType, v.Organization,
		sub[0], sub[1], sub[2], sub[3], sub[4], sub[5], sub[6], sub[7],
		v.OverallHealthStatus, v.NurseNotes, v.DailyNoteContent,
	).Scan(&v.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Visit, error) {
	return scanVisit(r.pool.QueryRow(ctx,
		`SELECT `+visitCols+` FROM visits WHERE id = $1 AND nurse_id = $2`, id, nurseID))
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Visit, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM visits WHERE patient_id = $1 AND nurse_id = $2`,
		patientID, nurseID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `SELECT `+visitCols+` FROM visits
		WHERE patient_id = $1 AND nurse_id = $2
		ORDER BY visit_date DESC LIMIT $3 OFFSET $4`,
		patientID, nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Visit
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM visits WHERE id = $1 AND nurse_id = $2`, id, nurseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
