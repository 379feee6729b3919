package intervention

import (
	"context"
	"encoding/json"
	"fmt"

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

const interventionCols = `id, patient_id, nurse_id, intervention_type, intervention_date, location,
	injection_details, test_details, treatment_details, procedure_details,
	verified_patient_identity, donned_proper_ppe, verified_no_allergic_reaction,
	cleaned_injection_site, adhered_8_rights, notes, created_at`

// marshalDetail keeps nil pointers as SQL NULLs rather than the JSON
// literal "null".
func marshalDetail(v interface{}, isNil bool) ([]byte, error) {
	if isNil {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanIntervention(row pgx.Row) (*Intervention, error) {
	var iv Intervention
	var injJSON, testJSON, treatJSON, procJSON []byte
	err := row.Scan(
		&iv.ID, &iv.PatientID, &iv.NurseID, &iv.InterventionType, &iv.InterventionDate, &iv.Location,
		&injJSON, &testJSON, &treatJSON, &procJSON,
		&iv.VerifiedPatientIdentity, &iv.DonnedProperPPE, &iv.VerifiedNoAllergicReaction,
		&iv.CleanedInjectionSite, &iv.Adhered8Rights, &iv.Notes, &iv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(injJSON) > 0 {
		iv.InjectionDetails = &InjectionDetails{}
		if err := json.Unmarshal(injJSON, iv.InjectionDetails); err != nil {
			return nil, fmt.Errorf("decode injection_details: %w", err)
		}
	}
	if len(testJSON) > 0 {
		iv.TestDetails = &TestDetails{}
		if err := json.Unmarshal(testJSON, iv.TestDetails); err != nil {
			return nil, fmt.Errorf("decode test_details: %w", err)
		}
	}
	if len(treatJSON) > 0 {
		iv.TreatmentDetails = &TreatmentDetails{}
		if err := json.Unmarshal(treatJSON, iv.TreatmentDetails); err != nil {
			return nil, fmt.Errorf("decode treatment_details: %w", err)
		}
	}
	if len(procJSON) > 0 {
		iv.ProcedureDetails = &ProcedureDetails{}
		if err := json.Unmarshal(procJSON, iv.ProcedureDetails); err != nil {
			return nil, fmt.Errorf("decode procedure_details: %w", err)
		}
	}
	return &iv, nil
}

func (r *repoPG) Create(ctx context.Context, iv *Intervention) error {
	if iv.ID == uuid.Nil {
		iv.ID = uuid.New()
	}
	injJSON, err := marshalDetail(iv.InjectionDetails, iv.InjectionDetails == nil)
	if err != nil {
		return err
	}
	testJSON, err := marshalDetail(iv.TestDetails, iv.TestDetails == nil)
	if err != nil {
		return err
	}
	treatJSON, err := marshalDetail(iv.TreatmentDetails, iv.TreatmentDetails == nil)
	if err != nil {
		return err
	}
	procJSON, err := marshalDetail(iv.ProcedureDetails, iv.ProcedureDetails == nil)
	if err != nil {
		return err
	}

	return r.pool.QueryRow(ctx, `
		INSERT INTO interventions (
			id, patient_id, nurse_id, intervention_type, intervention_date, location,
			injection_details, test_details, treatment_details, procedure_details,
			verified_patient_identity, donned_proper_ppe, verified_no_allergic_reaction,
			cleaned_injection_site, adhered_8_rights, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at`,
		iv.ID, iv.PatientID, iv.NurseID, iv.InterventionType, iv.InterventionDate, iv.Location,
		injJSON, testJSON, treatJSON, procJSON,
		iv.VerifiedPatientIdentity, iv.DonnedProperPPE, iv.VerifiedNoAllergicReaction,
		iv.CleanedInjectionSite, iv.Adhered8Rights, iv.Notes,
	).Scan(&iv.CreatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id, nurseID uuid.UUID) (*Intervention, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+interventionCols+` FROM interventions WHERE id = $1 AND nurse_id = $2`,
		id, nurseID)
	return scanIntervention(row)
}

func (r *repoPG) ListByPatient(ctx context.Context, patientID, nurseID uuid.UUID, limit, offset int) ([]*Intervention, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM interventions WHERE patient_id = $1 AND nurse_id = $2`,
		patientID, nurseID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+interventionCols+` FROM interventions
		 WHERE patient_id = $1 AND nurse_id = $2
		 ORDER BY intervention_date DESC
		 LIMIT $3 OFFSET $4`,
		patientID, nurseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*Intervention, 0)
	for rows.Next() {
		iv, err := scanIntervention(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, iv)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Delete(ctx context.Context, id, nurseID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM interventions WHERE id = $1 AND nurse_id = $2`, id, nurseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
