package intervention

import (
	"time"

	"github.com/google/uuid"
)

// Intervention types.
const (
	TypeInjection = "injection"
	TypeTest      = "test"
	TypeTreatment = "treatment"
	TypeProcedure = "procedure"
)

var validTypes = map[string]bool{
	TypeInjection: true,
	TypeTest:      true,
	TypeTreatment: true,
	TypeProcedure: true,
}

// InjectionDetails is the sub-record for an injection intervention.
type InjectionDetails struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Route          string `json:"route"`
	InjectionSite  string `json:"injection_site"`
	LotNumber      string `json:"lot_number"`
	ExpirationDate string `json:"expiration_date"`
}

type TestDetails struct {
	TestName   string `json:"test_name"`
	TestResult string `json:"test_result"`
	Specimen   string `json:"specimen"`
}

type TreatmentDetails struct {
	TreatmentName  string `json:"treatment_name"`
	TreatmentNotes string `json:"treatment_notes"`
}

type ProcedureDetails struct {
	ProcedureName  string `json:"procedure_name"`
	ProcedureNotes string `json:"procedure_notes"`
}

// Intervention is a documented clinical intervention. Exactly one detail
// sub-record is non-nil after normalization, matching InterventionType.
type Intervention struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"patient_id"`
	NurseID          uuid.UUID `json:"nurse_id"`
	InterventionType string    `json:"intervention_type"`
	InterventionDate string    `json:"intervention_date"`
	Location         string    `json:"location"`

	InjectionDetails *InjectionDetails `json:"injection_details"`
	TestDetails      *TestDetails      `json:"test_details"`
	TreatmentDetails *TreatmentDetails `json:"treatment_details"`
	ProcedureDetails *ProcedureDetails `json:"procedure_details"`

	// Safety acknowledgments. The injection-only ones are ignored for
	// other types.
	VerifiedPatientIdentity    bool `json:"verified_patient_identity"`
	DonnedProperPPE            bool `json:"donned_proper_ppe"`
	VerifiedNoAllergicReaction bool `json:"verified_no_allergic_reaction"`
	CleanedInjectionSite       bool `json:"cleaned_injection_site"`
	Adhered8Rights             bool `json:"adhered_8_rights"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
