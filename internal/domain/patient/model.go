package patient

import (
	"time"

	"github.com/google/uuid"

	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

// PermanentInfo holds the demographic and clinical background that rarely
// changes between visits. Stored as one JSONB document.
type PermanentInfo struct {
	Race                   string   `json:"race"`
	Gender                 string   `json:"gender"`
	Height                 string   `json:"height"`
	HomeAddress            string   `json:"home_address"`
	CaregiverName          string   `json:"caregiver_name"`
	CaregiverPhone         string   `json:"caregiver_phone"`
	DateOfBirth            string   `json:"date_of_birth"`
	Medications            []string `json:"medications"`
	Allergies              []string `json:"allergies"`
	AdultDayProgramName    string   `json:"adult_day_program_name"`
	AdultDayProgramAddress string   `json:"adult_day_program_address"`
	MedicalDiagnoses       []string `json:"medical_diagnoses"`
	PsychiatricDiagnoses   []string `json:"psychiatric_diagnoses"`
	VisitFrequency         string   `json:"visit_frequency"`
}

// Patient is a roster entry. LastVitals mirrors the vitals of the most
// recent visit so the roster can show them without a join; it is nil until
// the first visit is documented.
type Patient struct {
	ID            uuid.UUID         `json:"id"`
	NurseID       uuid.UUID         `json:"nurse_id"`
	FullName      string            `json:"full_name"`
	PermanentInfo PermanentInfo     `json:"permanent_info"`
	LastVitals    *visit.VitalSigns `json:"last_vitals,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
