package visit

import (
	"time"

	"github.com/google/uuid"
)

// Visit types.
const (
	TypeNurseVisit = "nurse_visit"
	TypeVitalsOnly = "vitals_only"
	TypeDailyNote  = "daily_note"
)

var validVisitTypes = map[string]bool{
	TypeNurseVisit: true,
	TypeVitalsOnly: true,
	TypeDailyNote:  true,
}

// VitalSigns is the vitals sub-record of a visit. Values are kept as the
// strings the nurse typed; BPAbnormal is derived from the blood-pressure
// pair (see Evaluate).
type VitalSigns struct {
	Weight                       string `json:"weight"`
	BodyTemperature              string `json:"body_temperature"`
	BloodPressureSystolic        string `json:"blood_pressure_systolic"`
	BloodPressureDiastolic       string `json:"blood_pressure_diastolic"`
	PulseOximeter                string `json:"pulse_oximeter"`
	Pulse                        string `json:"pulse"`
	Respirations                 string `json:"respirations"`
	RepeatBloodPressureSystolic  string `json:"repeat_blood_pressure_systolic"`
	RepeatBloodPressureDiastolic string `json:"repeat_blood_pressure_diastolic"`
	BPAbnormal                   bool   `json:"bp_abnormal"`
}

type PhysicalAssessment struct {
	GeneralAppearance  string `json:"general_appearance"`
	SkinAssessment     string `json:"skin_assessment"`
	MobilityLevel      string `json:"mobility_level"`
	SpeechLevel        string `json:"speech_level"`
	AlertOrientedLevel string `json:"alert_oriented_level"` // 0-4
}

type HeadToToeAssessment struct {
	HeadNeck             string `json:"head_neck"`
	EyesVision           string `json:"eyes_vision"`
	EarsHearing          string `json:"ears_hearing"`
	NoseNasalCavity      string `json:"nose_nasal_cavity"`
	MouthTeethOralCavity string `json:"mouth_teeth_oral_cavity"`
}

type GastrointestinalAssessment struct {
	LastBowelMovement string `json:"last_bowel_movement"`
	BowelSounds       string `json:"bowel_sounds"`
	NutritionalDiet   string `json:"nutritional_diet"` // regular, puree/blended, tube, dash, restricted fluids
}

type GenitoUrinaryAssessment struct {
	ToiletingLevel string `json:"toileting_level"` // self, catheter, adult diapers
}

type RespiratoryAssessment struct {
	LungSounds string `json:"lung_sounds"`
	OxygenType string `json:"oxygen_type"` // room air, nasal cannula, mask, bipap, cpap
}

type EndocrineAssessment struct {
	IsDiabetic    bool   `json:"is_diabetic"`
	DiabeticNotes string `json:"diabetic_notes"`
	BloodSugar    string `json:"blood_sugar"`
}

type ChangesSinceLastVisit struct {
	MedicationChanges    string `json:"medication_changes"`
	DiagnosisChanges     string `json:"diagnosis_changes"`
	ERUrgentCareVisits   string `json:"er_urgent_care_visits"`
	UpcomingAppointments string `json:"upcoming_appointments"`
}

// Visit is one documented clinical encounter. Visits are append-only: there
// is no update operation anywhere in the system.
type Visit struct {
	ID                  uuid.UUID                  `json:"id"`
	PatientID           uuid.UUID                  `json:"patient_id"`
	NurseID             uuid.UUID                  `json:"nurse_id"`
	VisitDate           string                     `json:"visit_date"`
	VisitType           string                     `json:"visit_type"`
	Organization        string                     `json:"organization,omitempty"`
	VitalSigns          VitalSigns                 `json:"vital_signs"`
	PhysicalAssessment  PhysicalAssessment         `json:"physical_assessment"`
	HeadToToe           HeadToToeAssessment        `json:"head_to_toe"`
	Gastrointestinal    GastrointestinalAssessment `json:"gastrointestinal"`
	GenitoUrinary       GenitoUrinaryAssessment    `json:"genito_urinary"`
	Respiratory         RespiratoryAssessment      `json:"respiratory"`
	Endocrine           EndocrineAssessment        `json:"endocrine"`
	ChangesSinceLast    ChangesSinceLastVisit      `json:"changes_since_last"`
	OverallHealthStatus string                     `json:"overall_health_status,omitempty"` // stable, unstable, deteriorating, needs immediate attention
	NurseNotes          string                     `json:"nurse_notes,omitempty"`
	DailyNoteContent    string                     `json:"daily_note_content,omitempty"`
	CreatedAt           time.Time                  `json:"created_at"`
}
