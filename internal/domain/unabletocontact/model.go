package unabletocontact

import (
	"time"

	"github.com/google/uuid"
)

// Attempt locations.
const (
	AttemptHome            = "home"
	AttemptPhone           = "phone"
	AttemptAdultDayProgram = "adult_day_program"
	AttemptOther           = "other"
)

// Individual locations: why the patient was unreachable.
const (
	IndividualMovedTemporarily = "moved_temporarily"
	IndividualVacation         = "vacation"
	IndividualAdmitted         = "admitted"
	IndividualMovedPermanently = "moved_permanently"
	IndividualUnknown          = "unknown"
	IndividualOther            = "other"
)

// Record documents one failed visit attempt. The conditional fields
// (expected_return_date, admission_date, admission_reason) are displayed
// by clients when the individual location calls for them, but they are not
// enforced here; the record persists whatever was given.
type Record struct {
	ID                   uuid.UUID `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	NurseID              uuid.UUID `json:"nurse_id"`
	AttemptDate          string    `json:"attempt_date"`
	AttemptLocation      string    `json:"attempt_location"`
	AttemptLocationOther string    `json:"attempt_location_other,omitempty"`

	SpokeWithSomeone bool   `json:"spoke_with_someone"`
	SpokeWithWhom    string `json:"spoke_with_whom,omitempty"`

	IndividualLocation      string `json:"individual_location"`
	IndividualLocationOther string `json:"individual_location_other,omitempty"`
	ExpectedReturnDate      string `json:"expected_return_date,omitempty"`
	AdmissionDate           string `json:"admission_date,omitempty"`
	AdmissionReason         string `json:"admission_reason,omitempty"`

	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
