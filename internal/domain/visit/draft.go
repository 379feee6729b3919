package visit

import (
	"fmt"
	"time"
)

// Draft is an in-progress visit form. It is a plain value: SetField returns
// a modified copy and never touches the receiver, so a caller can keep any
// number of intermediate states around.
type Draft struct {
	Visit
}

// NewDraft returns a fully-defaulted visit draft: today's date, empty
// strings, false booleans. When the patient has vitals from a previous
// visit, the vitals section is seeded from them.
func NewDraft(lastVitals *VitalSigns) Draft {
	d := Draft{}
	d.VisitDate = time.Now().Format("2006-01-02")
	d.VisitType = TypeNurseVisit
	if lastVitals != nil {
		d.VitalSigns = *lastVitals
		d.VitalSigns.Evaluate()
	}
	return d
}

type fieldSetter func(*Visit, interface{}) error

func setString(assign func(*Visit, string)) fieldSetter {
	return func(v *Visit, value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		assign(v, s)
		return nil
	}
}

func setBool(assign func(*Visit, bool)) fieldSetter {
	return func(v *Visit, value interface{}) error {
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		assign(v, b)
		return nil
	}
}

// fieldSetters addresses every settable leaf of the form. Top-level scalars
// use their bare name; section fields use "section.field".
var fieldSetters = map[string]fieldSetter{
	"visit_date":            setString(func(v *Visit, s string) { v.VisitDate = s }),
	"visit_type":            setString(func(v *Visit, s string) { v.VisitType = s }),
	"organization":          setString(func(v *Visit, s string) { v.Organization = s }),
	"overall_health_status": setString(func(v *Visit, s string) { v.OverallHealthStatus = s }),
	"nurse_notes":           setString(func(v *Visit, s string) { v.NurseNotes = s }),
	"daily_note_content":    setString(func(v *Visit, s string) { v.DailyNoteContent = s }),

	"vital_signs.weight":                          setString(func(v *Visit, s string) { v.VitalSigns.Weight = s }),
	"vital_signs.body_temperature":                setString(func(v *Visit, s string) { v.VitalSigns.BodyTemperature = s }),
	"vital_signs.blood_pressure_systolic":         setString(func(v *Visit, s string) { v.VitalSigns.BloodPressureSystolic = s }),
	"vital_signs.blood_pressure_diastolic":        setString(func(v *Visit, s string) { v.VitalSigns.BloodPressureDiastolic = s }),
	"vital_signs.pulse_oximeter":                  setString(func(v *Visit, s string) { v.VitalSigns.PulseOximeter = s }),
	"vital_signs.pulse":                           setString(func(v *Visit, s string) { v.VitalSigns.Pulse = s }),
	"vital_signs.respirations":                    setString(func(v *Visit, s string) { v.VitalSigns.Respirations = s }),
	"vital_signs.repeat_blood_pressure_systolic":  setString(func(v *Visit, s string) { v.VitalSigns.RepeatBloodPressureSystolic = s }),
	"vital_signs.repeat_blood_pressure_diastolic": setString(func(v *Visit, s string) { v.VitalSigns.RepeatBloodPressureDiastolic = s }),

	"physical_assessment.general_appearance":   setString(func(v *Visit, s string) { v.PhysicalAssessment.GeneralAppearance = s }),
	"physical_assessment.skin_assessment":      setString(func(v *Visit, s string) { v.PhysicalAssessment.SkinAssessment = s }),
	"physical_assessment.mobility_level":       setString(func(v *Visit, s string) { v.PhysicalAssessment.MobilityLevel = s }),
	"physical_assessment.speech_level":         setString(func(v *Visit, s string) { v.PhysicalAssessment.SpeechLevel = s }),
	"physical_assessment.alert_oriented_level": setString(func(v *Visit, s string) { v.PhysicalAssessment.AlertOrientedLevel = s }),

	"head_to_toe.head_neck":               setString(func(v *Visit, s string) { v.HeadToToe.HeadNeck = s }),
	"head_to_toe.eyes_vision":             setString(func(v *Visit, s string) { v.HeadToToe.EyesVision = s }),
	"head_to_toe.ears_hearing":            setString(func(v *Visit, s string) { v.HeadToToe.EarsHearing = s }),
	"head_to_toe.nose_nasal_cavity":       setString(func(v *Visit, s string) { v.HeadToToe.NoseNasalCavity = s }),
	"head_to_toe.mouth_teeth_oral_cavity": setString(func(v *Visit, s string) { v.HeadToToe.MouthTeethOralCavity = s }),

	"gastrointestinal.last_bowel_movement": setString(func(v *Visit, s string) { v.Gastrointestinal.LastBowelMovement = s }),
	"gastrointestinal.bowel_sounds":        setString(func(v *Visit, s string) { v.Gastrointestinal.BowelSounds = s }),
	"gastrointestinal.nutritional_diet":    setString(func(v *Visit, s string) { v.Gastrointestinal.NutritionalDiet = s }),

	"genito_urinary.toileting_level": setString(func(v *Visit, s string) { v.GenitoUrinary.ToiletingLevel = s }),

	"respiratory.lung_sounds": setString(func(v *Visit, s string) { v.Respiratory.LungSounds = s }),
	"respiratory.oxygen_type": setString(func(v *Visit, s string) { v.Respiratory.OxygenType = s }),

	"endocrine.is_diabetic":    setBool(func(v *Visit, b bool) { v.Endocrine.IsDiabetic = b }),
	"endocrine.diabetic_notes": setString(func(v *Visit, s string) { v.Endocrine.DiabeticNotes = s }),
	"endocrine.blood_sugar":    setString(func(v *Visit, s string) { v.Endocrine.BloodSugar = s }),

	"changes_since_last.medication_changes":    setString(func(v *Visit, s string) { v.ChangesSinceLast.MedicationChanges = s }),
	"changes_since_last.diagnosis_changes":     setString(func(v *Visit, s string) { v.ChangesSinceLast.DiagnosisChanges = s }),
	"changes_since_last.er_urgent_care_visits": setString(func(v *Visit, s string) { v.ChangesSinceLast.ERUrgentCareVisits = s }),
	"changes_since_last.upcoming_appointments": setString(func(v *Visit, s string) { v.ChangesSinceLast.UpcomingAppointments = s }),
}

// SetField returns a copy of the draft with exactly the addressed leaf
// replaced. All other fields are untouched. No validation happens here;
// the draft is pure storage. The derived bp_abnormal flag is recomputed
// whenever either blood-pressure source field changes.
func (d Draft) SetField(path string, value interface{}) (Draft, error) {
	setter, ok := fieldSetters[path]
	if !ok {
		return d, fmt.Errorf("unknown field path: %s", path)
	}
	out := d // struct copy; every leaf is a value type
	if err := setter(&out.Visit, value); err != nil {
		return d, fmt.Errorf("set %s: %w", path, err)
	}
	if path == "vital_signs.blood_pressure_systolic" || path == "vital_signs.blood_pressure_diastolic" {
		out.VitalSigns.Evaluate()
	}
	return out, nil
}
