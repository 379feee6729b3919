package report

import (
	"fmt"
	"strings"

	"github.com/visitdocs/visitdocs/internal/domain/patient"
	"github.com/visitdocs/visitdocs/internal/domain/visit"
)

// Document is the layout-independent form of a visit report: ordered
// sections of "Label: value" fields. The PDF renderer replays it without
// making any content decisions of its own, so building the document twice
// from the same inputs yields identical content.
type Document struct {
	Title    string
	Sections []Section
}

type Section struct {
	Title  string
	Fields []Field
}

type Field struct {
	Label string
	Value string
}

// orNA substitutes the placeholder for blank values. Reports always show
// every field of an emitted section.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

func joinOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// BuildVisitDocument lays out a patient and one of their visits in the
// fixed report order. The Endocrine section appears only for diabetic
// patients; the Nurse Notes section only when notes were written.
func BuildVisitDocument(p *patient.Patient, v *visit.Visit) Document {
	info := p.PermanentInfo
	doc := Document{Title: "Visit Report"}

	doc.Sections = append(doc.Sections, Section{
		Title: "Patient Information",
		Fields: []Field{
			{"Name", orNA(p.FullName)},
			{"Date of Birth", orNA(info.DateOfBirth)},
			{"Gender", orNA(info.Gender)},
			{"Race", orNA(info.Race)},
			{"Height", orNA(info.Height)},
			{"Home Address", orNA(info.HomeAddress)},
			{"Caregiver", orNA(info.CaregiverName)},
			{"Caregiver Phone", orNA(info.CaregiverPhone)},
			{"Adult Day Program", orNA(info.AdultDayProgramName)},
			{"Program Address", orNA(info.AdultDayProgramAddress)},
			{"Medications", joinOrNA(info.Medications)},
			{"Allergies", joinOrNA(info.Allergies)},
			{"Medical Diagnoses", joinOrNA(info.MedicalDiagnoses)},
			{"Psychiatric Diagnoses", joinOrNA(info.PsychiatricDiagnoses)},
			{"Visit Frequency", orNA(info.VisitFrequency)},
		},
	})

	doc.Sections = append(doc.Sections, Section{
		Title: "Visit Information",
		Fields: []Field{
			{"Visit Date", orNA(v.VisitDate)},
			{"Visit Type", orNA(v.VisitType)},
			{"Organization", orNA(v.Organization)},
			{"Overall Health Status", orNA(v.OverallHealthStatus)},
		},
	})

	vs := v.VitalSigns
	doc.Sections = append(doc.Sections, Section{
		Title: "Vital Signs",
		Fields: []Field{
			{"Weight", orNA(vs.Weight)},
			{"Body Temperature", orNA(vs.BodyTemperature)},
			{"Blood Pressure", bpValue(vs.BloodPressureSystolic, vs.BloodPressureDiastolic)},
			{"BP Abnormal", yesNo(vs.BPAbnormal)},
			{"Repeat Blood Pressure", bpValue(vs.RepeatBloodPressureSystolic, vs.RepeatBloodPressureDiastolic)},
			{"Pulse Oximeter", orNA(vs.PulseOximeter)},
			{"Pulse", orNA(vs.Pulse)},
			{"Respirations", orNA(vs.Respirations)},
		},
	})

	pa := v.PhysicalAssessment
	doc.Sections = append(doc.Sections, Section{
		Title: "Physical Assessment",
		Fields: []Field{
			{"General Appearance", orNA(pa.GeneralAppearance)},
			{"Skin Assessment", orNA(pa.SkinAssessment)},
			{"Mobility Level", orNA(pa.MobilityLevel)},
			{"Speech Level", orNA(pa.SpeechLevel)},
			{"Alert & Oriented", orNA(pa.AlertOrientedLevel)},
		},
	})

	ht := v.HeadToToe
	doc.Sections = append(doc.Sections, Section{
		Title: "Head-to-Toe Assessment",
		Fields: []Field{
			{"Head & Neck", orNA(ht.HeadNeck)},
			{"Eyes & Vision", orNA(ht.EyesVision)},
			{"Ears & Hearing", orNA(ht.EarsHearing)},
			{"Nose & Nasal Cavity", orNA(ht.NoseNasalCavity)},
			{"Mouth, Teeth & Oral Cavity", orNA(ht.MouthTeethOralCavity)},
		},
	})

	gi := v.Gastrointestinal
	doc.Sections = append(doc.Sections, Section{
		Title: "Gastrointestinal",
		Fields: []Field{
			{"Last Bowel Movement", orNA(gi.LastBowelMovement)},
			{"Bowel Sounds", orNA(gi.BowelSounds)},
			{"Nutritional Diet", orNA(gi.NutritionalDiet)},
		},
	})

	doc.Sections = append(doc.Sections, Section{
		Title: "Genito-Urinary",
		Fields: []Field{
			{"Toileting Level", orNA(v.GenitoUrinary.ToiletingLevel)},
		},
	})

	doc.Sections = append(doc.Sections, Section{
		Title: "Respiratory",
		Fields: []Field{
			{"Lung Sounds", orNA(v.Respiratory.LungSounds)},
			{"Oxygen Type", orNA(v.Respiratory.OxygenType)},
		},
	})

	if v.Endocrine.IsDiabetic {
		doc.Sections = append(doc.Sections, Section{
			Title: "Endocrine",
			Fields: []Field{
				{"Diabetic", "Yes"},
				{"Diabetic Notes", orNA(v.Endocrine.DiabeticNotes)},
				{"Blood Sugar", orNA(v.Endocrine.BloodSugar)},
			},
		})
	}

	ch := v.ChangesSinceLast
	doc.Sections = append(doc.Sections, Section{
		Title: "Changes Since Last Visit",
		Fields: []Field{
			{"Medication Changes", orNA(ch.MedicationChanges)},
			{"Diagnosis Changes", orNA(ch.DiagnosisChanges)},
			{"ER / Urgent Care Visits", orNA(ch.ERUrgentCareVisits)},
			{"Upcoming Appointments", orNA(ch.UpcomingAppointments)},
		},
	})

	if strings.TrimSpace(v.NurseNotes) != "" {
		doc.Sections = append(doc.Sections, Section{
			Title: "Nurse Notes",
			Fields: []Field{
				{"Notes", v.NurseNotes},
			},
		})
	}

	if v.VisitType == visit.TypeDailyNote && strings.TrimSpace(v.DailyNoteContent) != "" {
		doc.Sections = append(doc.Sections, Section{
			Title: "Daily Note",
			Fields: []Field{
				{"Content", v.DailyNoteContent},
			},
		})
	}

	return doc
}

func bpValue(systolic, diastolic string) string {
	if strings.TrimSpace(systolic) == "" && strings.TrimSpace(diastolic) == "" {
		return "N/A"
	}
	return fmt.Sprintf("%s/%s", orNA(systolic), orNA(diastolic))
}

// ReportFilename derives the download name from the patient's display name
// and the visit date. Runs of whitespace in the name collapse to single
// underscores.
func ReportFilename(fullName, visitDate string) string {
	name := strings.Join(strings.Fields(fullName), "_")
	if name == "" {
		name = "patient"
	}
	date := visitDate
	if len(date) > 10 {
		date = date[:10]
	}
	if date == "" {
		date = "undated"
	}
	return fmt.Sprintf("%s_visit_%s.pdf", name, date)
}
