package visit

import (
	"strings"
	"testing"
	"time"
)

func TestNewDraft_Defaults(t *testing.T) {
	d := NewDraft(nil)
	if d.VisitDate != time.Now().Format("2006-01-02") {
		t.Errorf("visit_date = %q, want today", d.VisitDate)
	}
	if d.VisitType != TypeNurseVisit {
		t.Errorf("visit_type = %q, want %q", d.VisitType, TypeNurseVisit)
	}
	if d.VitalSigns.Weight != "" || d.VitalSigns.BPAbnormal {
		t.Error("expected empty vitals on a fresh draft")
	}
}

func TestNewDraft_SeedsLastVitals(t *testing.T) {
	last := &VitalSigns{
		Weight:                 "182",
		BloodPressureSystolic:  "150",
		BloodPressureDiastolic: "85",
	}
	d := NewDraft(last)
	if d.VitalSigns.Weight != "182" {
		t.Errorf("weight = %q, want seeded value", d.VitalSigns.Weight)
	}
	if !d.VitalSigns.BPAbnormal {
		t.Error("expected bp_abnormal recomputed from seeded values")
	}
	// The draft owns a copy, not the caller's struct.
	last.Weight = "mutated"
	if d.VitalSigns.Weight != "182" {
		t.Error("draft shares memory with the seed vitals")
	}
}

func TestDraft_SetField_CopyOnWrite(t *testing.T) {
	d1 := NewDraft(nil)
	d2, err := d1.SetField("nurse_notes", "patient resting comfortably")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if d2.NurseNotes != "patient resting comfortably" {
		t.Errorf("nurse_notes = %q", d2.NurseNotes)
	}
	if d1.NurseNotes != "" {
		t.Error("SetField mutated the original draft")
	}

	d3, err := d2.SetField("endocrine.is_diabetic", true)
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if !d3.Endocrine.IsDiabetic {
		t.Error("is_diabetic not set")
	}
	if d2.Endocrine.IsDiabetic {
		t.Error("SetField mutated the intermediate draft")
	}
}

func TestDraft_SetField_UnknownPath(t *testing.T) {
	d := NewDraft(nil)
	_, err := d.SetField("vital_signs.no_such_field", "x")
	if err == nil {
		t.Fatal("expected error for unknown path")
	}
	if !strings.Contains(err.Error(), "no_such_field") {
		t.Errorf("error should name the bad path, got %q", err)
	}
}

func TestDraft_SetField_WrongType(t *testing.T) {
	d := NewDraft(nil)
	if _, err := d.SetField("nurse_notes", 42); err == nil {
		t.Error("expected type error setting int into string field")
	}
	if _, err := d.SetField("endocrine.is_diabetic", "yes"); err == nil {
		t.Error("expected type error setting string into bool field")
	}
}

func TestDraft_SetField_RecomputesBPAbnormal(t *testing.T) {
	d := NewDraft(nil)

	d, err := d.SetField("vital_signs.blood_pressure_systolic", "150")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if !d.VitalSigns.BPAbnormal {
		t.Error("expected abnormal after systolic 150")
	}

	d, err = d.SetField("vital_signs.blood_pressure_systolic", "120")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if d.VitalSigns.BPAbnormal {
		t.Error("expected normal after correcting systolic to 120")
	}

	d, err = d.SetField("vital_signs.blood_pressure_diastolic", "95")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if !d.VitalSigns.BPAbnormal {
		t.Error("expected abnormal after diastolic 95")
	}

	// Other fields never touch the flag.
	d, err = d.SetField("vital_signs.pulse", "72")
	if err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if !d.VitalSigns.BPAbnormal {
		t.Error("setting pulse should not reset bp_abnormal")
	}
}

func TestDraft_SetField_EveryPathResolves(t *testing.T) {
	d := NewDraft(nil)
	for path := range fieldSetters {
		var value interface{} = "x"
		if path == "endocrine.is_diabetic" {
			value = true
		}
		if _, err := d.SetField(path, value); err != nil {
			t.Errorf("SetField(%q): %v", path, err)
		}
	}
}
