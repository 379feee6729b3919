package visit

import (
	"strconv"
	"strings"
)

// Blood-pressure abnormality thresholds (mmHg).
const (
	systolicHigh  = 140
	diastolicHigh = 90
	systolicLow   = 90
	diastolicLow  = 60
)

// ParseBPValue parses a blood-pressure reading. The accepted form is an
// optionally space-padded decimal integer; anything else (including
// trailing garbage like "120abc") is not a number. Unparseable readings
// deliberately count as not-abnormal so that partial input never blocks
// data entry.
func ParseBPValue(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// BPAbnormal reports whether the blood-pressure pair is out of range:
// systolic >= 140, diastolic >= 90, systolic < 90, or diastolic < 60.
func BPAbnormal(systolic, diastolic string) bool {
	sys, sysOK := ParseBPValue(systolic)
	dia, diaOK := ParseBPValue(diastolic)

	if sysOK && (sys >= systolicHigh || sys < systolicLow) {
		return true
	}
	if diaOK && (dia >= diastolicHigh || dia < diastolicLow) {
		return true
	}
	return false
}

// Evaluate recomputes the derived BPAbnormal flag from the current
// blood-pressure pair. Called after every mutation of either source field
// so the flag can never go stale.
func (v *VitalSigns) Evaluate() {
	v.BPAbnormal = BPAbnormal(v.BloodPressureSystolic, v.BloodPressureDiastolic)
}
