package intervention

import "errors"

// Validation failures, one per rule. The validator returns the first one
// that applies so a caller can surface one actionable message at a time.
var (
	ErrLocationRequired           = errors.New("select location")
	ErrIdentityNotVerified        = errors.New("verify patient identity")
	ErrPPENotDonned               = errors.New("confirm proper PPE was donned")
	ErrAllergicReactionUnverified = errors.New("verify no allergic reaction")
	ErrSiteNotCleaned             = errors.New("confirm the injection site was cleaned")
	Err8RightsNotAdhered          = errors.New("confirm adherence to the 8 rights of medication administration")
)

// Validate applies the submission rules in their fixed order and returns
// the first failure, or nil. Types other than injection skip the three
// injection-only acknowledgments entirely.
func Validate(iv *Intervention) error {
	if iv.Location == "" {
		return ErrLocationRequired
	}
	if !iv.VerifiedPatientIdentity {
		return ErrIdentityNotVerified
	}
	if !iv.DonnedProperPPE {
		return ErrPPENotDonned
	}
	if iv.InterventionType == TypeInjection {
		if !iv.VerifiedNoAllergicReaction {
			return ErrAllergicReactionUnverified
		}
		if !iv.CleanedInjectionSite {
			return ErrSiteNotCleaned
		}
		if !iv.Adhered8Rights {
			return Err8RightsNotAdhered
		}
	}
	return nil
}

// NormalizeDetails forces the detail sub-records into the persistence
// shape: the record matching the type is non-nil (an empty struct when the
// client sent nothing) and the other three are explicit nils, whatever the
// client populated.
func NormalizeDetails(iv *Intervention) {
	injection, test, treatment, procedure := iv.InjectionDetails, iv.TestDetails, iv.TreatmentDetails, iv.ProcedureDetails
	iv.InjectionDetails, iv.TestDetails, iv.TreatmentDetails, iv.ProcedureDetails = nil, nil, nil, nil

	switch iv.InterventionType {
	case TypeInjection:
		if injection == nil {
			injection = &InjectionDetails{}
		}
		iv.InjectionDetails = injection
	case TypeTest:
		if test == nil {
			test = &TestDetails{}
		}
		iv.TestDetails = test
	case TypeTreatment:
		if treatment == nil {
			treatment = &TreatmentDetails{}
		}
		iv.TreatmentDetails = treatment
	case TypeProcedure:
		if procedure == nil {
			procedure = &ProcedureDetails{}
		}
		iv.ProcedureDetails = procedure
	}
}
