package unabletocontact

import "errors"

// Validation failures, returned one at a time in rule order.
var (
	ErrAttemptLocationRequired    = errors.New("select where you attempted to contact")
	ErrIndividualLocationRequired = errors.New("select where the individual is")
)

// Validate applies the two submission rules in order and returns the first
// failure, or nil. Nothing else is checked: a record with
// attempt_location "other" and no free-text, or individual_location
// "admitted" and no admission date, still passes.
func Validate(r *Record) error {
	if r.AttemptLocation == "" {
		return ErrAttemptLocationRequired
	}
	if r.IndividualLocation == "" {
		return ErrIndividualLocationRequired
	}
	return nil
}
