package forms

import "errors"

var (
	// ErrNotFound is returned when no record matches the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateMonth is returned when a monthly log already exists for
	// the patient, clinic and month.
	ErrDuplicateMonth = errors.New("monthly log already exists for this month")
)
