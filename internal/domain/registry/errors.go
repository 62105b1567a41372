package registry

import "errors"

var (
	// ErrNotFound is returned when no patient matches the requested id.
	ErrNotFound = errors.New("patient not found")
	// ErrCareTypeUnavailable is returned when a patient is assigned a care
	// track the clinic does not run.
	ErrCareTypeUnavailable = errors.New("care type not available at this clinic")
)
