package scheduling

import "errors"

var (
	// ErrNotFound is returned when no appointment matches the requested id.
	ErrNotFound = errors.New("appointment not found")
	// ErrSlotFull is returned when the half-hour slot already holds the
	// maximum number of bookings for the care track.
	ErrSlotFull = errors.New("slot full")
)
