package shift

import "errors"

// Shift domain errors
var (
	ErrInvalidRange       = errors.New("invalid shift time range")
	ErrShiftNotFound      = errors.New("shift not found")
	ErrShiftOverlap       = errors.New("shift overlaps an existing shift for this employee")
	ErrContinuationLocked = errors.New("night continuation records cannot be modified directly")
)
