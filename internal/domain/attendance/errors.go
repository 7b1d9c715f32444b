package attendance

import "errors"

// Attendance domain errors. The punch errors all map to the same
// INVALID_PUNCH_STATE response code; the message tells the user why.
var (
	ErrNoActiveShift         = errors.New("no active shift")
	ErrAlreadyClockedIn      = errors.New("already clocked in")
	ErrNotClockedIn          = errors.New("not clocked in yet")
	ErrShiftAlreadyCompleted = errors.New("shift already completed")
	ErrPunchOutOfOrder       = errors.New("punch time is before the latest recorded punch")

	ErrEventNotFound = errors.New("attendance event not found")
)

// IsInvalidPunchState reports whether err is a punch gating violation.
func IsInvalidPunchState(err error) bool {
	return errors.Is(err, ErrNoActiveShift) ||
		errors.Is(err, ErrAlreadyClockedIn) ||
		errors.Is(err, ErrNotClockedIn) ||
		errors.Is(err, ErrShiftAlreadyCompleted) ||
		errors.Is(err, ErrPunchOutOfOrder)
}
