package attendance

import "time"

type PunchType string

const (
	PunchTypeIn  PunchType = "IN"
	PunchTypeOut PunchType = "OUT"
)

var PunchTypeValues = []string{
	string(PunchTypeIn),
	string(PunchTypeOut),
}

// Event is one clock-in or clock-out record. The ledger is append-only:
// events are never mutated or deleted by normal flow.
type Event struct {
	ID                string
	EmployeeID        string
	StoreID           string
	ShiftID           *string // scheduled shift this punch belongs to
	Type              PunchType
	RecordedAt        time.Time
	Latitude          *float64
	Longitude         *float64
	VerificationToken *string
	CreatedAt         time.Time
}

// PunchState is the gate an employee is in for their current shift.
type PunchState string

const (
	StateOutOfShift      PunchState = "OUT_OF_SHIFT"
	StateReadyToClockIn  PunchState = "READY_TO_CLOCK_IN"
	StateClockedIn       PunchState = "CLOCKED_IN"
	StateReadyToClockOut PunchState = "READY_TO_CLOCK_OUT"
)

// ShiftStatus is the derived clock-in/out gating state for one
// (employee, store) at a point in time.
type ShiftStatus struct {
	State          PunchState
	CanClockIn     bool
	CanClockOut    bool
	CurrentShiftID *string
	Message        string
}
