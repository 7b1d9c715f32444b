package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for punch recording
type AttendanceService interface {
	// RecordPunch validates the punch against the gating state machine and
	// durably appends it before returning.
	RecordPunch(ctx context.Context, req RecordPunchRequest) (EventResponse, error)

	// QueryShiftStatus derives the clock-in/out gates for "now" (or for
	// the shift referenced by the QR flow).
	QueryShiftStatus(ctx context.Context, employeeID string, storeID string, shiftID *string) (ShiftStatusResponse, error)

	// ListRecent returns the employee's latest punches, newest first.
	ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]EventResponse, error)

	// ListDay returns the employee's punches on one calendar day.
	ListDay(ctx context.Context, employeeID string, storeID string, date time.Time) ([]EventResponse, error)
}
