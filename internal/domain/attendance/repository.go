package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for the punch ledger.
// The ledger is append-only; there is no update or delete.
type AttendanceRepository interface {
	// Append durably writes one accepted punch.
	Append(ctx context.Context, event Event) (Event, error)

	// GetLatest returns the most recent event for an employee at a store,
	// or nil when the ledger is empty for that pair.
	GetLatest(ctx context.Context, employeeID string, storeID string) (*Event, error)

	// ListByShiftID returns the punches linked to one scheduled shift.
	ListByShiftID(ctx context.Context, shiftID string, storeID string) ([]Event, error)

	// ListByEmployeeRange returns events with recorded_at in [from, to).
	ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]Event, error)

	// ListByStoreRange returns all store events with recorded_at in [from, to).
	ListByStoreRange(ctx context.Context, storeID string, from, to time.Time) ([]Event, error)

	// ListRecent returns the latest events for an employee, newest first.
	ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]Event, error)
}
