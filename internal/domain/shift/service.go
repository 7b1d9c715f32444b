package shift

import (
	"context"
	"time"
)

// ShiftService defines business logic for schedule management
type ShiftService interface {
	// CreateShift creates one shift, splitting it into a linked pair when
	// it crosses midnight.
	CreateShift(ctx context.Context, req CreateShiftRequest) ([]ShiftResponse, error)

	// BulkCreateShifts creates several shifts in one call (weekly planning).
	BulkCreateShifts(ctx context.Context, req BulkCreateShiftsRequest) ([]ShiftResponse, error)

	// UpdateShift edits a shift; if the edit changes whether the shift
	// crosses midnight the continuation link is rebuilt, not left stale.
	UpdateShift(ctx context.Context, req UpdateShiftRequest) ([]ShiftResponse, error)

	// DeleteShift removes a shift and cascades to its continuation.
	DeleteShift(ctx context.Context, id string, storeID string) error

	// DeleteRange clears all of an employee's shifts in a date range.
	DeleteRange(ctx context.Context, req DeleteRangeRequest) (int64, error)

	// ListShifts returns all records, continuations included, in range.
	ListShifts(ctx context.Context, storeID string, from, to time.Time) ([]ShiftResponse, error)
}
