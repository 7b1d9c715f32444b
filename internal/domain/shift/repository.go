package shift

import (
	"context"
	"time"
)

// ShiftRepository defines data access methods for scheduled shifts.
// All methods include storeID to keep store data isolated.
type ShiftRepository interface {
	// CreateBatch inserts one or both halves of a shift in one statement.
	CreateBatch(ctx context.Context, shifts []Shift) ([]Shift, error)

	GetByID(ctx context.Context, id string, storeID string) (Shift, error)

	// GetByGroupID returns every row of a night pair, lead row first.
	GetByGroupID(ctx context.Context, groupID string, storeID string) ([]Shift, error)

	// DeleteByGroupID removes a shift and its continuation in one statement.
	DeleteByGroupID(ctx context.Context, groupID string, storeID string) (int64, error)

	// DeleteByEmployeeRange removes all of an employee's shifts whose date
	// falls in [from, to], continuations included.
	DeleteByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) (int64, error)

	ListByStoreRange(ctx context.Context, storeID string, from, to time.Time) ([]Shift, error)

	ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]Shift, error)

	// ListByEmployeeDates returns the employee's shifts on the given days,
	// used for overlap checks and punch-window resolution.
	ListByEmployeeDates(ctx context.Context, employeeID string, storeID string, dates []time.Time) ([]Shift, error)
}
