package wage

import "context"

// WageRepository defines data access methods for wage settings.
type WageRepository interface {
	GetByEmployeeID(ctx context.Context, employeeID string, storeID string) (Setting, error)
	GetAllByStoreID(ctx context.Context, storeID string) ([]Setting, error)
	Upsert(ctx context.Context, setting Setting) (Setting, error)
}
