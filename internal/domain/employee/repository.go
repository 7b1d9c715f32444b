package employee

import "context"

// EmployeeRepository reads the roster maintained by the directory service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, storeID string) (Employee, error)
	GetActiveByStoreID(ctx context.Context, storeID string) ([]Employee, error)
}
