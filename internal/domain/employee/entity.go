package employee

import "time"

// Employee is the roster read model. The employee directory is owned by
// the surrounding application; payroll and scheduling only reference it.
type Employee struct {
	ID        string
	StoreID   string
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
