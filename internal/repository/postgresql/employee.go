package postgresql

import (
	"context"
	"fmt"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, storeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, name, role, is_active, created_at, updated_at
		FROM employees
		WHERE id = $1 AND store_id = $2`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&e.ID, &e.StoreID, &e.Name, &e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetActiveByStoreID(ctx context.Context, storeID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, store_id, name, role, is_active, created_at, updated_at
		FROM employees
		WHERE store_id = $1 AND is_active = true
		ORDER BY name`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		err := rows.Scan(&e.ID, &e.StoreID, &e.Name, &e.Role, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
