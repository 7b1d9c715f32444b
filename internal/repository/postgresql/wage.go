package postgresql

import (
	"context"
	"fmt"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wageRepository struct {
	db *database.DB
}

func NewWageRepository(db *database.DB) wage.WageRepository {
	return &wageRepository{db: db}
}

func (r *wageRepository) GetByEmployeeID(ctx context.Context, employeeID string, storeID string) (wage.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ws.id, ws.employee_id, ws.store_id, ws.base_wage, ws.wage_type,
			   ws.deduction_type, ws.deduction_rate, ws.created_at, ws.updated_at,
			   e.name as employee_name
		FROM wage_settings ws
		JOIN employees e ON ws.employee_id = e.id
		WHERE ws.employee_id = $1 AND ws.store_id = $2`

	var s wage.Setting
	err := q.QueryRow(ctx, query, employeeID, storeID).Scan(
		&s.ID, &s.EmployeeID, &s.StoreID, &s.BaseWage, &s.WageType,
		&s.DeductionType, &s.DeductionRate, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return wage.Setting{}, wage.ErrSettingNotFound
		}
		return wage.Setting{}, fmt.Errorf("failed to get wage setting: %w", err)
	}

	return s, nil
}

func (r *wageRepository) GetAllByStoreID(ctx context.Context, storeID string) ([]wage.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ws.id, ws.employee_id, ws.store_id, ws.base_wage, ws.wage_type,
			   ws.deduction_type, ws.deduction_rate, ws.created_at, ws.updated_at,
			   e.name as employee_name
		FROM wage_settings ws
		JOIN employees e ON ws.employee_id = e.id
		WHERE ws.store_id = $1
		ORDER BY e.name`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage settings: %w", err)
	}
	defer rows.Close()

	var settings []wage.Setting
	for rows.Next() {
		var s wage.Setting
		err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.StoreID, &s.BaseWage, &s.WageType,
			&s.DeductionType, &s.DeductionRate, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wage setting: %w", err)
		}
		settings = append(settings, s)
	}

	return settings, rows.Err()
}

func (r *wageRepository) Upsert(ctx context.Context, setting wage.Setting) (wage.Setting, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO wage_settings (id, employee_id, store_id, base_wage, wage_type, deduction_type, deduction_rate)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, store_id) DO UPDATE SET
			base_wage = EXCLUDED.base_wage,
			wage_type = EXCLUDED.wage_type,
			deduction_type = EXCLUDED.deduction_type,
			deduction_rate = EXCLUDED.deduction_rate,
			updated_at = NOW()
		RETURNING id, employee_id, store_id, base_wage, wage_type, deduction_type, deduction_rate, created_at, updated_at`

	var s wage.Setting
	err := q.QueryRow(ctx, query,
		setting.ID, setting.EmployeeID, setting.StoreID, setting.BaseWage,
		setting.WageType, setting.DeductionType, setting.DeductionRate,
	).Scan(
		&s.ID, &s.EmployeeID, &s.StoreID, &s.BaseWage, &s.WageType,
		&s.DeductionType, &s.DeductionRate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return wage.Setting{}, fmt.Errorf("failed to upsert wage setting: %w", err)
	}

	return s, nil
}
