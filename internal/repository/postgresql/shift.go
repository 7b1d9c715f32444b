package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	id, group_id, store_id, employee_id, date, start_minutes, end_minutes,
	break_minutes, is_fixed, is_night_continuation, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	err := row.Scan(
		&s.ID, &s.GroupID, &s.StoreID, &s.EmployeeID, &s.Date, &s.StartMinutes, &s.EndMinutes,
		&s.BreakMinutes, &s.IsFixed, &s.IsNightContinuation, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func collectShifts(rows pgx.Rows) ([]shift.Shift, error) {
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}

func (r *shiftRepository) CreateBatch(ctx context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			id, group_id, store_id, employee_id, date, start_minutes, end_minutes,
			break_minutes, is_fixed, is_night_continuation
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING` + shiftColumns

	created := make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		row := q.QueryRow(ctx, query,
			s.ID, s.GroupID, s.StoreID, s.EmployeeID, s.Date, s.StartMinutes, s.EndMinutes,
			s.BreakMinutes, s.IsFixed, s.IsNightContinuation,
		)
		c, err := scanShift(row)
		if err != nil {
			return nil, fmt.Errorf("failed to create shift: %w", err)
		}
		created = append(created, c)
	}

	return created, nil
}

func (r *shiftRepository) GetByID(ctx context.Context, id string, storeID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + shiftColumns + ` FROM shifts WHERE id = $1 AND store_id = $2`

	s, err := scanShift(q.QueryRow(ctx, query, id, storeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

func (r *shiftRepository) GetByGroupID(ctx context.Context, groupID string, storeID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts
		WHERE group_id = $1 AND store_id = $2
		ORDER BY is_night_continuation, date`

	rows, err := q.Query(ctx, query, groupID, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shift group: %w", err)
	}

	shifts, err := collectShifts(rows)
	if err != nil {
		return nil, err
	}
	if len(shifts) == 0 {
		return nil, shift.ErrShiftNotFound
	}

	return shifts, nil
}

func (r *shiftRepository) DeleteByGroupID(ctx context.Context, groupID string, storeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE group_id = $1 AND store_id = $2`, groupID, storeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shift group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, shift.ErrShiftNotFound
	}

	return tag.RowsAffected(), nil
}

func (r *shiftRepository) DeleteByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM shifts
		WHERE employee_id = $1 AND store_id = $2 AND date BETWEEN $3 AND $4`

	tag, err := q.Exec(ctx, query, employeeID, storeID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts in range: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *shiftRepository) ListByStoreRange(ctx context.Context, storeID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts
		WHERE store_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, start_minutes`

	rows, err := q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	return collectShifts(rows)
}

func (r *shiftRepository) ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1 AND store_id = $2 AND date BETWEEN $3 AND $4
		ORDER BY date, start_minutes`

	rows, err := q.Query(ctx, query, employeeID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee shifts: %w", err)
	}

	return collectShifts(rows)
}

func (r *shiftRepository) ListByEmployeeDates(ctx context.Context, employeeID string, storeID string, dates []time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1 AND store_id = $2 AND date = ANY($3)
		ORDER BY date, start_minutes`

	rows, err := q.Query(ctx, query, employeeID, storeID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts by dates: %w", err)
	}

	return collectShifts(rows)
}
