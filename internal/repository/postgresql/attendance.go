package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const eventColumns = `
	id, employee_id, store_id, shift_id, type, recorded_at,
	latitude, longitude, verification_token, created_at`

func scanEvent(row pgx.Row) (attendance.Event, error) {
	var e attendance.Event
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.StoreID, &e.ShiftID, &e.Type, &e.RecordedAt,
		&e.Latitude, &e.Longitude, &e.VerificationToken, &e.CreatedAt,
	)
	return e, err
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *attendanceRepository) Append(ctx context.Context, event attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			id, employee_id, store_id, shift_id, type, recorded_at,
			latitude, longitude, verification_token
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING` + eventColumns

	e, err := scanEvent(q.QueryRow(ctx, query,
		event.ID, event.EmployeeID, event.StoreID, event.ShiftID, event.Type, event.RecordedAt,
		event.Latitude, event.Longitude, event.VerificationToken,
	))
	if err != nil {
		return attendance.Event{}, fmt.Errorf("failed to append attendance event: %w", err)
	}

	return e, nil
}

func (r *attendanceRepository) GetLatest(ctx context.Context, employeeID string, storeID string) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND store_id = $2
		ORDER BY recorded_at DESC, created_at DESC
		LIMIT 1`

	e, err := scanEvent(q.QueryRow(ctx, query, employeeID, storeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attendance event: %w", err)
	}

	return &e, nil
}

func (r *attendanceRepository) ListByShiftID(ctx context.Context, shiftID string, storeID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + eventColumns + `
		FROM attendance_events
		WHERE shift_id = $1 AND store_id = $2
		ORDER BY recorded_at`

	rows, err := q.Query(ctx, query, shiftID, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events by shift: %w", err)
	}

	return collectEvents(rows)
}

func (r *attendanceRepository) ListByEmployeeRange(ctx context.Context, employeeID string, storeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND store_id = $2 AND recorded_at >= $3 AND recorded_at < $4
		ORDER BY recorded_at`

	rows, err := q.Query(ctx, query, employeeID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee events: %w", err)
	}

	return collectEvents(rows)
}

func (r *attendanceRepository) ListByStoreRange(ctx context.Context, storeID string, from, to time.Time) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + eventColumns + `
		FROM attendance_events
		WHERE store_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at`

	rows, err := q.Query(ctx, query, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list store events: %w", err)
	}

	return collectEvents(rows)
}

func (r *attendanceRepository) ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT` + eventColumns + `
		FROM attendance_events
		WHERE employee_id = $1 AND store_id = $2
		ORDER BY recorded_at DESC
		LIMIT $3`

	rows, err := q.Query(ctx, query, employeeID, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent events: %w", err)
	}

	return collectEvents(rows)
}
