package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/payroll"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== RUNS ==========

const runColumns = `id, store_id, year_month, status, version, finalized_at, created_at, updated_at`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var r payroll.Run
	err := row.Scan(
		&r.ID, &r.StoreID, &r.YearMonth, &r.Status, &r.Version,
		&r.FinalizedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func (r *payrollRepository) GetRun(ctx context.Context, storeID string, yearMonth string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE store_id = $1 AND year_month = $2`

	run, err := scanRun(q.QueryRow(ctx, query, storeID, yearMonth))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) UpsertRunDraft(ctx context.Context, storeID string, yearMonth string, expectedVersion int) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	// The unique constraint on (store_id, year_month) plus the version
	// predicate on conflict makes two racing drafts resolve to exactly
	// one winner.
	query := `
		INSERT INTO payroll_runs (store_id, year_month, status, version)
		VALUES ($1, $2, 'draft', 1)
		ON CONFLICT (store_id, year_month) DO UPDATE SET
			status = 'draft',
			version = payroll_runs.version + 1,
			updated_at = NOW()
		WHERE payroll_runs.version = $3 AND payroll_runs.status <> 'finalized'
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, storeID, yearMonth, expectedVersion))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrConcurrentModification
		}
		return payroll.Run{}, fmt.Errorf("failed to upsert draft run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) MarkRunFinalized(ctx context.Context, storeID string, yearMonth string, expectedVersion int, finalizedAt time.Time) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	// Re-finalizing a finalized run is allowed (idempotent save); the
	// original finalized_at is kept.
	query := `
		UPDATE payroll_runs SET
			status = 'finalized',
			version = version + 1,
			finalized_at = COALESCE(finalized_at, $4),
			updated_at = NOW()
		WHERE store_id = $1 AND year_month = $2 AND version = $3
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, storeID, yearMonth, expectedVersion, finalizedAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrConcurrentModification
		}
		return payroll.Run{}, fmt.Errorf("failed to finalize run: %w", err)
	}

	return run, nil
}

func (r *payrollRepository) MarkRunFailed(ctx context.Context, storeID string, yearMonth string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_runs (store_id, year_month, status, version)
		VALUES ($1, $2, 'failed', 1)
		ON CONFLICT (store_id, year_month) DO UPDATE SET
			status = 'failed',
			version = payroll_runs.version + 1,
			updated_at = NOW()
		WHERE payroll_runs.status <> 'finalized'
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query, storeID, yearMonth))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrAlreadyFinalized
		}
		return payroll.Run{}, fmt.Errorf("failed to mark run failed: %w", err)
	}

	return run, nil
}

// ========== RECORDS ==========

const recordColumns = `
	id, store_id, employee_id, year_month, work_days, work_minutes,
	gross_pay, deductions, net_pay, wage_type, base_wage, deduction_type,
	status, paid_at, created_at, updated_at`

func scanRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.StoreID, &rec.EmployeeID, &rec.YearMonth, &rec.WorkDays, &rec.WorkMinutes,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.WageType, &rec.BaseWage, &rec.DeductionType,
		&rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

func (r *payrollRepository) UpsertRecords(ctx context.Context, records []payroll.Record) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	// Re-saving overwrites the computed figures but keeps the payment
	// status toggle an owner may already have applied.
	query := `
		INSERT INTO payroll_records (
			id, store_id, employee_id, year_month, work_days, work_minutes,
			gross_pay, deductions, net_pay, wage_type, base_wage, deduction_type, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (store_id, employee_id, year_month) DO UPDATE SET
			work_days = EXCLUDED.work_days,
			work_minutes = EXCLUDED.work_minutes,
			gross_pay = EXCLUDED.gross_pay,
			deductions = EXCLUDED.deductions,
			net_pay = EXCLUDED.net_pay,
			wage_type = EXCLUDED.wage_type,
			base_wage = EXCLUDED.base_wage,
			deduction_type = EXCLUDED.deduction_type,
			updated_at = NOW()
		RETURNING ` + recordColumns

	saved := make([]payroll.Record, 0, len(records))
	for _, rec := range records {
		row := q.QueryRow(ctx, query,
			rec.ID, rec.StoreID, rec.EmployeeID, rec.YearMonth, rec.WorkDays, rec.WorkMinutes,
			rec.GrossPay, rec.Deductions, rec.NetPay, rec.WageType, rec.BaseWage, rec.DeductionType,
			rec.Status,
		)
		s, err := scanRecord(row)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert payroll record for employee %s: %w", rec.EmployeeID, err)
		}
		saved = append(saved, s)
	}

	return saved, nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string, storeID string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.store_id, pr.employee_id, pr.year_month, pr.work_days, pr.work_minutes,
			   pr.gross_pay, pr.deductions, pr.net_pay, pr.wage_type, pr.base_wage, pr.deduction_type,
			   pr.status, pr.paid_at, pr.created_at, pr.updated_at,
			   e.name as employee_name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1 AND pr.store_id = $2`

	var rec payroll.Record
	err := q.QueryRow(ctx, query, id, storeID).Scan(
		&rec.ID, &rec.StoreID, &rec.EmployeeID, &rec.YearMonth, &rec.WorkDays, &rec.WorkMinutes,
		&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.WageType, &rec.BaseWage, &rec.DeductionType,
		&rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, storeID string, yearMonth string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pr.id, pr.store_id, pr.employee_id, pr.year_month, pr.work_days, pr.work_minutes,
			   pr.gross_pay, pr.deductions, pr.net_pay, pr.wage_type, pr.base_wage, pr.deduction_type,
			   pr.status, pr.paid_at, pr.created_at, pr.updated_at,
			   e.name as employee_name
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.store_id = $1 AND pr.year_month = $2
		ORDER BY e.name`

	rows, err := q.Query(ctx, query, storeID, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		err := rows.Scan(
			&rec.ID, &rec.StoreID, &rec.EmployeeID, &rec.YearMonth, &rec.WorkDays, &rec.WorkMinutes,
			&rec.GrossPay, &rec.Deductions, &rec.NetPay, &rec.WageType, &rec.BaseWage, &rec.DeductionType,
			&rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

func (r *payrollRepository) UpdateRecordStatus(ctx context.Context, id string, storeID string, status payroll.RecordStatus, paidAt *time.Time) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records SET
			status = $3,
			paid_at = $4,
			updated_at = NOW()
		WHERE id = $1 AND store_id = $2
		RETURNING ` + recordColumns

	rec, err := scanRecord(q.QueryRow(ctx, query, id, storeID, status, paidAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to update record status: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRunSummaries(ctx context.Context, storeID string) ([]payroll.RunSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.year_month, r.status, r.finalized_at,
			   COUNT(pr.id) as employee_count,
			   COALESCE(SUM(pr.gross_pay), 0) as total_gross_pay,
			   COALESCE(SUM(pr.net_pay), 0) as total_net_pay
		FROM payroll_runs r
		LEFT JOIN payroll_records pr ON pr.store_id = r.store_id AND pr.year_month = r.year_month
		WHERE r.store_id = $1
		GROUP BY r.year_month, r.status, r.finalized_at
		ORDER BY r.year_month DESC`

	rows, err := q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list run summaries: %w", err)
	}
	defer rows.Close()

	var summaries []payroll.RunSummary
	for rows.Next() {
		var s payroll.RunSummary
		var finalizedAt *time.Time
		err := rows.Scan(&s.YearMonth, &s.Status, &finalizedAt, &s.EmployeeCount, &s.TotalGrossPay, &s.TotalNetPay)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run summary: %w", err)
		}
		if finalizedAt != nil {
			str := finalizedAt.Format(time.RFC3339)
			s.FinalizedAt = &str
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}
