package payroll

import "context"

// PayrollService owns the run lifecycle: only this service transitions
// run state and writes history records.
type PayrollService interface {
	// Calculate computes the period preview and moves the run to DRAFT.
	// Past periods and finalized runs are rejected.
	Calculate(ctx context.Context, req CalculateRequest) (CalculationResponse, error)

	// SaveHistory commits the most recent calculation as history records
	// (idempotent upsert) and finalizes the run.
	SaveHistory(ctx context.Context, req SaveHistoryRequest) (CalculationResponse, error)

	// GetRunStatus returns the run-state snapshot for a period.
	GetRunStatus(ctx context.Context, storeID string, yearMonth string) (RunStatusResponse, error)

	// ListHistorySummary lists saved periods for a store with totals.
	ListHistorySummary(ctx context.Context, storeID string) ([]RunSummary, error)

	// ListHistoryDetail lists the saved records of one period.
	ListHistoryDetail(ctx context.Context, storeID string, yearMonth string) ([]RecordResponse, error)

	// UpdateRecordStatus toggles one record between PENDING and PAID.
	// This is the only mutation allowed after finalization and does not
	// reopen the run.
	UpdateRecordStatus(ctx context.Context, req UpdateRecordStatusRequest) (RecordResponse, error)
}
