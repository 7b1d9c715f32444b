package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access methods for runs and history
// records. All methods include storeID to keep store data isolated.
type PayrollRepository interface {
	// Runs
	GetRun(ctx context.Context, storeID string, yearMonth string) (Run, error)

	// UpsertRunDraft moves a run to DRAFT, creating the row on first use.
	// expectedVersion is the version the caller read (0 for a new run);
	// returns ErrConcurrentModification when the row moved underneath it.
	UpsertRunDraft(ctx context.Context, storeID string, yearMonth string, expectedVersion int) (Run, error)

	// MarkRunFinalized transitions the run to FINALIZED with the same
	// optimistic version check. Re-finalizing a finalized run is allowed.
	MarkRunFinalized(ctx context.Context, storeID string, yearMonth string, expectedVersion int, finalizedAt time.Time) (Run, error)

	// MarkRunFailed records an unrecoverable calculation error.
	MarkRunFailed(ctx context.Context, storeID string, yearMonth string) (Run, error)

	// Records
	// UpsertRecords writes one record per employee for the period,
	// overwriting on the (store, employee, period) key. Run inside the
	// finalize transaction.
	UpsertRecords(ctx context.Context, records []Record) ([]Record, error)

	GetRecordByID(ctx context.Context, id string, storeID string) (Record, error)
	ListRecords(ctx context.Context, storeID string, yearMonth string) ([]Record, error)
	UpdateRecordStatus(ctx context.Context, id string, storeID string, status RecordStatus, paidAt *time.Time) (Record, error)

	// ListRunSummaries aggregates the saved history per period.
	ListRunSummaries(ctx context.Context, storeID string) ([]RunSummary, error)
}
