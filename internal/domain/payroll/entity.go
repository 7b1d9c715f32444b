package payroll

import (
	"fmt"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/shopspring/decimal"
)

// YearMonth is one payroll period ("YYYY-MM").
type YearMonth struct {
	Year  int
	Month time.Month
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// DateRange returns the period's [first day, first day of next month).
func (ym YearMonth) DateRange() (from, to time.Time) {
	from = time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// RunStatus enum
type RunStatus string

const (
	RunStatusNone      RunStatus = "none"
	RunStatusDraft     RunStatus = "draft"
	RunStatusFinalized RunStatus = "finalized"
	RunStatusFailed    RunStatus = "failed"
)

// runTransitions is the allowed-transition table of the run lifecycle.
// A finalized run is terminal except for re-finalizing (idempotent save).
var runTransitions = map[RunStatus][]RunStatus{
	RunStatusNone:      {RunStatusDraft, RunStatusFailed},
	RunStatusDraft:     {RunStatusDraft, RunStatusFinalized, RunStatusFailed},
	RunStatusFinalized: {RunStatusFinalized},
	RunStatusFailed:    {RunStatusDraft, RunStatusFailed},
}

func (s RunStatus) CanTransitionTo(target RunStatus) bool {
	for _, allowed := range runTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Run is the payroll computation unit for one store and one month.
// Version is the optimistic-concurrency counter: every state change must
// name the version it read, and loses when the row moved underneath it.
type Run struct {
	ID          string
	StoreID     string
	YearMonth   string // "YYYY-MM"
	Status      RunStatus
	Version     int
	FinalizedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecordStatus enum
type RecordStatus string

const (
	RecordStatusPending RecordStatus = "PENDING"
	RecordStatusPaid    RecordStatus = "PAID"
)

var RecordStatusValues = []string{
	string(RecordStatusPending),
	string(RecordStatusPaid),
}

// Record is one employee's computed pay for one period, with a snapshot
// of the wage settings used so later settings edits do not rewrite
// history. Status is the only field a user may change after creation.
type Record struct {
	ID            string
	StoreID       string
	EmployeeID    string
	YearMonth     string // "YYYY-MM"
	WorkDays      int
	WorkMinutes   int
	GrossPay      decimal.Decimal
	Deductions    decimal.Decimal
	NetPay        decimal.Decimal
	WageType      wage.WageType
	BaseWage      decimal.Decimal
	DeductionType wage.DeductionType
	Status        RecordStatus
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// CalculationResult is the in-memory preview a calculate call produces.
// Nothing is persisted until saveHistory commits it.
type CalculationResult struct {
	StoreID     string
	YearMonth   string
	RunVersion  int
	Items       []Record
	OpenPunches map[string][]string // employeeID -> unmatched IN log ids
}
