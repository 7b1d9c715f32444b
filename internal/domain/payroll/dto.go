package payroll

import (
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	StoreID   string `json:"-"`
	YearMonth string `json:"year_month"` // "YYYY-MM"
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidYearMonth(r.YearMonth); !ok {
		errs = append(errs, validator.ValidationError{Field: "year_month", Message: "must be a valid period (YYYY-MM)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SaveHistoryRequest struct {
	StoreID   string `json:"-"`
	YearMonth string `json:"year_month"`
}

func (r *SaveHistoryRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidYearMonth(r.YearMonth); !ok {
		errs = append(errs, validator.ValidationError{Field: "year_month", Message: "must be a valid period (YYYY-MM)"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRecordStatusRequest struct {
	PayrollID string `json:"-"`
	StoreID   string `json:"-"`
	Status    string `json:"status"` // "PENDING" or "PAID"
}

func (r *UpdateRecordStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, RecordStatusValues) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'PENDING' or 'PAID'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID            string          `json:"id"`
	StoreID       string          `json:"store_id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	YearMonth     string          `json:"year_month"`
	WorkDays      int             `json:"work_days"`
	WorkMinutes   int             `json:"work_minutes"`
	GrossPay      decimal.Decimal `json:"gross_pay"`
	Deductions    decimal.Decimal `json:"deductions"`
	NetPay        decimal.Decimal `json:"net_pay"`
	WageType      string          `json:"wage_type"`
	BaseWage      decimal.Decimal `json:"base_wage"`
	DeductionType string          `json:"deduction_type"`
	Status        string          `json:"status"`
	PaidAt        *string         `json:"paid_at,omitempty"`
}

type CalculationResponse struct {
	StoreID     string              `json:"store_id"`
	YearMonth   string              `json:"year_month"`
	RunStatus   string              `json:"run_status"`
	Items       []RecordResponse    `json:"items"`
	OpenPunches map[string][]string `json:"open_punches,omitempty"`
}

type RunStatusResponse struct {
	StoreID     string  `json:"store_id"`
	YearMonth   string  `json:"year_month"`
	Status      string  `json:"status"`
	Version     int     `json:"version"`
	FinalizedAt *string `json:"finalized_at,omitempty"`
}

// RunSummary is one row of the per-store history listing.
type RunSummary struct {
	YearMonth     string          `json:"year_month"`
	Status        string          `json:"status"`
	EmployeeCount int             `json:"employee_count"`
	TotalGrossPay decimal.Decimal `json:"total_gross_pay"`
	TotalNetPay   decimal.Decimal `json:"total_net_pay"`
	FinalizedAt   *string         `json:"finalized_at,omitempty"`
}
