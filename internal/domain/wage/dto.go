package wage

import (
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type UpsertSettingRequest struct {
	StoreID       string           `json:"-"`
	EmployeeID    string           `json:"-"`
	BaseWage      decimal.Decimal  `json:"base_wage"`
	WageType      string           `json:"wage_type"`
	DeductionType string           `json:"deduction_type"`
	DeductionRate *decimal.Decimal `json:"deduction_rate,omitempty"` // explicit override
}

func (r *UpsertSettingRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.BaseWage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_wage", Message: "must be non-negative"})
	}
	if !validator.IsInSlice(r.WageType, WageTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "wage_type", Message: "must be 'HOURLY' or 'MONTHLY'"})
	}
	if !validator.IsInSlice(r.DeductionType, DeductionTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "deduction_type", Message: "must be 'NONE', 'FOUR_INSURANCE' or 'TAX_3_3'"})
	}
	if r.DeductionRate != nil {
		if r.DeductionType == string(DeductionTypeNone) {
			errs = append(errs, validator.ValidationError{Field: "deduction_rate", Message: "must be unset when deduction_type is NONE"})
		} else if r.DeductionRate.IsNegative() || r.DeductionRate.GreaterThan(decimal.NewFromInt(1)) {
			errs = append(errs, validator.ValidationError{Field: "deduction_rate", Message: "must be between 0 and 1"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SettingResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	StoreID       string          `json:"store_id"`
	BaseWage      decimal.Decimal `json:"base_wage"`
	WageType      string          `json:"wage_type"`
	DeductionType string          `json:"deduction_type"`
	DeductionRate decimal.Decimal `json:"deduction_rate"`
}
