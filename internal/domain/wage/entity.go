package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

type WageType string

const (
	WageTypeHourly  WageType = "HOURLY"
	WageTypeMonthly WageType = "MONTHLY"
)

var WageTypeValues = []string{
	string(WageTypeHourly),
	string(WageTypeMonthly),
}

type DeductionType string

const (
	DeductionTypeNone          DeductionType = "NONE"
	DeductionTypeFourInsurance DeductionType = "FOUR_INSURANCE"
	DeductionTypeTax33         DeductionType = "TAX_3_3"
)

var DeductionTypeValues = []string{
	string(DeductionTypeNone),
	string(DeductionTypeFourInsurance),
	string(DeductionTypeTax33),
}

// ReferenceRate is the rate implied by the deduction type when no
// explicit override is stored: 9% for the four major insurances, 3.3%
// for the freelancer withholding tax.
func (t DeductionType) ReferenceRate() decimal.Decimal {
	switch t {
	case DeductionTypeFourInsurance:
		return decimal.NewFromFloat(0.09)
	case DeductionTypeTax33:
		return decimal.NewFromFloat(0.033)
	default:
		return decimal.Zero
	}
}

// Setting is the single active wage configuration for one employee.
// Updated in place; no history of prior settings is kept.
type Setting struct {
	ID            string
	EmployeeID    string
	StoreID       string
	BaseWage      decimal.Decimal
	WageType      WageType
	DeductionType DeductionType
	DeductionRate *decimal.Decimal // nil means "use the reference rate"
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// EffectiveRate resolves the deduction rate actually applied: the stored
// override when present, the type's reference rate otherwise.
func (s Setting) EffectiveRate() decimal.Decimal {
	if s.DeductionType == DeductionTypeNone {
		return decimal.Zero
	}
	if s.DeductionRate != nil {
		return *s.DeductionRate
	}
	return s.DeductionType.ReferenceRate()
}
