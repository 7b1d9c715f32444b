package payroll

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/payroll"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/service/aggregate"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const calculatorConcurrency = 8

var minutesPerHour = decimal.NewFromInt(60)

// calculator computes the in-memory payroll preview for one store and
// period. It persists nothing; the run manager owns all writes.
type calculator struct {
	employeeRepo employee.EmployeeRepository
	wageRepo     wage.WageRepository
	aggregator   aggregate.Aggregator
	timeout      time.Duration
}

// calculate resolves the roster, fans out per employee to the aggregator
// and wage settings, and computes gross / deductions / net. All-or-
// nothing: any upstream failure yields no partial result. Employees
// without a wage setting are skipped, not failed.
func (c *calculator) calculate(ctx context.Context, storeID string, ym payroll.YearMonth) (payroll.CalculationResult, error) {
	roster, err := c.employeeRepo.GetActiveByStoreID(ctx, storeID)
	if err != nil {
		return payroll.CalculationResult{}, fmt.Errorf("%w: %v", payroll.ErrUpstreamUnavailable, err)
	}
	if len(roster) == 0 {
		return payroll.CalculationResult{}, payroll.ErrNoEmployees
	}

	from, to := ym.DateRange()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var mu sync.Mutex
	items := make([]payroll.Record, 0, len(roster))
	openPunches := make(map[string][]string)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(calculatorConcurrency)

	for _, emp := range roster {
		emp := emp
		g.Go(func() error {
			setting, err := c.wageRepo.GetByEmployeeID(gCtx, emp.ID, storeID)
			if err != nil {
				if errors.Is(err, wage.ErrSettingNotFound) {
					return nil // no wage configured, nothing to pay
				}
				return err
			}

			totals, err := c.aggregator.Aggregate(gCtx, storeID, []string{emp.ID}, from, to)
			if err != nil {
				return err
			}
			t := totals[emp.ID]

			gross, deductions, net := computePay(setting, t.WorkMinutes)

			name := emp.Name
			rec := payroll.Record{
				ID:            uuid.NewString(),
				StoreID:       storeID,
				EmployeeID:    emp.ID,
				YearMonth:     ym.String(),
				WorkDays:      t.WorkDays,
				WorkMinutes:   t.WorkMinutes,
				GrossPay:      gross,
				Deductions:    deductions,
				NetPay:        net,
				WageType:      setting.WageType,
				BaseWage:      setting.BaseWage,
				DeductionType: setting.DeductionType,
				Status:        payroll.RecordStatusPending,
				EmployeeName:  &name,
			}

			mu.Lock()
			items = append(items, rec)
			if len(t.OpenPunchIDs) > 0 {
				openPunches[emp.ID] = t.OpenPunchIDs
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return payroll.CalculationResult{}, fmt.Errorf("%w: %v", payroll.ErrUpstreamUnavailable, err)
	}

	// Deterministic output order regardless of goroutine completion.
	sort.Slice(items, func(i, j int) bool {
		return items[i].EmployeeID < items[j].EmployeeID
	})

	return payroll.CalculationResult{
		StoreID:     storeID,
		YearMonth:   ym.String(),
		Items:       items,
		OpenPunches: openPunches,
	}, nil
}

// computePay derives the pay figures from a wage setting and worked
// minutes. Hourly pay is base x minutes/60 rounded half-up to whole
// minor units; monthly pay is the full base regardless of attendance.
func computePay(setting wage.Setting, workMinutes int) (gross, deductions, net decimal.Decimal) {
	switch setting.WageType {
	case wage.WageTypeHourly:
		gross = setting.BaseWage.
			Mul(decimal.NewFromInt(int64(workMinutes))).
			Div(minutesPerHour).
			Round(0)
	default:
		gross = setting.BaseWage
	}

	deductions = gross.Mul(setting.EffectiveRate()).Round(0)
	net = gross.Sub(deductions)
	return gross, deductions, net
}
