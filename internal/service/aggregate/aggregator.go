package aggregate

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
)

// Totals is one employee's aggregated work for a date range.
type Totals struct {
	WorkDays    int
	WorkMinutes int
	// OpenPunchIDs are unmatched IN events with no OUT by range end. They
	// contribute zero minutes and are surfaced rather than dropped.
	OpenPunchIDs []string
}

// Aggregator turns the punch ledger (or, for employees without punches,
// the published schedule) into per-employee workDays / workMinutes.
type Aggregator interface {
	Aggregate(ctx context.Context, storeID string, employeeIDs []string, from, to time.Time) (map[string]Totals, error)
}

type AggregatorImpl struct {
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
}

func NewAggregator(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
) Aggregator {
	return &AggregatorImpl{
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
	}
}

// Aggregate implements Aggregator. Event pairing is the primary source;
// an employee with no events in range falls back to the schedule. The
// result is a pure function of the stored data: recomputing, or feeding
// the same events in any order, yields identical totals.
func (a *AggregatorImpl) Aggregate(ctx context.Context, storeID string, employeeIDs []string, from, to time.Time) (map[string]Totals, error) {
	result := make(map[string]Totals, len(employeeIDs))

	for _, employeeID := range employeeIDs {
		events, err := a.attendanceRepo.ListByEmployeeRange(ctx, employeeID, storeID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load punches for %s: %w", employeeID, err)
		}

		var totals Totals
		if len(events) > 0 {
			totals = pairEvents(events)
		} else {
			totals, err = a.scheduleFallback(ctx, employeeID, storeID, from, to)
			if err != nil {
				return nil, err
			}
		}
		result[employeeID] = totals
	}

	return result, nil
}

// pairEvents walks the employee's punches in time order and sums the
// IN→OUT pairs. A pair that crosses midnight is one logical shift: its
// full duration is summed and it counts as a single day, the day the IN
// happened. An IN followed by another IN, or left trailing at range end,
// is an open punch.
func pairEvents(events []attendance.Event) Totals {
	sorted := make([]attendance.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
		}
		// Ties break IN before OUT so a zero-length pair still matches up.
		return sorted[i].Type == attendance.PunchTypeIn && sorted[j].Type == attendance.PunchTypeOut
	})

	var totals Totals
	days := make(map[string]bool)
	var pendingIn *attendance.Event

	for i := range sorted {
		e := sorted[i]
		switch e.Type {
		case attendance.PunchTypeIn:
			if pendingIn != nil {
				totals.OpenPunchIDs = append(totals.OpenPunchIDs, pendingIn.ID)
			}
			pendingIn = &sorted[i]
		case attendance.PunchTypeOut:
			if pendingIn == nil {
				continue // stray OUT, nothing to close
			}
			minutes := int(e.RecordedAt.Sub(pendingIn.RecordedAt) / time.Minute)
			if minutes > 0 {
				totals.WorkMinutes += minutes
			}
			days[pendingIn.RecordedAt.Format("2006-01-02")] = true
			pendingIn = nil
		}
	}
	if pendingIn != nil {
		totals.OpenPunchIDs = append(totals.OpenPunchIDs, pendingIn.ID)
	}

	totals.WorkDays = len(days)
	return totals
}

// scheduleFallback sums the published schedule instead of punches:
// (end - start - break) per logical shift, clipped to zero. A night pair
// is summed once across both halves and counted as one day.
func (a *AggregatorImpl) scheduleFallback(ctx context.Context, employeeID, storeID string, from, to time.Time) (Totals, error) {
	shifts, err := a.shiftRepo.ListByEmployeeRange(ctx, employeeID, storeID, from, to.AddDate(0, 0, -1))
	if err != nil {
		return Totals{}, fmt.Errorf("failed to load schedule for %s: %w", employeeID, err)
	}

	type group struct {
		minutes int
		breaks  int
		day     string
		hasLead bool
	}
	groups := make(map[string]*group)
	for _, rec := range shifts {
		g, ok := groups[rec.GroupID]
		if !ok {
			g = &group{}
			groups[rec.GroupID] = g
		}
		g.minutes += rec.SpanMinutes()
		g.breaks += rec.BreakMinutes
		if !rec.IsNightContinuation || !g.hasLead {
			if !rec.IsNightContinuation {
				g.hasLead = true
				g.day = rec.Date.Format("2006-01-02")
			} else if g.day == "" {
				g.day = rec.Date.Format("2006-01-02")
			}
		}
	}

	var totals Totals
	days := make(map[string]bool)
	for _, g := range groups {
		worked := g.minutes - g.breaks
		if worked < 0 {
			worked = 0
		}
		totals.WorkMinutes += worked
		days[g.day] = true
	}
	totals.WorkDays = len(days)
	return totals, nil
}
