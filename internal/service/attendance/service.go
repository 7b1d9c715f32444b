package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/keymutex"
)

const (
	// clockInLeadMinutes is how early before shift start a clock-in opens.
	clockInLeadMinutes = 60
	// clockOutGraceMinutes is how long after shift end a clock-out stays open.
	clockOutGraceMinutes = 120

	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type AttendanceServiceImpl struct {
	txm            database.TxManager
	attendanceRepo attendance.AttendanceRepository
	shiftRepo      shift.ShiftRepository
	employeeRepo   employee.EmployeeRepository
	locks          *keymutex.KeyMutex

	// now is swappable so the gating windows can be tested.
	now func() time.Time
}

func NewAttendanceService(
	txm database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		txm:            txm,
		attendanceRepo: attendanceRepo,
		shiftRepo:      shiftRepo,
		employeeRepo:   employeeRepo,
		locks:          keymutex.New(),
		now:            time.Now,
	}
}

// RecordPunch implements attendance.AttendanceService. Punches for the
// same employee are serialized so two concurrent clock-ins cannot both
// pass the gate check.
func (s *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.RecordPunchRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.StoreID); err != nil {
		return attendance.EventResponse{}, err
	}

	s.locks.Lock(req.EmployeeID)
	defer s.locks.Unlock(req.EmployeeID)

	recordedAt := req.RecordedAtOrNow(s.now())

	latest, err := s.attendanceRepo.GetLatest(ctx, req.EmployeeID, req.StoreID)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to load latest punch: %w", err)
	}
	if latest != nil && recordedAt.Before(latest.RecordedAt) {
		return attendance.EventResponse{}, attendance.ErrPunchOutOfOrder
	}

	active, err := s.resolveActiveShift(ctx, req.EmployeeID, req.StoreID, req.ShiftID, recordedAt)
	if err != nil {
		return attendance.EventResponse{}, err
	}
	if active == nil {
		return attendance.EventResponse{}, attendance.ErrNoActiveShift
	}

	hasIn, hasOut, err := s.shiftPunches(ctx, active.lead.ID, req.StoreID)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	switch attendance.PunchType(req.Type) {
	case attendance.PunchTypeIn:
		if hasIn && hasOut {
			return attendance.EventResponse{}, attendance.ErrShiftAlreadyCompleted
		}
		if hasIn {
			return attendance.EventResponse{}, attendance.ErrAlreadyClockedIn
		}
	case attendance.PunchTypeOut:
		if hasIn && hasOut {
			return attendance.EventResponse{}, attendance.ErrShiftAlreadyCompleted
		}
		if !hasIn {
			return attendance.EventResponse{}, attendance.ErrNotClockedIn
		}
	}

	event := attendance.Event{
		ID:                uuid.NewString(),
		EmployeeID:        req.EmployeeID,
		StoreID:           req.StoreID,
		ShiftID:           &active.lead.ID,
		Type:              attendance.PunchType(req.Type),
		RecordedAt:        recordedAt,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		VerificationToken: req.VerificationToken,
	}

	var saved attendance.Event
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		saved, txErr = s.attendanceRepo.Append(txCtx, event)
		return txErr
	})
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record punch: %w", err)
	}

	return mapToEventResponse(saved), nil
}

// QueryShiftStatus implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) QueryShiftStatus(ctx context.Context, employeeID string, storeID string, shiftID *string) (attendance.ShiftStatusResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID, storeID); err != nil {
		return attendance.ShiftStatusResponse{}, err
	}

	now := s.now()

	active, err := s.resolveActiveShift(ctx, employeeID, storeID, shiftID, now)
	if err != nil {
		return attendance.ShiftStatusResponse{}, err
	}
	if active == nil {
		return mapToStatusResponse(attendance.ShiftStatus{
			State:   attendance.StateOutOfShift,
			Message: "no shift scheduled around this time",
		}), nil
	}

	hasIn, hasOut, err := s.shiftPunches(ctx, active.lead.ID, storeID)
	if err != nil {
		return attendance.ShiftStatusResponse{}, err
	}

	status := deriveStatus(active, hasIn, hasOut, now)
	return mapToStatusResponse(status), nil
}

// ListRecent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecent(ctx context.Context, employeeID string, storeID string, limit int) ([]attendance.EventResponse, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}

	events, err := s.attendanceRepo.ListRecent(ctx, employeeID, storeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent punches: %w", err)
	}

	return mapToEventResponses(events), nil
}

// ListDay implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListDay(ctx context.Context, employeeID string, storeID string, date time.Time) ([]attendance.EventResponse, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	events, err := s.attendanceRepo.ListByEmployeeRange(ctx, employeeID, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list punches for day: %w", err)
	}

	return mapToEventResponses(events), nil
}

// ========== GATING ==========

// activeShift is a lead shift record with its wall-clock boundaries. An
// overnight pair is resolved to a single window ending on the next day.
type activeShift struct {
	lead  shift.Shift
	start time.Time
	end   time.Time
}

func (a *activeShift) punchWindow() (time.Time, time.Time) {
	return a.start.Add(-clockInLeadMinutes * time.Minute),
		a.end.Add(clockOutGraceMinutes * time.Minute)
}

// resolveActiveShift finds the lead shift whose punch window contains t.
// When shiftID is given (QR/mobile flow) that shift is used directly;
// otherwise the schedule for yesterday and today is scanned so that an
// overnight shift started the previous evening is still found after
// midnight.
func (s *AttendanceServiceImpl) resolveActiveShift(ctx context.Context, employeeID, storeID string, shiftID *string, t time.Time) (*activeShift, error) {
	if shiftID != nil {
		lead, err := s.shiftRepo.GetByID(ctx, *shiftID, storeID)
		if err != nil {
			return nil, err
		}
		if lead.IsNightContinuation {
			group, err := s.shiftRepo.GetByGroupID(ctx, lead.GroupID, storeID)
			if err != nil {
				return nil, err
			}
			for _, g := range group {
				if !g.IsNightContinuation {
					lead = g
					break
				}
			}
		}
		return s.buildActiveShift(ctx, lead, storeID)
	}

	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	dates := []time.Time{day.AddDate(0, 0, -1), day}

	shifts, err := s.shiftRepo.ListByEmployeeDates(ctx, employeeID, storeID, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	continuationEnd := make(map[string]int) // group id -> continuation end minutes
	for _, rec := range shifts {
		if rec.IsNightContinuation {
			continuationEnd[rec.GroupID] = rec.EndMinutes
		}
	}

	var best *activeShift
	for _, rec := range shifts {
		if rec.IsNightContinuation {
			continue
		}
		candidate := assembleActiveShift(rec, continuationEnd)
		winStart, winEnd := candidate.punchWindow()
		if t.Before(winStart) || !t.Before(winEnd) {
			continue
		}
		if best == nil || candidate.start.Before(best.start) {
			best = candidate
		}
	}
	return best, nil
}

func (s *AttendanceServiceImpl) buildActiveShift(ctx context.Context, lead shift.Shift, storeID string) (*activeShift, error) {
	continuationEnd := make(map[string]int)
	if lead.EndMinutes == shift.MinutesPerDay {
		group, err := s.shiftRepo.GetByGroupID(ctx, lead.GroupID, storeID)
		if err != nil {
			return nil, err
		}
		for _, g := range group {
			if g.IsNightContinuation {
				continuationEnd[g.GroupID] = g.EndMinutes
			}
		}
	}
	return assembleActiveShift(lead, continuationEnd), nil
}

func assembleActiveShift(lead shift.Shift, continuationEnd map[string]int) *activeShift {
	start := lead.Date.Add(time.Duration(lead.StartMinutes) * time.Minute)
	end := lead.Date.Add(time.Duration(lead.EndMinutes) * time.Minute)
	if contEnd, ok := continuationEnd[lead.GroupID]; ok && lead.EndMinutes == shift.MinutesPerDay {
		end = lead.Date.AddDate(0, 0, 1).Add(time.Duration(contEnd) * time.Minute)
	}
	return &activeShift{lead: lead, start: start, end: end}
}

func (s *AttendanceServiceImpl) shiftPunches(ctx context.Context, shiftID, storeID string) (hasIn bool, hasOut bool, err error) {
	events, err := s.attendanceRepo.ListByShiftID(ctx, shiftID, storeID)
	if err != nil {
		return false, false, fmt.Errorf("failed to load shift punches: %w", err)
	}
	for _, e := range events {
		switch e.Type {
		case attendance.PunchTypeIn:
			hasIn = true
		case attendance.PunchTypeOut:
			hasOut = true
		}
	}
	return hasIn, hasOut, nil
}

func deriveStatus(active *activeShift, hasIn, hasOut bool, now time.Time) attendance.ShiftStatus {
	shiftID := active.lead.ID

	switch {
	case hasIn && hasOut:
		return attendance.ShiftStatus{
			State:          attendance.StateOutOfShift,
			CurrentShiftID: &shiftID,
			Message:        "shift already completed",
		}
	case hasIn:
		state := attendance.StateClockedIn
		message := "clocked in"
		if !now.Before(active.end) {
			state = attendance.StateReadyToClockOut
			message = "shift ended, ready to clock out"
		}
		return attendance.ShiftStatus{
			State:          state,
			CanClockOut:    true,
			CurrentShiftID: &shiftID,
			Message:        message,
		}
	default:
		return attendance.ShiftStatus{
			State:          attendance.StateReadyToClockIn,
			CanClockIn:     true,
			CurrentShiftID: &shiftID,
			Message:        "ready to clock in",
		}
	}
}

func mapToStatusResponse(s attendance.ShiftStatus) attendance.ShiftStatusResponse {
	return attendance.ShiftStatusResponse{
		State:          string(s.State),
		CanClockIn:     s.CanClockIn,
		CanClockOut:    s.CanClockOut,
		CurrentShiftID: s.CurrentShiftID,
		Message:        s.Message,
	}
}

func mapToEventResponse(e attendance.Event) attendance.EventResponse {
	return attendance.EventResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		StoreID:    e.StoreID,
		ShiftID:    e.ShiftID,
		Type:       string(e.Type),
		RecordedAt: e.RecordedAt.Format(time.RFC3339),
		Latitude:   e.Latitude,
		Longitude:  e.Longitude,
	}
}

func mapToEventResponses(events []attendance.Event) []attendance.EventResponse {
	result := make([]attendance.EventResponse, 0, len(events))
	for _, e := range events {
		result = append(result, mapToEventResponse(e))
	}
	return result
}
