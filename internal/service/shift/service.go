package shift

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type ShiftServiceImpl struct {
	txm          database.TxManager
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
}

func NewShiftService(
	txm database.TxManager,
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
) shift.ShiftService {
	return &ShiftServiceImpl{
		txm:          txm,
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.StoreID); err != nil {
		return nil, err
	}

	records, err := s.buildRecords(req)
	if err != nil {
		return nil, err
	}

	if err := s.checkOverlap(ctx, req.EmployeeID, req.StoreID, records, ""); err != nil {
		return nil, err
	}

	var created []shift.Shift
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.shiftRepo.CreateBatch(txCtx, records)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	return mapToResponses(created), nil
}

// BulkCreateShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) BulkCreateShifts(ctx context.Context, req shift.BulkCreateShiftsRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var all []shift.Shift
	for i := range req.Shifts {
		item := req.Shifts[i]
		item.StoreID = req.StoreID

		if _, err := s.employeeRepo.GetByID(ctx, item.EmployeeID, item.StoreID); err != nil {
			return nil, err
		}

		records, err := s.buildRecords(item)
		if err != nil {
			return nil, err
		}
		// Check against stored shifts and against the earlier items of
		// this same request.
		if err := s.checkOverlap(ctx, item.EmployeeID, item.StoreID, records, ""); err != nil {
			return nil, err
		}
		for _, prev := range all {
			for _, rec := range records {
				if prev.EmployeeID == rec.EmployeeID && prev.Date.Equal(rec.Date) &&
					shift.Overlaps(prev.StartMinutes, prev.EndMinutes, rec.StartMinutes, rec.EndMinutes) {
					return nil, shift.ErrShiftOverlap
				}
			}
		}
		all = append(all, records...)
	}

	var created []shift.Shift
	err := s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.shiftRepo.CreateBatch(txCtx, all)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shifts: %w", err)
	}

	return mapToResponses(created), nil
}

// UpdateShift implements shift.ShiftService. Editing the lead record of
// a night pair rebuilds the continuation instead of leaving it stale.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) ([]shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.shiftRepo.GetByID(ctx, req.ID, req.StoreID)
	if err != nil {
		return nil, err
	}
	if existing.IsNightContinuation {
		return nil, shift.ErrContinuationLocked
	}

	group, err := s.shiftRepo.GetByGroupID(ctx, existing.GroupID, req.StoreID)
	if err != nil {
		return nil, err
	}

	// Reconstruct the logical block from the stored row(s), then apply
	// the partial edit on top of it.
	date := existing.Date
	start := existing.StartMinutes
	end := existing.EndMinutes
	breakMinutes := existing.BreakMinutes
	isFixed := existing.IsFixed
	for _, g := range group {
		if g.IsNightContinuation {
			end = g.EndMinutes
		}
	}

	if req.Date != nil {
		date, _ = validator.IsValidDate(*req.Date)
	}
	if req.StartTime != nil {
		start, _ = validator.ParseTimeOfDay(*req.StartTime)
	}
	if req.EndTime != nil {
		end, _ = validator.ParseTimeOfDay(*req.EndTime)
	}
	if req.BreakMinutes != nil {
		breakMinutes = *req.BreakMinutes
	}
	if req.IsFixed != nil {
		isFixed = *req.IsFixed
	}

	if start == end || start >= shift.MinutesPerDay || end > shift.MinutesPerDay {
		return nil, shift.ErrInvalidRange
	}

	rebuilt := assembleRecords(existing.GroupID, existing.StoreID, existing.EmployeeID, date, start, end, breakMinutes, isFixed)
	// Keep the lead record's id stable so linked punches stay attached.
	rebuilt[0].ID = existing.ID

	if err := s.checkOverlap(ctx, existing.EmployeeID, existing.StoreID, rebuilt, existing.GroupID); err != nil {
		return nil, err
	}

	var updated []shift.Shift
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, txErr := s.shiftRepo.DeleteByGroupID(txCtx, existing.GroupID, req.StoreID); txErr != nil {
			return txErr
		}
		var txErr error
		updated, txErr = s.shiftRepo.CreateBatch(txCtx, rebuilt)
		return txErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}

	return mapToResponses(updated), nil
}

// DeleteShift implements shift.ShiftService. Deleting the lead record of
// a night pair cascades to the continuation.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string, storeID string) error {
	existing, err := s.shiftRepo.GetByID(ctx, id, storeID)
	if err != nil {
		return err
	}
	if existing.IsNightContinuation {
		return shift.ErrContinuationLocked
	}

	return s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, txErr := s.shiftRepo.DeleteByGroupID(txCtx, existing.GroupID, storeID)
		return txErr
	})
}

// DeleteRange implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteRange(ctx context.Context, req shift.DeleteRangeRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	from, _ := validator.IsValidDate(req.From)
	to, _ := validator.IsValidDate(req.To)

	var deleted int64
	err := s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		deleted, txErr = s.shiftRepo.DeleteByEmployeeRange(txCtx, req.EmployeeID, req.StoreID, from, to)
		return txErr
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete shifts in range: %w", err)
	}

	return deleted, nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, storeID string, from, to time.Time) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.ListByStoreRange(ctx, storeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	return mapToResponses(shifts), nil
}

// ========== HELPERS ==========

func (s *ShiftServiceImpl) buildRecords(req shift.CreateShiftRequest) ([]shift.Shift, error) {
	date, ok := validator.IsValidDate(req.Date)
	if !ok {
		return nil, shift.ErrInvalidRange
	}
	start, okStart := validator.ParseTimeOfDay(req.StartTime)
	end, okEnd := validator.ParseTimeOfDay(req.EndTime)
	if !okStart || !okEnd || start == end || start >= shift.MinutesPerDay {
		return nil, shift.ErrInvalidRange
	}

	return assembleRecords(uuid.NewString(), req.StoreID, req.EmployeeID, date, start, end, req.BreakMinutes, req.IsFixed), nil
}

func assembleRecords(groupID, storeID, employeeID string, date time.Time, start, end, breakMinutes int, isFixed bool) []shift.Shift {
	spans := shift.SplitSpan(date, start, end)

	records := make([]shift.Shift, 0, len(spans))
	for _, span := range spans {
		rec := shift.Shift{
			ID:                  uuid.NewString(),
			GroupID:             groupID,
			StoreID:             storeID,
			EmployeeID:          employeeID,
			Date:                span.Date,
			StartMinutes:        span.StartMinutes,
			EndMinutes:          span.EndMinutes,
			IsFixed:             isFixed,
			IsNightContinuation: span.Continuation,
		}
		if !span.Continuation {
			rec.BreakMinutes = breakMinutes
		}
		records = append(records, rec)
	}
	return records
}

// checkOverlap rejects records that intersect the employee's stored
// shifts on the same days. excludeGroupID skips the group being edited.
func (s *ShiftServiceImpl) checkOverlap(ctx context.Context, employeeID, storeID string, records []shift.Shift, excludeGroupID string) error {
	dates := make([]time.Time, 0, len(records))
	for _, rec := range records {
		dates = append(dates, rec.Date)
	}

	existing, err := s.shiftRepo.ListByEmployeeDates(ctx, employeeID, storeID, dates)
	if err != nil {
		return fmt.Errorf("failed to check shift overlap: %w", err)
	}

	for _, old := range existing {
		if excludeGroupID != "" && old.GroupID == excludeGroupID {
			continue
		}
		for _, rec := range records {
			if old.Date.Equal(rec.Date) && shift.Overlaps(old.StartMinutes, old.EndMinutes, rec.StartMinutes, rec.EndMinutes) {
				return shift.ErrShiftOverlap
			}
		}
	}
	return nil
}

func mapToResponse(s shift.Shift) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                  s.ID,
		GroupID:             s.GroupID,
		StoreID:             s.StoreID,
		EmployeeID:          s.EmployeeID,
		Date:                s.Date.Format("2006-01-02"),
		StartTime:           validator.FormatTimeOfDay(s.StartMinutes),
		EndTime:             validator.FormatTimeOfDay(s.EndMinutes),
		BreakMinutes:        s.BreakMinutes,
		IsFixed:             s.IsFixed,
		IsNightContinuation: s.IsNightContinuation,
	}
}

func mapToResponses(shifts []shift.Shift) []shift.ShiftResponse {
	result := make([]shift.ShiftResponse, 0, len(shifts))
	for _, s := range shifts {
		result = append(result, mapToResponse(s))
	}
	return result
}
