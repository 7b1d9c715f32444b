package payroll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/payroll"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/keymutex"
	"github.com/heakbomb/storeworks-backend-go/internal/service/aggregate"
)

// PayrollServiceImpl owns the run lifecycle. All state transitions go
// through here: the calculator is read-only and the repository only
// executes the writes this service decides on.
type PayrollServiceImpl struct {
	txm         database.TxManager
	payrollRepo payroll.PayrollRepository
	calc        *calculator
	locks       *keymutex.KeyMutex

	// drafts holds the latest calculation per (store, period) pending a
	// saveHistory. In-process only; a restart requires recalculating.
	draftsMu sync.Mutex
	drafts   map[string]payroll.CalculationResult

	now func() time.Time
}

func NewPayrollService(
	txm database.TxManager,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	wageRepo wage.WageRepository,
	aggregator aggregate.Aggregator,
	upstreamTimeout time.Duration,
) *PayrollServiceImpl {
	return &PayrollServiceImpl{
		txm:         txm,
		payrollRepo: payrollRepo,
		calc: &calculator{
			employeeRepo: employeeRepo,
			wageRepo:     wageRepo,
			aggregator:   aggregator,
			timeout:      upstreamTimeout,
		},
		locks:  keymutex.New(),
		drafts: make(map[string]payroll.CalculationResult),
		now:    time.Now,
	}
}

var _ payroll.PayrollService = (*PayrollServiceImpl)(nil)

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculationResponse{}, err
	}
	ym, err := payroll.ParseYearMonth(req.YearMonth)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	if ym.Before(payroll.YearMonthOf(s.now())) {
		return payroll.CalculationResponse{}, payroll.ErrPastPeriodLocked
	}

	key := runKey(req.StoreID, ym)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	run, err := s.loadRun(ctx, req.StoreID, ym)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	if run.Status == payroll.RunStatusFinalized {
		return payroll.CalculationResponse{}, payroll.ErrAlreadyFinalized
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusDraft) {
		return payroll.CalculationResponse{}, payroll.ErrConcurrentModification
	}

	result, err := s.calc.calculate(ctx, req.StoreID, ym)
	if err != nil {
		if errors.Is(err, payroll.ErrUpstreamUnavailable) {
			// Unrecoverable for this attempt; record it, best effort.
			if _, failErr := s.payrollRepo.MarkRunFailed(ctx, req.StoreID, ym.String()); failErr != nil && !errors.Is(failErr, payroll.ErrAlreadyFinalized) {
				return payroll.CalculationResponse{}, fmt.Errorf("failed to mark run failed: %w", failErr)
			}
		}
		return payroll.CalculationResponse{}, err
	}

	var updated payroll.Run
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.payrollRepo.UpsertRunDraft(txCtx, req.StoreID, ym.String(), run.Version)
		return txErr
	})
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	result.RunVersion = updated.Version
	s.storeDraft(key, result)

	return mapToCalculationResponse(result, updated.Status), nil
}

// SaveHistory implements payroll.PayrollService. The whole commit is one
// transaction: records upserted and the run finalized together, or
// neither. Calling it again re-saves the same draft without duplicating
// records or moving finalized_at.
func (s *PayrollServiceImpl) SaveHistory(ctx context.Context, req payroll.SaveHistoryRequest) (payroll.CalculationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CalculationResponse{}, err
	}
	ym, err := payroll.ParseYearMonth(req.YearMonth)
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	key := runKey(req.StoreID, ym)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	draft, ok := s.loadDraft(key)
	if !ok {
		return payroll.CalculationResponse{}, payroll.ErrNoDraftCalculation
	}

	run, err := s.payrollRepo.GetRun(ctx, req.StoreID, ym.String())
	if err != nil {
		return payroll.CalculationResponse{}, err
	}
	if !run.Status.CanTransitionTo(payroll.RunStatusFinalized) {
		return payroll.CalculationResponse{}, payroll.ErrConcurrentModification
	}
	if draft.RunVersion != run.Version {
		return payroll.CalculationResponse{}, payroll.ErrConcurrentModification
	}

	var (
		saved      []payroll.Record
		finalized  payroll.Run
		finalizeAt = s.now()
	)
	err = s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		saved, txErr = s.payrollRepo.UpsertRecords(txCtx, draft.Items)
		if txErr != nil {
			return txErr
		}
		finalized, txErr = s.payrollRepo.MarkRunFinalized(txCtx, req.StoreID, ym.String(), run.Version, finalizeAt)
		return txErr
	})
	if err != nil {
		return payroll.CalculationResponse{}, err
	}

	// Keep the draft valid against the bumped version so an immediate
	// re-save is a no-op overwrite, not a version conflict.
	draft.RunVersion = finalized.Version
	s.storeDraft(key, draft)

	result := payroll.CalculationResult{
		StoreID:     req.StoreID,
		YearMonth:   ym.String(),
		RunVersion:  finalized.Version,
		Items:       saved,
		OpenPunches: draft.OpenPunches,
	}
	return mapToCalculationResponse(result, finalized.Status), nil
}

// GetRunStatus implements payroll.PayrollService. A period that was
// never calculated reports status "none".
func (s *PayrollServiceImpl) GetRunStatus(ctx context.Context, storeID string, yearMonth string) (payroll.RunStatusResponse, error) {
	ym, err := payroll.ParseYearMonth(yearMonth)
	if err != nil {
		return payroll.RunStatusResponse{}, err
	}

	run, err := s.loadRun(ctx, storeID, ym)
	if err != nil {
		return payroll.RunStatusResponse{}, err
	}

	resp := payroll.RunStatusResponse{
		StoreID:   storeID,
		YearMonth: ym.String(),
		Status:    string(run.Status),
		Version:   run.Version,
	}
	if run.FinalizedAt != nil {
		str := run.FinalizedAt.Format(time.RFC3339)
		resp.FinalizedAt = &str
	}
	return resp, nil
}

// ListHistorySummary implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListHistorySummary(ctx context.Context, storeID string) ([]payroll.RunSummary, error) {
	summaries, err := s.payrollRepo.ListRunSummaries(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll history: %w", err)
	}
	return summaries, nil
}

// ListHistoryDetail implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListHistoryDetail(ctx context.Context, storeID string, yearMonth string) ([]payroll.RecordResponse, error) {
	ym, err := payroll.ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}

	records, err := s.payrollRepo.ListRecords(ctx, storeID, ym.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}

	result := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, mapToRecordResponse(rec))
	}
	return result, nil
}

// UpdateRecordStatus implements payroll.PayrollService. Toggling a
// record PENDING/PAID is the only mutation allowed after finalization
// and never reopens the run.
func (s *PayrollServiceImpl) UpdateRecordStatus(ctx context.Context, req payroll.UpdateRecordStatusRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	if _, err := s.payrollRepo.GetRecordByID(ctx, req.PayrollID, req.StoreID); err != nil {
		return payroll.RecordResponse{}, err
	}

	status := payroll.RecordStatus(req.Status)
	var paidAt *time.Time
	if status == payroll.RecordStatusPaid {
		now := s.now()
		paidAt = &now
	}

	var updated payroll.Record
	err := s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		updated, txErr = s.payrollRepo.UpdateRecordStatus(txCtx, req.PayrollID, req.StoreID, status, paidAt)
		return txErr
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(updated), nil
}

// ========== HELPERS ==========

func runKey(storeID string, ym payroll.YearMonth) string {
	return storeID + "|" + ym.String()
}

// loadRun reads the run row, treating a missing row as the implicit
// NONE state with version 0.
func (s *PayrollServiceImpl) loadRun(ctx context.Context, storeID string, ym payroll.YearMonth) (payroll.Run, error) {
	run, err := s.payrollRepo.GetRun(ctx, storeID, ym.String())
	if err != nil {
		if errors.Is(err, payroll.ErrRunNotFound) {
			return payroll.Run{
				StoreID:   storeID,
				YearMonth: ym.String(),
				Status:    payroll.RunStatusNone,
			}, nil
		}
		return payroll.Run{}, err
	}
	return run, nil
}

func (s *PayrollServiceImpl) storeDraft(key string, result payroll.CalculationResult) {
	s.draftsMu.Lock()
	s.drafts[key] = result
	s.draftsMu.Unlock()
}

func (s *PayrollServiceImpl) loadDraft(key string) (payroll.CalculationResult, bool) {
	s.draftsMu.Lock()
	defer s.draftsMu.Unlock()
	result, ok := s.drafts[key]
	return result, ok
}

func mapToRecordResponse(rec payroll.Record) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:            rec.ID,
		StoreID:       rec.StoreID,
		EmployeeID:    rec.EmployeeID,
		EmployeeName:  rec.EmployeeName,
		YearMonth:     rec.YearMonth,
		WorkDays:      rec.WorkDays,
		WorkMinutes:   rec.WorkMinutes,
		GrossPay:      rec.GrossPay,
		Deductions:    rec.Deductions,
		NetPay:        rec.NetPay,
		WageType:      string(rec.WageType),
		BaseWage:      rec.BaseWage,
		DeductionType: string(rec.DeductionType),
		Status:        string(rec.Status),
	}
	if rec.PaidAt != nil {
		str := rec.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &str
	}
	return resp
}

func mapToCalculationResponse(result payroll.CalculationResult, status payroll.RunStatus) payroll.CalculationResponse {
	items := make([]payroll.RecordResponse, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, mapToRecordResponse(rec))
	}
	return payroll.CalculationResponse{
		StoreID:     result.StoreID,
		YearMonth:   result.YearMonth,
		RunStatus:   string(status),
		Items:       items,
		OpenPunches: result.OpenPunches,
	}
}
