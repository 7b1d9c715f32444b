package wage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/database"
)

type WageServiceImpl struct {
	txm          database.TxManager
	wageRepo     wage.WageRepository
	employeeRepo employee.EmployeeRepository
}

func NewWageService(
	txm database.TxManager,
	wageRepo wage.WageRepository,
	employeeRepo employee.EmployeeRepository,
) wage.WageService {
	return &WageServiceImpl{
		txm:          txm,
		wageRepo:     wageRepo,
		employeeRepo: employeeRepo,
	}
}

// GetSetting implements wage.WageService.
func (s *WageServiceImpl) GetSetting(ctx context.Context, employeeID string, storeID string) (wage.SettingResponse, error) {
	setting, err := s.wageRepo.GetByEmployeeID(ctx, employeeID, storeID)
	if err != nil {
		return wage.SettingResponse{}, err
	}

	return mapToResponse(setting), nil
}

// GetAllSettings implements wage.WageService.
func (s *WageServiceImpl) GetAllSettings(ctx context.Context, storeID string) ([]wage.SettingResponse, error) {
	settings, err := s.wageRepo.GetAllByStoreID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wage settings: %w", err)
	}

	result := make([]wage.SettingResponse, 0, len(settings))
	for _, setting := range settings {
		result = append(result, mapToResponse(setting))
	}
	return result, nil
}

// UpsertSetting implements wage.WageService. An employee has at most one
// active setting; saving again replaces it in place.
func (s *WageServiceImpl) UpsertSetting(ctx context.Context, req wage.UpsertSettingRequest) (wage.SettingResponse, error) {
	if err := req.Validate(); err != nil {
		return wage.SettingResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, req.StoreID); err != nil {
		return wage.SettingResponse{}, err
	}

	setting := wage.Setting{
		ID:            uuid.NewString(),
		EmployeeID:    req.EmployeeID,
		StoreID:       req.StoreID,
		BaseWage:      req.BaseWage,
		WageType:      wage.WageType(req.WageType),
		DeductionType: wage.DeductionType(req.DeductionType),
		DeductionRate: req.DeductionRate,
	}
	if setting.DeductionType == wage.DeductionTypeNone {
		setting.DeductionRate = nil
	}

	var saved wage.Setting
	err := s.txm.WithinTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		saved, txErr = s.wageRepo.Upsert(txCtx, setting)
		return txErr
	})
	if err != nil {
		return wage.SettingResponse{}, fmt.Errorf("failed to save wage setting: %w", err)
	}

	return mapToResponse(saved), nil
}

func mapToResponse(s wage.Setting) wage.SettingResponse {
	return wage.SettingResponse{
		ID:            s.ID,
		EmployeeID:    s.EmployeeID,
		EmployeeName:  s.EmployeeName,
		StoreID:       s.StoreID,
		BaseWage:      s.BaseWage,
		WageType:      string(s.WageType),
		DeductionType: string(s.DeductionType),
		DeductionRate: s.EffectiveRate(),
	}
}
