package wage

import "context"

// WageService defines business logic for wage settings
type WageService interface {
	GetSetting(ctx context.Context, employeeID string, storeID string) (SettingResponse, error)
	GetAllSettings(ctx context.Context, storeID string) ([]SettingResponse, error)
	UpsertSetting(ctx context.Context, req UpsertSettingRequest) (SettingResponse, error)
}
