package wage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type fakeTxManager struct{}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, storeID string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.StoreID != storeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetActiveByStoreID(_ context.Context, storeID string) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.StoreID == storeID && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeWageRepo struct {
	settings map[string]wage.Setting // keyed by employeeID
}

func newFakeWageRepo() *fakeWageRepo {
	return &fakeWageRepo{settings: make(map[string]wage.Setting)}
}

func (f *fakeWageRepo) GetByEmployeeID(_ context.Context, employeeID string, storeID string) (wage.Setting, error) {
	s, ok := f.settings[employeeID]
	if !ok || s.StoreID != storeID {
		return wage.Setting{}, wage.ErrSettingNotFound
	}
	return s, nil
}

func (f *fakeWageRepo) GetAllByStoreID(_ context.Context, storeID string) ([]wage.Setting, error) {
	var out []wage.Setting
	for _, s := range f.settings {
		if s.StoreID == storeID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeWageRepo) Upsert(_ context.Context, setting wage.Setting) (wage.Setting, error) {
	if existing, ok := f.settings[setting.EmployeeID]; ok {
		setting.ID = existing.ID
		setting.CreatedAt = existing.CreatedAt
	}
	f.settings[setting.EmployeeID] = setting
	return setting, nil
}

func newTestService() (wage.WageService, *fakeWageRepo) {
	wageRepo := newFakeWageRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", StoreID: "store-1", Name: "Kim", IsActive: true},
	}}
	return NewWageService(&fakeTxManager{}, wageRepo, employeeRepo), wageRepo
}

func TestUpsertSetting_CreatesAndUpdatesInPlace(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.UpsertSetting(ctx, wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-1",
		BaseWage:      decimal.NewFromInt(10000),
		WageType:      "HOURLY",
		DeductionType: "TAX_3_3",
	})
	require.NoError(t, err)
	assert.True(t, created.DeductionRate.Equal(decimal.NewFromFloat(0.033)))

	updated, err := svc.UpsertSetting(ctx, wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-1",
		BaseWage:      decimal.NewFromInt(12000),
		WageType:      "HOURLY",
		DeductionType: "FOUR_INSURANCE",
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.BaseWage.Equal(decimal.NewFromInt(12000)))
	assert.Len(t, repo.settings, 1)
}

func TestUpsertSetting_ClearsRateForNone(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.UpsertSetting(context.Background(), wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-1",
		BaseWage:      decimal.NewFromInt(2500000),
		WageType:      "MONTHLY",
		DeductionType: "NONE",
	})
	require.NoError(t, err)

	assert.True(t, resp.DeductionRate.IsZero())
	assert.Nil(t, repo.settings["emp-1"].DeductionRate)
}

func TestUpsertSetting_KeepsExplicitOverride(t *testing.T) {
	svc, _ := newTestService()

	override := decimal.NewFromFloat(0.05)
	resp, err := svc.UpsertSetting(context.Background(), wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-1",
		BaseWage:      decimal.NewFromInt(10000),
		WageType:      "HOURLY",
		DeductionType: "FOUR_INSURANCE",
		DeductionRate: &override,
	})
	require.NoError(t, err)

	assert.True(t, resp.DeductionRate.Equal(override))
}

func TestUpsertSetting_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpsertSetting(context.Background(), wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-missing",
		BaseWage:      decimal.NewFromInt(10000),
		WageType:      "HOURLY",
		DeductionType: "NONE",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestUpsertSetting_InvalidRequest(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.UpsertSetting(context.Background(), wage.UpsertSettingRequest{
		StoreID:       "store-1",
		EmployeeID:    "emp-1",
		BaseWage:      decimal.NewFromInt(-1),
		WageType:      "WEEKLY",
		DeductionType: "NONE",
	})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestGetSetting_NotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.GetSetting(context.Background(), "emp-1", "store-1")
	assert.ErrorIs(t, err, wage.ErrSettingNotFound)
}
