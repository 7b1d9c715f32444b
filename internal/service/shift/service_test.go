package shift

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testStoreID    = "store-1"
	testEmployeeID = "emp-1"
)

// ========== FAKES ==========

type fakeTxManager struct{}

func (fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, storeID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.StoreID != storeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetActiveByStoreID(_ context.Context, storeID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.StoreID == storeID && emp.IsActive {
			result = append(result, emp)
		}
	}
	return result, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
}

func (f *fakeShiftRepo) CreateBatch(_ context.Context, shifts []shift.Shift) ([]shift.Shift, error) {
	for _, s := range shifts {
		f.shifts[s.ID] = s
	}
	return shifts, nil
}

func (f *fakeShiftRepo) GetByID(_ context.Context, id string, storeID string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok || s.StoreID != storeID {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) GetByGroupID(_ context.Context, groupID string, storeID string) ([]shift.Shift, error) {
	var result []shift.Shift
	for _, s := range f.shifts {
		if s.GroupID == groupID && s.StoreID == storeID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return !result[i].IsNightContinuation && result[j].IsNightContinuation
	})
	return result, nil
}

func (f *fakeShiftRepo) DeleteByGroupID(_ context.Context, groupID string, storeID string) (int64, error) {
	var deleted int64
	for id, s := range f.shifts {
		if s.GroupID == groupID && s.StoreID == storeID {
			delete(f.shifts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeShiftRepo) DeleteByEmployeeRange(_ context.Context, employeeID string, storeID string, from, to time.Time) (int64, error) {
	var deleted int64
	for id, s := range f.shifts {
		if s.EmployeeID == employeeID && s.StoreID == storeID && !s.Date.Before(from) && !s.Date.After(to) {
			delete(f.shifts, id)
			deleted++
		}
	}
	return deleted, nil
}

func (f *fakeShiftRepo) ListByStoreRange(_ context.Context, storeID string, from, to time.Time) ([]shift.Shift, error) {
	var result []shift.Shift
	for _, s := range f.shifts {
		if s.StoreID == storeID && !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeShiftRepo) ListByEmployeeRange(_ context.Context, employeeID string, storeID string, from, to time.Time) ([]shift.Shift, error) {
	var result []shift.Shift
	for _, s := range f.shifts {
		if s.EmployeeID == employeeID && s.StoreID == storeID && !s.Date.Before(from) && !s.Date.After(to) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeShiftRepo) ListByEmployeeDates(_ context.Context, employeeID string, storeID string, dates []time.Time) ([]shift.Shift, error) {
	var result []shift.Shift
	for _, s := range f.shifts {
		if s.EmployeeID != employeeID || s.StoreID != storeID {
			continue
		}
		for _, d := range dates {
			if s.Date.Equal(d) {
				result = append(result, s)
				break
			}
		}
	}
	return result, nil
}

func newTestService() (shift.ShiftService, *fakeShiftRepo) {
	repo := newFakeShiftRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		testEmployeeID: {ID: testEmployeeID, StoreID: testStoreID, Name: "Kim", IsActive: true},
	}}
	return NewShiftService(fakeTxManager{}, repo, employees), repo
}

// ========== TESTS ==========

func TestShiftService_CreateShift_SameDay(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		StoreID:      testStoreID,
		EmployeeID:   testEmployeeID,
		Date:         "2026-09-01",
		StartTime:    "09:00",
		EndTime:      "18:00",
		BreakMinutes: 60,
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "09:00", result[0].StartTime)
	assert.Equal(t, "18:00", result[0].EndTime)
	assert.Equal(t, 60, result[0].BreakMinutes)
	assert.False(t, result[0].IsNightContinuation)
	assert.Len(t, repo.shifts, 1)
}

func TestShiftService_CreateShift_OvernightSplitsIntoPair(t *testing.T) {
	svc, repo := newTestService()

	result, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		StoreID:      testStoreID,
		EmployeeID:   testEmployeeID,
		Date:         "2026-09-01",
		StartTime:    "22:00",
		EndTime:      "06:00",
		BreakMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, result, 2)

	lead, cont := result[0], result[1]
	assert.Equal(t, lead.GroupID, cont.GroupID)
	assert.False(t, lead.IsNightContinuation)
	assert.True(t, cont.IsNightContinuation)
	assert.Equal(t, "2026-09-01", lead.Date)
	assert.Equal(t, "2026-09-02", cont.Date)
	assert.Equal(t, "22:00", lead.StartTime)
	assert.Equal(t, "24:00", lead.EndTime)
	assert.Equal(t, "00:00", cont.StartTime)
	assert.Equal(t, "06:00", cont.EndTime)

	// Break is carried once, on the lead record.
	assert.Equal(t, 30, lead.BreakMinutes)
	assert.Equal(t, 0, cont.BreakMinutes)
	assert.Len(t, repo.shifts, 2)
}

func TestShiftService_CreateShift_RejectsOverlap(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "09:00", EndTime: "18:00",
	})
	require.NoError(t, err)

	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "17:00", EndTime: "20:00",
	})
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)

	// Back-to-back is not an overlap.
	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "18:00", EndTime: "20:00",
	})
	assert.NoError(t, err)
}

func TestShiftService_CreateShift_OvernightOverlapsNextDay(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "22:00", EndTime: "06:00",
	})
	require.NoError(t, err)

	// The continuation occupies 00:00-06:00 on the 2nd.
	_, err = svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-02", StartTime: "05:00", EndTime: "09:00",
	})
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)
}

func TestShiftService_CreateShift_UnknownEmployee(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateShift(context.Background(), shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: "ghost",
		Date: "2026-09-01", StartTime: "09:00", EndTime: "18:00",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestShiftService_UpdateShift_RejectsContinuationEdit(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "22:00", EndTime: "06:00",
	})
	require.NoError(t, err)

	contID := created[1].ID
	newEnd := "07:00"
	_, err = svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID: contID, StoreID: testStoreID, EndTime: &newEnd,
	})
	assert.ErrorIs(t, err, shift.ErrContinuationLocked)
}

func TestShiftService_UpdateShift_RebuildsContinuationWhenCrossingChanges(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "22:00", EndTime: "06:00",
	})
	require.NoError(t, err)
	leadID := created[0].ID

	// Pull the end back before midnight: the pair collapses to one record.
	newEnd := "23:30"
	updated, err := svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID: leadID, StoreID: testStoreID, EndTime: &newEnd,
	})
	require.NoError(t, err)
	require.Len(t, updated, 1)
	assert.Equal(t, leadID, updated[0].ID)
	assert.Equal(t, "23:30", updated[0].EndTime)
	assert.Len(t, repo.shifts, 1)

	// Push it past midnight again: a fresh continuation appears.
	newEnd = "05:00"
	updated, err = svc.UpdateShift(ctx, shift.UpdateShiftRequest{
		ID: leadID, StoreID: testStoreID, EndTime: &newEnd,
	})
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, leadID, updated[0].ID)
	assert.True(t, updated[1].IsNightContinuation)
	assert.Equal(t, "05:00", updated[1].EndTime)
	assert.Len(t, repo.shifts, 2)
}

func TestShiftService_DeleteShift_CascadesToContinuation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "22:00", EndTime: "06:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteShift(ctx, created[0].ID, testStoreID))
	assert.Empty(t, repo.shifts)
}

func TestShiftService_DeleteShift_RejectsContinuation(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	created, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date: "2026-09-01", StartTime: "22:00", EndTime: "06:00",
	})
	require.NoError(t, err)

	err = svc.DeleteShift(ctx, created[1].ID, testStoreID)
	assert.ErrorIs(t, err, shift.ErrContinuationLocked)
	assert.Len(t, repo.shifts, 2)
}

func TestShiftService_DeleteRange(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	for _, date := range []string{"2026-09-01", "2026-09-02", "2026-09-15"} {
		_, err := svc.CreateShift(ctx, shift.CreateShiftRequest{
			StoreID: testStoreID, EmployeeID: testEmployeeID,
			Date: date, StartTime: "09:00", EndTime: "18:00",
		})
		require.NoError(t, err)
	}

	deleted, err := svc.DeleteRange(ctx, shift.DeleteRangeRequest{
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		From: "2026-09-01", To: "2026-09-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Len(t, repo.shifts, 1)
}

func TestShiftService_BulkCreate_RejectsOverlapWithinRequest(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.BulkCreateShifts(context.Background(), shift.BulkCreateShiftsRequest{
		StoreID: testStoreID,
		Shifts: []shift.CreateShiftRequest{
			{EmployeeID: testEmployeeID, Date: "2026-09-01", StartTime: "09:00", EndTime: "18:00"},
			{EmployeeID: testEmployeeID, Date: "2026-09-01", StartTime: "17:00", EndTime: "20:00"},
		},
	})
	assert.ErrorIs(t, err, shift.ErrShiftOverlap)
}
