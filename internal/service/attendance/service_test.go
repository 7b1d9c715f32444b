package attendance

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
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

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByID(_ context.Context, id string, storeID string) (employee.Employee, error) {
	if id != testEmployeeID || storeID != testStoreID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, StoreID: storeID, Name: "Kim", IsActive: true}, nil
}

func (fakeEmployeeRepo) GetActiveByStoreID(_ context.Context, storeID string) ([]employee.Employee, error) {
	return []employee.Employee{{ID: testEmployeeID, StoreID: storeID, IsActive: true}}, nil
}

type fakeAttendanceRepo struct {
	events []attendance.Event
}

func (f *fakeAttendanceRepo) Append(_ context.Context, event attendance.Event) (attendance.Event, error) {
	f.events = append(f.events, event)
	return event, nil
}

func (f *fakeAttendanceRepo) GetLatest(_ context.Context, employeeID string, storeID string) (*attendance.Event, error) {
	var latest *attendance.Event
	for i := range f.events {
		e := f.events[i]
		if e.EmployeeID != employeeID || e.StoreID != storeID {
			continue
		}
		if latest == nil || e.RecordedAt.After(latest.RecordedAt) {
			latest = &f.events[i]
		}
	}
	return latest, nil
}

func (f *fakeAttendanceRepo) ListByShiftID(_ context.Context, shiftID string, storeID string) ([]attendance.Event, error) {
	var result []attendance.Event
	for _, e := range f.events {
		if e.StoreID == storeID && e.ShiftID != nil && *e.ShiftID == shiftID {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeRange(_ context.Context, employeeID string, storeID string, from, to time.Time) ([]attendance.Event, error) {
	var result []attendance.Event
	for _, e := range f.events {
		if e.EmployeeID == employeeID && e.StoreID == storeID && !e.RecordedAt.Before(from) && e.RecordedAt.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListByStoreRange(_ context.Context, storeID string, from, to time.Time) ([]attendance.Event, error) {
	var result []attendance.Event
	for _, e := range f.events {
		if e.StoreID == storeID && !e.RecordedAt.Before(from) && e.RecordedAt.Before(to) {
			result = append(result, e)
		}
	}
	return result, nil
}

func (f *fakeAttendanceRepo) ListRecent(_ context.Context, employeeID string, storeID string, limit int) ([]attendance.Event, error) {
	var result []attendance.Event
	for _, e := range f.events {
		if e.EmployeeID == employeeID && e.StoreID == storeID {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RecordedAt.After(result[j].RecordedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

type fakeShiftRepo struct {
	shifts map[string]shift.Shift
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
	return result, nil
}

func (f *fakeShiftRepo) DeleteByGroupID(_ context.Context, groupID string, storeID string) (int64, error) {
	return 0, nil
}

func (f *fakeShiftRepo) DeleteByEmployeeRange(_ context.Context, employeeID string, storeID string, from, to time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeShiftRepo) ListByStoreRange(_ context.Context, storeID string, from, to time.Time) ([]shift.Shift, error) {
	return nil, nil
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

// ========== SETUP ==========

type fixture struct {
	svc       *AttendanceServiceImpl
	ledger    *fakeAttendanceRepo
	shifts    *fakeShiftRepo
	dayShift  shift.Shift
	nightLead shift.Shift
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	shifts := &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
	ledger := &fakeAttendanceRepo{}

	// Day shift 09:00-18:00 on Sep 1.
	day := shift.Shift{
		ID: uuid.NewString(), GroupID: uuid.NewString(),
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartMinutes: 9 * 60, EndMinutes: 18 * 60,
	}
	shifts.shifts[day.ID] = day

	// Night shift 22:00-06:00 on Sep 3, stored as a linked pair.
	group := uuid.NewString()
	lead := shift.Shift{
		ID: uuid.NewString(), GroupID: group,
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date:         time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
		StartMinutes: 22 * 60, EndMinutes: shift.MinutesPerDay,
	}
	cont := shift.Shift{
		ID: uuid.NewString(), GroupID: group,
		StoreID: testStoreID, EmployeeID: testEmployeeID,
		Date:         time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
		StartMinutes: 0, EndMinutes: 6 * 60,
		IsNightContinuation: true,
	}
	shifts.shifts[lead.ID] = lead
	shifts.shifts[cont.ID] = cont

	svc := NewAttendanceService(fakeTxManager{}, ledger, shifts, fakeEmployeeRepo{}).(*AttendanceServiceImpl)
	return &fixture{svc: svc, ledger: ledger, shifts: shifts, dayShift: day, nightLead: lead}
}

func (f *fixture) setNow(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

func punch(punchType string) attendance.RecordPunchRequest {
	return attendance.RecordPunchRequest{
		StoreID:    testStoreID,
		EmployeeID: testEmployeeID,
		Type:       punchType,
	}
}

// ========== TESTS ==========

func TestAttendanceService_RecordPunch_ClockInWithinWindow(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC))

	result, err := f.svc.RecordPunch(context.Background(), punch("IN"))

	require.NoError(t, err)
	assert.Equal(t, "IN", result.Type)
	require.NotNil(t, result.ShiftID)
	assert.Equal(t, f.dayShift.ID, *result.ShiftID)
	assert.Len(t, f.ledger.events, 1)
}

func TestAttendanceService_RecordPunch_NoActiveShift(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC))

	_, err := f.svc.RecordPunch(context.Background(), punch("IN"))

	assert.ErrorIs(t, err, attendance.ErrNoActiveShift)
	assert.Empty(t, f.ledger.events)
}

func TestAttendanceService_RecordPunch_DuplicateInRejected(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.RecordPunch(context.Background(), punch("IN"))
	require.NoError(t, err)

	f.setNow(time.Date(2026, 9, 1, 9, 5, 0, 0, time.UTC))
	_, err = f.svc.RecordPunch(context.Background(), punch("IN"))

	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
	assert.True(t, attendance.IsInvalidPunchState(err))
	assert.Len(t, f.ledger.events, 1)
}

func TestAttendanceService_RecordPunch_OutWithoutInRejected(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC))

	_, err := f.svc.RecordPunch(context.Background(), punch("OUT"))

	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)
}

func TestAttendanceService_RecordPunch_FullCycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setNow(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	_, err := f.svc.RecordPunch(ctx, punch("IN"))
	require.NoError(t, err)

	f.setNow(time.Date(2026, 9, 1, 18, 2, 0, 0, time.UTC))
	_, err = f.svc.RecordPunch(ctx, punch("OUT"))
	require.NoError(t, err)

	// The shift is complete; further punches are rejected.
	f.setNow(time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC))
	_, err = f.svc.RecordPunch(ctx, punch("IN"))
	assert.ErrorIs(t, err, attendance.ErrShiftAlreadyCompleted)
	_, err = f.svc.RecordPunch(ctx, punch("OUT"))
	assert.ErrorIs(t, err, attendance.ErrShiftAlreadyCompleted)
}

func TestAttendanceService_RecordPunch_OutOfOrderRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setNow(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	_, err := f.svc.RecordPunch(ctx, punch("IN"))
	require.NoError(t, err)

	req := punch("OUT")
	req.RecordTime = "2026-09-01T08:00:00Z" // before the accepted IN
	_, err = f.svc.RecordPunch(ctx, req)

	assert.ErrorIs(t, err, attendance.ErrPunchOutOfOrder)
}

func TestAttendanceService_RecordPunch_NightShiftAfterMidnight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Clock in the evening of the 3rd, clock out past midnight: both
	// punches attach to the lead record of the pair.
	f.setNow(time.Date(2026, 9, 3, 22, 0, 0, 0, time.UTC))
	in, err := f.svc.RecordPunch(ctx, punch("IN"))
	require.NoError(t, err)
	assert.Equal(t, f.nightLead.ID, *in.ShiftID)

	f.setNow(time.Date(2026, 9, 4, 6, 5, 0, 0, time.UTC))
	out, err := f.svc.RecordPunch(ctx, punch("OUT"))
	require.NoError(t, err)
	assert.Equal(t, f.nightLead.ID, *out.ShiftID)
}

func TestAttendanceService_QueryShiftStatus_Transitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Far from any shift.
	f.setNow(time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC))
	status, err := f.svc.QueryShiftStatus(ctx, testEmployeeID, testStoreID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateOutOfShift), status.State)
	assert.False(t, status.CanClockIn)
	assert.False(t, status.CanClockOut)

	// Inside the early clock-in window.
	f.setNow(time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC))
	status, err = f.svc.QueryShiftStatus(ctx, testEmployeeID, testStoreID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateReadyToClockIn), status.State)
	assert.True(t, status.CanClockIn)
	require.NotNil(t, status.CurrentShiftID)
	assert.Equal(t, f.dayShift.ID, *status.CurrentShiftID)

	// Clocked in, mid shift.
	f.setNow(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	_, err = f.svc.RecordPunch(ctx, punch("IN"))
	require.NoError(t, err)
	f.setNow(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	status, err = f.svc.QueryShiftStatus(ctx, testEmployeeID, testStoreID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateClockedIn), status.State)
	assert.True(t, status.CanClockOut)

	// Past shift end, inside the clock-out grace window.
	f.setNow(time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC))
	status, err = f.svc.QueryShiftStatus(ctx, testEmployeeID, testStoreID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateReadyToClockOut), status.State)
	assert.True(t, status.CanClockOut)

	// Completed.
	_, err = f.svc.RecordPunch(ctx, punch("OUT"))
	require.NoError(t, err)
	status, err = f.svc.QueryShiftStatus(ctx, testEmployeeID, testStoreID, nil)
	require.NoError(t, err)
	assert.Equal(t, string(attendance.StateOutOfShift), status.State)
	assert.False(t, status.CanClockIn)
}

func TestAttendanceService_QueryShiftStatus_ByShiftID(t *testing.T) {
	f := newFixture(t)
	f.setNow(time.Date(2026, 9, 1, 8, 30, 0, 0, time.UTC))

	// The QR flow names the shift directly.
	status, err := f.svc.QueryShiftStatus(context.Background(), testEmployeeID, testStoreID, &f.dayShift.ID)

	require.NoError(t, err)
	assert.True(t, status.CanClockIn)
	assert.Equal(t, f.dayShift.ID, *status.CurrentShiftID)
}

func TestAttendanceService_ListRecent_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.setNow(time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))
	_, err := f.svc.RecordPunch(ctx, punch("IN"))
	require.NoError(t, err)
	f.setNow(time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC))
	_, err = f.svc.RecordPunch(ctx, punch("OUT"))
	require.NoError(t, err)

	result, err := f.svc.ListRecent(ctx, testEmployeeID, testStoreID, 10)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "OUT", result[0].Type)
	assert.Equal(t, "IN", result[1].Type)
}
