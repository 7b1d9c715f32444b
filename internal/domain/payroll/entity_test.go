package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2026-09")
	require.NoError(t, err)
	assert.Equal(t, 2026, ym.Year)
	assert.Equal(t, time.September, ym.Month)
	assert.Equal(t, "2026-09", ym.String())

	_, err = ParseYearMonth("2026-13")
	assert.Error(t, err)
	_, err = ParseYearMonth("september")
	assert.Error(t, err)
}

func TestYearMonth_Before(t *testing.T) {
	assert.True(t, YearMonth{2026, time.August}.Before(YearMonth{2026, time.September}))
	assert.True(t, YearMonth{2025, time.December}.Before(YearMonth{2026, time.January}))
	assert.False(t, YearMonth{2026, time.September}.Before(YearMonth{2026, time.September}))
	assert.False(t, YearMonth{2026, time.October}.Before(YearMonth{2026, time.September}))
}

func TestYearMonth_DateRange(t *testing.T) {
	from, to := YearMonth{2026, time.February}.DateRange()
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), to)
}

func TestRunStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, RunStatusNone.CanTransitionTo(RunStatusDraft))
	assert.True(t, RunStatusDraft.CanTransitionTo(RunStatusDraft))
	assert.True(t, RunStatusDraft.CanTransitionTo(RunStatusFinalized))
	assert.True(t, RunStatusFailed.CanTransitionTo(RunStatusDraft))

	// Re-finalizing is the idempotent save; everything else is locked.
	assert.True(t, RunStatusFinalized.CanTransitionTo(RunStatusFinalized))
	assert.False(t, RunStatusFinalized.CanTransitionTo(RunStatusDraft))
	assert.False(t, RunStatusFinalized.CanTransitionTo(RunStatusFailed))
	assert.False(t, RunStatusNone.CanTransitionTo(RunStatusFinalized))
}
