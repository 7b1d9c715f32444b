package payroll

import "errors"

var (
	ErrPastPeriodLocked       = errors.New("past periods can only be viewed, not recalculated")
	ErrAlreadyFinalized       = errors.New("payroll run is already finalized")
	ErrConcurrentModification = errors.New("payroll run was modified concurrently, re-read and retry")
	ErrNoEmployees            = errors.New("store has no active employees")
	ErrUpstreamUnavailable    = errors.New("upstream store unavailable")
	ErrNoDraftCalculation     = errors.New("no calculation to save for this period")
	ErrRunNotFound            = errors.New("payroll run not found")
	ErrRecordNotFound         = errors.New("payroll record not found")
)
