package response

import (
	"errors"
	"net/http"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/employee"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/payroll"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Punch gating violations share one code; the message says why.
	if attendance.IsInvalidPunchState(err) {
		ConflictWithCode(w, "INVALID_PUNCH_STATE", err.Error())
		return
	}

	switch {
	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrInvalidRange):
		BadRequest(w, "Invalid shift time range", nil)
	case errors.Is(err, shift.ErrShiftOverlap):
		Conflict(w, "Shift overlaps an existing shift for this employee")
	case errors.Is(err, shift.ErrContinuationLocked):
		Conflict(w, "Night continuation records can only be changed through their lead shift")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, "Attendance event not found")

	// Wage / roster errors
	case errors.Is(err, wage.ErrSettingNotFound):
		NotFound(w, "Wage setting not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPastPeriodLocked):
		ConflictWithCode(w, "PAST_PERIOD_LOCKED", err.Error())
	case errors.Is(err, payroll.ErrAlreadyFinalized):
		ConflictWithCode(w, "ALREADY_FINALIZED", err.Error())
	case errors.Is(err, payroll.ErrConcurrentModification):
		ConflictWithCode(w, "CONCURRENT_MODIFICATION", err.Error())
	case errors.Is(err, payroll.ErrNoDraftCalculation):
		Conflict(w, "No calculation to save; run calculate first")
	case errors.Is(err, payroll.ErrNoEmployees):
		BadRequest(w, "Store has no active employees", nil)
	case errors.Is(err, payroll.ErrUpstreamUnavailable):
		ServiceUnavailable(w, "Payroll inputs are temporarily unavailable")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
