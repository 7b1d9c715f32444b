package shift

import (
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	StoreID      string `json:"-"`
	EmployeeID   string `json:"employee_id"`
	Date         string `json:"date"`       // "YYYY-MM-DD"
	StartTime    string `json:"start_time"` // "HH:MM" local time-of-day
	EndTime      string `json:"end_time"`   // "HH:MM"; before start_time means overnight
	BreakMinutes int    `json:"break_minutes"`
	IsFixed      bool   `json:"is_fixed"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	start, okStart := validator.ParseTimeOfDay(r.StartTime)
	if !okStart || start >= MinutesPerDay {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid time of day (HH:MM)"})
	}
	end, okEnd := validator.ParseTimeOfDay(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid time of day (HH:MM)"})
	}
	if okStart && okEnd && start == end {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must differ from start_time"})
	}
	if r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkCreateShiftsRequest struct {
	StoreID string               `json:"-"`
	Shifts  []CreateShiftRequest `json:"shifts"`
}

func (r *BulkCreateShiftsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Shifts) == 0 {
		errs = append(errs, validator.ValidationError{Field: "shifts", Message: "at least one shift is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	for i := range r.Shifts {
		r.Shifts[i].StoreID = r.StoreID
		if err := r.Shifts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

type UpdateShiftRequest struct {
	ID           string  `json:"-"`
	StoreID      string  `json:"-"`
	Date         *string `json:"date,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	BreakMinutes *int    `json:"break_minutes,omitempty"`
	IsFixed      *bool   `json:"is_fixed,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.StartTime != nil {
		if start, ok := validator.ParseTimeOfDay(*r.StartTime); !ok || start >= MinutesPerDay {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be a valid time of day (HH:MM)"})
		}
	}
	if r.EndTime != nil {
		if _, ok := validator.ParseTimeOfDay(*r.EndTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be a valid time of day (HH:MM)"})
		}
	}
	if r.BreakMinutes != nil && *r.BreakMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "break_minutes", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteRangeRequest struct {
	StoreID    string `json:"-"`
	EmployeeID string `json:"employee_id"`
	From       string `json:"from"` // "YYYY-MM-DD" inclusive
	To         string `json:"to"`   // "YYYY-MM-DD" inclusive
}

func (r *DeleteRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	from, okFrom := validator.IsValidDate(r.From)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	to, okTo := validator.IsValidDate(r.To)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "to", Message: "must not be before from"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID                  string `json:"id"`
	GroupID             string `json:"group_id"`
	StoreID             string `json:"store_id"`
	EmployeeID          string `json:"employee_id"`
	Date                string `json:"date"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	BreakMinutes        int    `json:"break_minutes"`
	IsFixed             bool   `json:"is_fixed"`
	IsNightContinuation bool   `json:"is_night_continuation"`
}
