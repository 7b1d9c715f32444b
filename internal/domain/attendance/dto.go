package attendance

import (
	"time"

	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type RecordPunchRequest struct {
	StoreID           string   `json:"-"`
	EmployeeID        string   `json:"employee_id"`
	Type              string   `json:"type"`                  // "IN" or "OUT"
	RecordTime        string   `json:"record_time,omitempty"` // RFC3339; empty means "now"
	ShiftID           *string  `json:"shift_id,omitempty"`    // set by the QR/mobile flow
	Latitude          *float64 `json:"latitude,omitempty"`
	Longitude         *float64 `json:"longitude,omitempty"`
	VerificationToken *string  `json:"verification_token,omitempty"`
}

func (r *RecordPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsInSlice(r.Type, PunchTypeValues) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'IN' or 'OUT'"})
	}
	if r.RecordTime != "" {
		if _, ok := validator.IsValidDateTime(r.RecordTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "record_time", Message: "must be a valid ISO8601 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordedAtOrNow resolves the punch timestamp, defaulting to now.
func (r *RecordPunchRequest) RecordedAtOrNow(now time.Time) time.Time {
	if r.RecordTime == "" {
		return now
	}
	t, _ := validator.IsValidDateTime(r.RecordTime)
	return t
}

type EventResponse struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employee_id"`
	StoreID    string   `json:"store_id"`
	ShiftID    *string  `json:"shift_id,omitempty"`
	Type       string   `json:"type"`
	RecordedAt string   `json:"recorded_at"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type ShiftStatusResponse struct {
	State          string  `json:"state"`
	CanClockIn     bool    `json:"can_clock_in"`
	CanClockOut    bool    `json:"can_clock_out"`
	CurrentShiftID *string `json:"current_shift_id,omitempty"`
	Message        string  `json:"message"`
}
