package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/heakbomb/storeworks-backend-go/internal/domain/attendance"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/response"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	RecordPunch(w http.ResponseWriter, r *http.Request)
	ShiftStatus(w http.ResponseWriter, r *http.Request)
	ListRecent(w http.ResponseWriter, r *http.Request)
	ListDay(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// RecordPunch implements AttendanceHandler.
func (h *attendanceHandlerImpl) RecordPunch(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordPunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.attendanceService.RecordPunch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch recorded", result)
}

// ShiftStatus implements AttendanceHandler.
func (h *attendanceHandlerImpl) ShiftStatus(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Query param 'employee_id' is required", nil)
		return
	}

	var shiftID *string
	if s := r.URL.Query().Get("shift_id"); s != "" {
		shiftID = &s
	}

	result, err := h.attendanceService.QueryShiftStatus(r.Context(), employeeID, storeID, shiftID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListRecent implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListRecent(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Query param 'employee_id' is required", nil)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			response.BadRequest(w, "Query param 'limit' must be a number", nil)
			return
		}
		limit = parsed
	}

	result, err := h.attendanceService.ListRecent(r.Context(), employeeID, storeID, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListDay implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListDay(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "Query param 'employee_id' is required", nil)
		return
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "Query param 'date' must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.attendanceService.ListDay(r.Context(), employeeID, storeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
