package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/shift"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/response"
	"github.com/heakbomb/storeworks-backend-go/internal/pkg/validator"
)

type ShiftHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	BulkCreate(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	DeleteRange(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{
		shiftService: shiftService,
	}
}

// Create implements ShiftHandler.
func (h *shiftHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.shiftService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shift created", result)
}

// BulkCreate implements ShiftHandler.
func (h *shiftHandlerImpl) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req shift.BulkCreateShiftsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.shiftService.BulkCreateShifts(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Shifts created", result)
}

// Update implements ShiftHandler.
func (h *shiftHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req shift.UpdateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "shiftID")
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.shiftService.UpdateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift updated", result)
}

// Delete implements ShiftHandler.
func (h *shiftHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftID")
	storeID := middleware.StoreIDFromContext(r.Context())

	if err := h.shiftService.DeleteShift(r.Context(), shiftID, storeID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shift deleted", nil)
}

// DeleteRange implements ShiftHandler.
func (h *shiftHandlerImpl) DeleteRange(w http.ResponseWriter, r *http.Request) {
	var req shift.DeleteRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	deleted, err := h.shiftService.DeleteRange(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Shifts deleted", map[string]int64{"deleted": deleted})
}

// List implements ShiftHandler.
func (h *shiftHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	from, okFrom := validator.IsValidDate(r.URL.Query().Get("from"))
	to, okTo := validator.IsValidDate(r.URL.Query().Get("to"))
	if !okFrom || !okTo || to.Before(from) {
		response.BadRequest(w, "Query params 'from' and 'to' must be valid dates (YYYY-MM-DD)", nil)
		return
	}

	result, err := h.shiftService.ListShifts(r.Context(), storeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
