package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/wage"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/response"
)

type WageHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	GetAll(w http.ResponseWriter, r *http.Request)
	Upsert(w http.ResponseWriter, r *http.Request)
}

type wageHandlerImpl struct {
	wageService wage.WageService
}

func NewWageHandler(wageService wage.WageService) WageHandler {
	return &wageHandlerImpl{
		wageService: wageService,
	}
}

// Get implements WageHandler.
func (h *wageHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	storeID := middleware.StoreIDFromContext(r.Context())

	result, err := h.wageService.GetSetting(r.Context(), employeeID, storeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetAll implements WageHandler.
func (h *wageHandlerImpl) GetAll(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	result, err := h.wageService.GetAllSettings(r.Context(), storeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Upsert implements WageHandler.
func (h *wageHandlerImpl) Upsert(w http.ResponseWriter, r *http.Request) {
	var req wage.UpsertSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.wageService.UpsertSetting(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Wage setting saved", result)
}
