package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/heakbomb/storeworks-backend-go/internal/domain/payroll"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/middleware"
	"github.com/heakbomb/storeworks-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	SaveHistory(w http.ResponseWriter, r *http.Request)
	RunStatus(w http.ResponseWriter, r *http.Request)
	HistorySummary(w http.ResponseWriter, r *http.Request)
	HistoryDetail(w http.ResponseWriter, r *http.Request)
	UpdateRecordStatus(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService: payrollService,
	}
}

// Calculate implements PayrollHandler.
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll calculated", result)
}

// SaveHistory implements PayrollHandler.
func (h *payrollHandlerImpl) SaveHistory(w http.ResponseWriter, r *http.Request) {
	var req payroll.SaveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.payrollService.SaveHistory(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll history saved", result)
}

// RunStatus implements PayrollHandler.
func (h *payrollHandlerImpl) RunStatus(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())
	yearMonth := chi.URLParam(r, "yearMonth")

	result, err := h.payrollService.GetRunStatus(r.Context(), storeID, yearMonth)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HistorySummary implements PayrollHandler.
func (h *payrollHandlerImpl) HistorySummary(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())

	result, err := h.payrollService.ListHistorySummary(r.Context(), storeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// HistoryDetail implements PayrollHandler.
func (h *payrollHandlerImpl) HistoryDetail(w http.ResponseWriter, r *http.Request) {
	storeID := middleware.StoreIDFromContext(r.Context())
	yearMonth := chi.URLParam(r, "yearMonth")

	result, err := h.payrollService.ListHistoryDetail(r.Context(), storeID, yearMonth)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateRecordStatus implements PayrollHandler.
func (h *payrollHandlerImpl) UpdateRecordStatus(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdateRecordStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PayrollID = chi.URLParam(r, "payrollID")
	req.StoreID = middleware.StoreIDFromContext(r.Context())

	result, err := h.payrollService.UpdateRecordStatus(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Record status updated", result)
}
