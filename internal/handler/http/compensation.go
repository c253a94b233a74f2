package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/compensation"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type CompensationHandler interface {
	CreatePayBand(w http.ResponseWriter, r *http.Request)
	ListPayBands(w http.ResponseWriter, r *http.Request)
	UpdatePayBand(w http.ResponseWriter, r *http.Request)
	DeletePayBand(w http.ResponseWriter, r *http.Request)

	CreateRecord(w http.ResponseWriter, r *http.Request)
	GetEmployeeHistory(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
}

type CompensationHandlerImpl struct {
	compensationService compensation.Service
}

func NewCompensationHandler(compensationService compensation.Service) CompensationHandler {
	return &CompensationHandlerImpl{compensationService: compensationService}
}

// CreatePayBand implements CompensationHandler.
func (h *CompensationHandlerImpl) CreatePayBand(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req compensation.CreatePayBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePayBand decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	band, err := h.compensationService.CreatePayBand(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay band created", band)
}

// ListPayBands implements CompensationHandler.
func (h *CompensationHandlerImpl) ListPayBands(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	bands, err := h.compensationService.ListPayBands(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, bands)
}

// UpdatePayBand implements CompensationHandler.
func (h *CompensationHandlerImpl) UpdatePayBand(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req compensation.CreatePayBandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdatePayBand decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	band, err := h.compensationService.UpdatePayBand(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay band updated", band)
}

// DeletePayBand implements CompensationHandler.
func (h *CompensationHandlerImpl) DeletePayBand(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.compensationService.DeletePayBand(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay band deleted", nil)
}

// CreateRecord implements CompensationHandler.
func (h *CompensationHandlerImpl) CreateRecord(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req compensation.CreateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateCompensationRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.compensationService.CreateRecord(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Compensation record created", record)
}

// GetEmployeeHistory implements CompensationHandler.
func (h *CompensationHandlerImpl) GetEmployeeHistory(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	records, err := h.compensationService.GetEmployeeHistory(r.Context(), sess, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetCurrent implements CompensationHandler.
func (h *CompensationHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	record, err := h.compensationService.GetCurrentCompensation(r.Context(), sess, chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}
