package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/offboarding"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type OffboardingHandler interface {
	Initiate(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateChecklistItem(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)

	CreateHandoverItem(w http.ResponseWriter, r *http.Request)
	ListHandoverItems(w http.ResponseWriter, r *http.Request)
	CompleteHandoverItem(w http.ResponseWriter, r *http.Request)

	GetExitInterview(w http.ResponseWriter, r *http.Request)
	SubmitExitInterview(w http.ResponseWriter, r *http.Request)
}

type OffboardingHandlerImpl struct {
	offboardingService offboarding.Service
}

func NewOffboardingHandler(offboardingService offboarding.Service) OffboardingHandler {
	return &OffboardingHandlerImpl{offboardingService: offboardingService}
}

// Initiate implements OffboardingHandler.
func (h *OffboardingHandlerImpl) Initiate(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req offboarding.InitiateWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("InitiateOffboarding decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	workflow, err := h.offboardingService.InitiateWorkflow(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Offboarding workflow initiated", workflow)
}

// Get implements OffboardingHandler.
func (h *OffboardingHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	workflow, err := h.offboardingService.GetWorkflow(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, workflow)
}

// List implements OffboardingHandler.
func (h *OffboardingHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var status *offboarding.WorkflowStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := offboarding.WorkflowStatus(raw)
		status = &s
	}

	page, pageSize := parsePagination(r)
	workflows, total, err := h.offboardingService.ListWorkflows(r.Context(), sess, status, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, workflows, response.NewMeta(page, pageSize, total))
}

// UpdateChecklistItem implements OffboardingHandler.
func (h *OffboardingHandlerImpl) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req offboarding.UpdateChecklistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateChecklistItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	workflow, err := h.offboardingService.UpdateChecklistItem(r.Context(), sess, chi.URLParam(r, "id"), chi.URLParam(r, "itemID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checklist item updated", workflow)
}

// Complete implements OffboardingHandler.
func (h *OffboardingHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	workflow, err := h.offboardingService.CompleteWorkflow(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offboarding workflow completed", workflow)
}

// Cancel implements OffboardingHandler.
func (h *OffboardingHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.offboardingService.CancelWorkflow(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Offboarding workflow cancelled", nil)
}

// CreateHandoverItem implements OffboardingHandler.
func (h *OffboardingHandlerImpl) CreateHandoverItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req offboarding.CreateHandoverItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHandoverItem decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	item, err := h.offboardingService.CreateHandoverItem(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Handover item created", item)
}

// ListHandoverItems implements OffboardingHandler.
func (h *OffboardingHandlerImpl) ListHandoverItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	items, err := h.offboardingService.ListHandoverItems(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, items)
}

// CompleteHandoverItem implements OffboardingHandler.
func (h *OffboardingHandlerImpl) CompleteHandoverItem(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.offboardingService.CompleteHandoverItem(r.Context(), sess, chi.URLParam(r, "id"), chi.URLParam(r, "itemID")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Handover item completed", nil)
}

// GetExitInterview implements OffboardingHandler.
func (h *OffboardingHandlerImpl) GetExitInterview(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	interview, err := h.offboardingService.GetExitInterview(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, interview)
}

// SubmitExitInterview implements OffboardingHandler.
func (h *OffboardingHandlerImpl) SubmitExitInterview(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req offboarding.SubmitExitInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitExitInterview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	interview, err := h.offboardingService.SubmitExitInterview(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Exit interview submitted", interview)
}
