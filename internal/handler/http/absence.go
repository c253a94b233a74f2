package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/absence"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type AbsenceHandler interface {
	CreateLeaveRequest(w http.ResponseWriter, r *http.Request)
	GetLeaveRequest(w http.ResponseWriter, r *http.Request)
	ListMyLeaveRequests(w http.ResponseWriter, r *http.Request)
	ListPendingLeaveRequests(w http.ResponseWriter, r *http.Request)
	ApproveLeaveRequest(w http.ResponseWriter, r *http.Request)
	RejectLeaveRequest(w http.ResponseWriter, r *http.Request)
	CancelLeaveRequest(w http.ResponseWriter, r *http.Request)

	ListInsights(w http.ResponseWriter, r *http.Request)
	GetInsight(w http.ResponseWriter, r *http.Request)
	UpdateInsightStatus(w http.ResponseWriter, r *http.Request)
	RunDetection(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	leaveService   absence.LeaveService
	insightService absence.InsightService
}

func NewAbsenceHandler(leaveService absence.LeaveService, insightService absence.InsightService) AbsenceHandler {
	return &AbsenceHandlerImpl{
		leaveService:   leaveService,
		insightService: insightService,
	}
}

// CreateLeaveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req absence.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leave, err := h.leaveService.CreateLeaveRequest(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave)
}

// GetLeaveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetLeaveRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	leave, err := h.leaveService.GetLeaveRequest(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave)
}

// ListMyLeaveRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	leaves, err := h.leaveService.ListMyLeaveRequests(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leaves)
}

// ListPendingLeaveRequests implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListPendingLeaveRequests(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	page, pageSize := parsePagination(r)
	leaves, total, err := h.leaveService.ListPendingLeaveRequests(r.Context(), sess, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, leaves, response.NewMeta(page, pageSize, total))
}

// ApproveLeaveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	leave, err := h.leaveService.ApproveLeaveRequest(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", leave)
}

// RejectLeaveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req absence.RejectLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectLeaveRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leave, err := h.leaveService.RejectLeaveRequest(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", leave)
}

// CancelLeaveRequest implements AbsenceHandler.
func (h *AbsenceHandlerImpl) CancelLeaveRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.leaveService.CancelLeaveRequest(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", nil)
}

// ListInsights implements AbsenceHandler.
func (h *AbsenceHandlerImpl) ListInsights(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var status *absence.InsightStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := absence.InsightStatus(raw)
		status = &s
	}

	page, pageSize := parsePagination(r)
	insights, total, err := h.insightService.ListInsights(r.Context(), sess, status, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, insights, response.NewMeta(page, pageSize, total))
}

// GetInsight implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetInsight(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	insight, err := h.insightService.GetInsight(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, insight)
}

// UpdateInsightStatus implements AbsenceHandler.
func (h *AbsenceHandlerImpl) UpdateInsightStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req absence.UpdateInsightStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateInsightStatus decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	insight, err := h.insightService.UpdateInsightStatus(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Insight updated", insight)
}

// RunDetection implements AbsenceHandler. On-demand detection sweep for the
// caller's tenant; the scheduler runs the same sweep nightly.
func (h *AbsenceHandlerImpl) RunDetection(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	raised, err := h.insightService.RunDetection(r.Context(), sess.TenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Detection completed", map[string]int{"insights_raised": raised})
}
