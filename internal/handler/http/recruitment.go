package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/recruitment"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type RecruitmentHandler interface {
	CreateOpportunity(w http.ResponseWriter, r *http.Request)
	GetOpportunity(w http.ResponseWriter, r *http.Request)
	ListOpportunities(w http.ResponseWriter, r *http.Request)
	CloseOpportunity(w http.ResponseWriter, r *http.Request)

	SubmitApplication(w http.ResponseWriter, r *http.Request)
	ListApplications(w http.ResponseWriter, r *http.Request)
	AdvanceApplication(w http.ResponseWriter, r *http.Request)
}

type RecruitmentHandlerImpl struct {
	recruitmentService recruitment.Service
}

func NewRecruitmentHandler(recruitmentService recruitment.Service) RecruitmentHandler {
	return &RecruitmentHandlerImpl{recruitmentService: recruitmentService}
}

// CreateOpportunity implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) CreateOpportunity(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req recruitment.CreateOpportunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOpportunity decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	opportunity, err := h.recruitmentService.CreateOpportunity(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Opportunity created", opportunity)
}

// GetOpportunity implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) GetOpportunity(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	opportunity, err := h.recruitmentService.GetOpportunity(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, opportunity)
}

// ListOpportunities implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) ListOpportunities(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var status *recruitment.OpportunityStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := recruitment.OpportunityStatus(raw)
		status = &s
	}

	page, pageSize := parsePagination(r)
	opportunities, total, err := h.recruitmentService.ListOpportunities(r.Context(), sess, status, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, opportunities, response.NewMeta(page, pageSize, total))
}

// CloseOpportunity implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) CloseOpportunity(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	opportunity, err := h.recruitmentService.CloseOpportunity(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Opportunity closed", opportunity)
}

// SubmitApplication implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req recruitment.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SubmitApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := h.recruitmentService.SubmitApplication(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application recorded", application)
}

// ListApplications implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) ListApplications(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	applications, err := h.recruitmentService.ListApplications(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, applications)
}

// AdvanceApplication implements RecruitmentHandler.
func (h *RecruitmentHandlerImpl) AdvanceApplication(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req recruitment.AdvanceApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdvanceApplication decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	application, err := h.recruitmentService.AdvanceApplication(r.Context(), sess, chi.URLParam(r, "applicationID"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application advanced", application)
}
