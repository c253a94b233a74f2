package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/admin"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type AdminHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	UpdateUserRole(w http.ResponseWriter, r *http.Request)
	DeactivateUser(w http.ResponseWriter, r *http.Request)

	GetTenant(w http.ResponseWriter, r *http.Request)
	UpdateTenantTier(w http.ResponseWriter, r *http.Request)

	ListAuditEvents(w http.ResponseWriter, r *http.Request)
	ListAuditEventsByTarget(w http.ResponseWriter, r *http.Request)
}

type AdminHandlerImpl struct {
	adminService admin.Service
}

func NewAdminHandler(adminService admin.Service) AdminHandler {
	return &AdminHandlerImpl{adminService: adminService}
}

// ListUsers implements AdminHandler.
func (h *AdminHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	users, err := h.adminService.ListUsers(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, users)
}

// UpdateUserRole implements AdminHandler.
func (h *AdminHandlerImpl) UpdateUserRole(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUserRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.adminService.UpdateUserRole(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User role updated", updated)
}

// DeactivateUser implements AdminHandler.
func (h *AdminHandlerImpl) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.adminService.DeactivateUser(r.Context(), sess, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "User deactivated", nil)
}

// GetTenant implements AdminHandler.
func (h *AdminHandlerImpl) GetTenant(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	t, err := h.adminService.GetTenant(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, t)
}

// UpdateTenantTier implements AdminHandler.
func (h *AdminHandlerImpl) UpdateTenantTier(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req tenant.UpdateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTenantTier decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	t, err := h.adminService.UpdateTenantTier(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tenant tier updated", t)
}

// ListAuditEvents implements AdminHandler.
func (h *AdminHandlerImpl) ListAuditEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	page, pageSize := parsePagination(r)
	events, total, err := h.adminService.ListAuditEvents(r.Context(), sess, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, events, response.NewMeta(page, pageSize, total))
}

// ListAuditEventsByTarget implements AdminHandler.
func (h *AdminHandlerImpl) ListAuditEventsByTarget(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	targetType := r.URL.Query().Get("target_type")
	targetID := r.URL.Query().Get("target_id")
	if targetType == "" || targetID == "" {
		response.BadRequest(w, "target_type and target_id are required", nil)
		return
	}

	events, err := h.adminService.ListAuditEventsByTarget(r.Context(), sess, targetType, targetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, events)
}
