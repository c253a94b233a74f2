package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/gdpr"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type GDPRHandler interface {
	OpenRequest(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type GDPRHandlerImpl struct {
	gdprService gdpr.Service
}

func NewGDPRHandler(gdprService gdpr.Service) GDPRHandler {
	return &GDPRHandlerImpl{gdprService: gdprService}
}

// OpenRequest implements GDPRHandler.
func (h *GDPRHandlerImpl) OpenRequest(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req gdpr.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("OpenGDPRRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.gdprService.OpenRequest(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Data request opened", request)
}

// Get implements GDPRHandler.
func (h *GDPRHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	request, err := h.gdprService.GetRequest(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, request)
}

// List implements GDPRHandler.
func (h *GDPRHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	page, pageSize := parsePagination(r)
	requests, total, err := h.gdprService.ListRequests(r.Context(), sess, page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, requests, response.NewMeta(page, pageSize, total))
}

// ListMine implements GDPRHandler.
func (h *GDPRHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	requests, err := h.gdprService.ListMyRequests(r.Context(), sess)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, requests)
}

// Process implements GDPRHandler.
func (h *GDPRHandlerImpl) Process(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	request, err := h.gdprService.ProcessRequest(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Data request processed", request)
}

// Reject implements GDPRHandler.
func (h *GDPRHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req gdpr.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectGDPRRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.gdprService.RejectRequest(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Data request rejected", request)
}
