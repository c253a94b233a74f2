package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/review"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

type ReviewHandler interface {
	CreateManagerReview(w http.ResponseWriter, r *http.Request)
	CreateSelfReflection(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Commit(w http.ResponseWriter, r *http.Request)
	Uncommit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListForEmployee(w http.ResponseWriter, r *http.Request)
	GetMyStatus(w http.ResponseWriter, r *http.Request)
}

type ReviewHandlerImpl struct {
	reviewService review.Service
}

func NewReviewHandler(reviewService review.Service) ReviewHandler {
	return &ReviewHandlerImpl{reviewService: reviewService}
}

// CreateManagerReview implements ReviewHandler.
func (h *ReviewHandlerImpl) CreateManagerReview(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req review.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateManagerReview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rev, err := h.reviewService.CreateManagerReview(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Review draft created", rev)
}

// CreateSelfReflection implements ReviewHandler.
func (h *ReviewHandlerImpl) CreateSelfReflection(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req review.CreateSelfReflectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateSelfReflection decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rev, err := h.reviewService.CreateSelfReflection(r.Context(), sess, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Self-reflection draft created", rev)
}

// Update implements ReviewHandler.
func (h *ReviewHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req review.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateReview decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	rev, err := h.reviewService.UpdateReview(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review updated", rev)
}

// Commit implements ReviewHandler.
func (h *ReviewHandlerImpl) Commit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	rev, err := h.reviewService.CommitReview(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review committed", rev)
}

// Uncommit implements ReviewHandler.
func (h *ReviewHandlerImpl) Uncommit(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	rev, err := h.reviewService.UncommitReview(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Review reopened", rev)
}

// Get implements ReviewHandler.
func (h *ReviewHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	rev, err := h.reviewService.GetReview(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rev)
}

// ListForEmployee implements ReviewHandler.
func (h *ReviewHandlerImpl) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	page, pageSize := parsePagination(r)
	reviews, total, err := h.reviewService.ListEmployeeReviews(r.Context(), sess, chi.URLParam(r, "employeeID"), page, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, reviews, response.NewMeta(page, pageSize, total))
}

// GetMyStatus implements ReviewHandler.
func (h *ReviewHandlerImpl) GetMyStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	status, err := h.reviewService.GetMyReflectionStatus(r.Context(), sess, r.URL.Query().Get("week_ending"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}
