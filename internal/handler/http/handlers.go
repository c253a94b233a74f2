package http

import (
	"net/http"
	"strconv"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/middleware"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// requireSession extracts the authenticated session; it only fails when a
// handler is mounted outside the auth middleware, which is a routing bug.
func requireSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return nil, false
	}
	return sess, true
}

func parsePagination(r *http.Request) (page, pageSize int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(r.URL.Query().Get("page_size"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
