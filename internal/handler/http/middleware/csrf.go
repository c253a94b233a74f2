package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

// CSRFHeader is the header the frontend echoes the csrf cookie value into.
const CSRFHeader = "X-CSRF-Token"

// CSRF enforces the double-submit check on mutating requests: the header
// must match the token stored on the session. Safe methods pass through.
func CSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		sess, ok := SessionFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Unauthorized")
			return
		}

		header := r.Header.Get(CSRFHeader)
		if header == "" || subtle.ConstantTimeCompare([]byte(header), []byte(sess.CSRFToken)) != 1 {
			response.HandleError(w, session.ErrCSRFTokenMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}
