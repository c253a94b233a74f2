package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/auth"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sessiontoken"
)

type contextKey string

const sessionContextKey contextKey = "session"

// SessionAuth decodes the session cookie, loads the server-side session row
// and puts it on the request context. Requests without a live session are
// rejected.
func SessionAuth(tokens sessiontoken.Service, sessions session.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(tokens.CookieName())
			if err != nil || cookie.Value == "" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sessionID, err := tokens.DecodeSessionID(cookie.Value)
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			sess, err := sessions.GetByID(r.Context(), sessionID)
			if err != nil {
				response.HandleError(w, session.ErrSessionNotFound)
				return
			}
			if sess.Expired(time.Now()) {
				response.HandleError(w, session.ErrSessionExpired)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the authenticated session placed by SessionAuth.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey).(*session.Session)
	return sess, ok
}

// WithSession is a test helper that injects a session into a context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}
