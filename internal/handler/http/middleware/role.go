package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
)

// RequirePermission rejects callers whose role lacks the permission.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if !user.HasPermission(sess.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", permission))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireMinTier gates premium modules on the tenant's subscription tier.
func RequireMinTier(min tenant.Tier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if sess.Tier < min {
				response.HandleError(w, tenant.ErrTierRequired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireTierOrRole passes when the tenant's tier meets the minimum or the
// caller holds one of the override roles.
func RequireTierOrRole(min tenant.Tier, overrides ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if sess.Tier < min {
				allowed := false
				for _, role := range overrides {
					if sess.Role == role {
						allowed = true
						break
					}
				}
				if !allowed {
					response.HandleError(w, tenant.ErrTierRequired)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuditAccess demands the audit-view permission plus a fresh step-up
// verification inside the window. The distinct error codes tell the client
// whether to prompt for a password or just report the expiry.
func RequireAuditAccess(window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := SessionFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Unauthorized")
				return
			}

			if !user.HasPermission(sess.Role, user.PermissionAuditView) {
				response.Forbidden(w, "Insufficient permissions: required 'audit.view'")
				return
			}

			if sess.AuditVerifiedAt == nil {
				response.HandleError(w, session.ErrAuditReauthRequired)
				return
			}
			if !sess.AuditVerified(time.Now(), window) {
				response.HandleError(w, session.ErrAuditReauthExpired)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
