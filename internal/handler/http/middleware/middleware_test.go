package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func testSession() *session.Session {
	return &session.Session{
		ID:        "sess-1",
		TenantID:  "tenant-1",
		UserID:    "user-1",
		Role:      user.RoleAdmin,
		Tier:      tenant.TierStarter,
		CSRFToken: "csrf-secret",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func doRequest(t *testing.T, handler http.Handler, method string, sess *session.Session, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, "/", nil)
	if header != nil {
		req.Header = header
	}
	if sess != nil {
		req = req.WithContext(WithSession(req.Context(), sess))
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Success bool `json:"success"`
		Error   *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Error)
	assert.False(t, body.Success)
	return body.Error.Code
}

func TestCSRF_SafeMethodsPass(t *testing.T) {
	handler := CSRF(okHandler)

	for _, method := range []string{http.MethodGet, http.MethodHead, http.MethodOptions} {
		rec := doRequest(t, handler, method, nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}
}

func TestCSRF_MutatingRequests(t *testing.T) {
	handler := CSRF(okHandler)
	sess := testSession()

	rec := doRequest(t, handler, http.MethodPost, sess, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "missing header")

	header := http.Header{}
	header.Set(CSRFHeader, "wrong-token")
	rec = doRequest(t, handler, http.MethodPost, sess, header)
	assert.Equal(t, http.StatusForbidden, rec.Code, "wrong header")

	header.Set(CSRFHeader, "csrf-secret")
	rec = doRequest(t, handler, http.MethodPost, sess, header)
	assert.Equal(t, http.StatusOK, rec.Code, "matching header")

	rec = doRequest(t, handler, http.MethodDelete, nil, header)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "no session")
}

func TestRequirePermission(t *testing.T) {
	handler := RequirePermission(user.PermissionUserManage)(okHandler)

	admin := testSession()
	rec := doRequest(t, handler, http.MethodGet, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	emp := testSession()
	emp.Role = user.RoleEmployee
	rec = doRequest(t, handler, http.MethodGet, emp, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, handler, http.MethodGet, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireMinTier(t *testing.T) {
	handler := RequireMinTier(tenant.TierProfessional)(okHandler)

	starter := testSession()
	rec := doRequest(t, handler, http.MethodGet, starter, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TIER_REQUIRED", errorCode(t, rec))

	pro := testSession()
	pro.Tier = tenant.TierProfessional
	rec = doRequest(t, handler, http.MethodGet, pro, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTierOrRole(t *testing.T) {
	handler := RequireTierOrRole(tenant.TierProfessional, user.RoleAdmin)(okHandler)

	// Starter tier, but the admin override applies.
	admin := testSession()
	rec := doRequest(t, handler, http.MethodGet, admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Starter tier without an override role.
	hr := testSession()
	hr.Role = user.RoleHR
	rec = doRequest(t, handler, http.MethodGet, hr, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "TIER_REQUIRED", errorCode(t, rec))

	// Sufficient tier needs no override.
	hrPro := testSession()
	hrPro.Role = user.RoleHR
	hrPro.Tier = tenant.TierEnterprise
	rec = doRequest(t, handler, http.MethodGet, hrPro, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuditAccess(t *testing.T) {
	window := 15 * time.Minute
	handler := RequireAuditAccess(window)(okHandler)

	// No step-up yet: the client should prompt for a password.
	sess := testSession()
	rec := doRequest(t, handler, http.MethodGet, sess, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "AUDIT_REAUTH_REQUIRED", errorCode(t, rec))

	// Stale step-up: distinct code so the client reports the expiry.
	stale := time.Now().Add(-16 * time.Minute)
	sess.AuditVerifiedAt = &stale
	rec = doRequest(t, handler, http.MethodGet, sess, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "AUDIT_REAUTH_EXPIRED", errorCode(t, rec))

	// Fresh step-up passes.
	fresh := time.Now().Add(-5 * time.Minute)
	sess.AuditVerifiedAt = &fresh
	rec = doRequest(t, handler, http.MethodGet, sess, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Permission still gates ahead of the window check.
	emp := testSession()
	emp.Role = user.RoleEmployee
	emp.AuditVerifiedAt = &fresh
	rec = doRequest(t, handler, http.MethodGet, emp, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3)
	handler := rl.Handler(okHandler)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within burst", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "burst exhausted")
	assert.Equal(t, "RATE_LIMITED", errorCode(t, rec))

	// A different client has its own bucket.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
