package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/auth"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/response"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/oauth"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sessiontoken"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	LoginWithGoogle(w http.ResponseWriter, r *http.Request)
	OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	VerifyPassword(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService   auth.Service
	tokens        sessiontoken.Service
	googleService oauth.GoogleService
	frontendURL   string
}

func NewAuthHandler(authService auth.Service, tokens sessiontoken.Service, googleService oauth.GoogleService, frontendURL string) AuthHandler {
	return &AuthHandlerImpl{
		authService:   authService,
		tokens:        tokens,
		googleService: googleService,
		frontendURL:   frontendURL,
	}
}

func (a *AuthHandlerImpl) tracking(r *http.Request) auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}

// setSessionCookies turns a login result into the session and csrf cookies.
func (a *AuthHandlerImpl) setSessionCookies(w http.ResponseWriter, result *auth.LoginResponse) {
	http.SetCookie(w, a.tokens.SessionCookie(result.SessionToken, result.Session.ExpiresAt))
	http.SetCookie(w, a.tokens.CSRFCookie(result.CSRFToken, result.Session.ExpiresAt))
}

// Register implements AuthHandler. Creates the tenant with its first admin
// account and logs them straight in.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterTenantRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.authService.RegisterTenant(r.Context(), req, a.tracking(r))
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	a.setSessionCookies(w, result)
	response.Created(w, "Tenant registered successfully", map[string]interface{}{
		"tenant_id": result.Session.TenantID,
		"user_id":   result.Session.UserID,
	})
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := a.authService.Login(r.Context(), req, a.tracking(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	a.setSessionCookies(w, result)
	response.SuccessWithMessage(w, "Logged in successfully", map[string]interface{}{
		"user_id": result.Session.UserID,
	})
}

// LoginWithGoogle implements AuthHandler. Redirects to the Google consent
// screen.
func (a *AuthHandlerImpl) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrSSONotConfigured)
		return
	}

	state := a.googleService.GenerateState(r.UserAgent())
	http.Redirect(w, r, a.googleService.RedirectURL(state), http.StatusTemporaryRedirect)
}

// OAuthCallbackGoogle implements AuthHandler.
func (a *AuthHandlerImpl) OAuthCallbackGoogle(w http.ResponseWriter, r *http.Request) {
	if a.googleService == nil {
		response.HandleError(w, auth.ErrSSONotConfigured)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		response.BadRequest(w, "Missing authorization code", nil)
		return
	}

	token, err := a.googleService.VerifyToken(r.Context(), code)
	if err != nil {
		slog.Error("OAuthCallbackGoogle verify token error", "error", err)
		response.Unauthorized(w, "Google authentication failed")
		return
	}

	info, err := a.googleService.VerifyUser(r.Context(), token)
	if err != nil || !info.VerifiedEmail {
		slog.Error("OAuthCallbackGoogle verify user error", "error", err)
		response.Unauthorized(w, "Google authentication failed")
		return
	}

	result, err := a.authService.LoginWithGoogle(r.Context(), info.Email, a.tracking(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	a.setSessionCookies(w, result)
	http.Redirect(w, r, a.frontendURL, http.StatusFound)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := a.authService.Logout(r.Context(), sess.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.tokens.ExpiredSessionCookie())
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	me, err := a.authService.Me(r.Context(), sess.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, me)
}

// VerifyPassword implements AuthHandler. A successful check stamps the
// session, opening the step-up window for audit trail access.
func (a *AuthHandlerImpl) VerifyPassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req auth.VerifyPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("VerifyPassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.VerifyPassword(r.Context(), sess.ID, sess.UserID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password verified", nil)
}
