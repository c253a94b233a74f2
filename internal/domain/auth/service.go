package auth

import (
	"context"
)

// Service defines the authentication service interface
type Service interface {
	RegisterTenant(ctx context.Context, req RegisterTenantRequest, tracking SessionTrackingRequest) (*LoginResponse, error)
	Login(ctx context.Context, req LoginRequest, tracking SessionTrackingRequest) (*LoginResponse, error)
	LoginWithGoogle(ctx context.Context, email string, tracking SessionTrackingRequest) (*LoginResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID string) (*MeResponse, error)

	// VerifyPassword re-checks the caller's password and stamps the session
	// with a fresh audit verification time (step-up authentication).
	VerifyPassword(ctx context.Context, sessionID, userID string, req VerifyPasswordRequest) error
}
