package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/voidstaffos/headoffice-backend-go/internal/domain/auth"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/employee"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sessiontoken"
	"github.com/voidstaffos/headoffice-backend-go/internal/repository/postgresql"
)

type AuthServiceImpl struct {
	db         *database.DB
	users      user.Repository
	tenants    tenant.Repository
	employees  employee.Repository
	sessions   session.Repository
	tokens     sessiontoken.Service
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(
	db *database.DB,
	users user.Repository,
	tenants tenant.Repository,
	employees employee.Repository,
	sessions session.Repository,
	tokens sessiontoken.Service,
	sessionTTL time.Duration,
) auth.Service {
	return &AuthServiceImpl{
		db:         db,
		users:      users,
		tenants:    tenants,
		employees:  employees,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

func hashPassword(password string) (*string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashed := string(hash)
	return &hashed, nil
}

// RegisterTenant implements auth.Service. The first user of a new tenant is
// its admin; tenant, user and employee rows are created in one transaction.
func (a *AuthServiceImpl) RegisterTenant(ctx context.Context, req auth.RegisterTenantRequest, tracking auth.SessionTrackingRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	t := &tenant.Tenant{
		Name: req.TenantName,
		Slug: req.TenantSlug,
		Tier: tenant.TierStarter,
	}
	u := &user.User{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         user.RoleAdmin,
		IsActive:     true,
	}
	emp := &employee.Employee{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		JobTitle:         "Administrator",
		HiredAt:          a.now(),
		EmploymentStatus: employee.StatusActive,
	}

	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := a.tenants.Create(txCtx, t); err != nil {
			return err
		}

		u.TenantID = t.ID
		if err := a.users.Create(txCtx, u); err != nil {
			return err
		}

		emp.TenantID = t.ID
		emp.UserID = &u.ID
		return a.employees.Create(txCtx, emp)
	})
	if err != nil {
		return nil, err
	}
	u.EmployeeID = &emp.ID

	return a.openSession(ctx, u, t, tracking)
}

// Login implements auth.Service.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, tracking auth.SessionTrackingRequest) (*auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := a.tenants.GetBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	u, err := a.users.GetByEmail(ctx, t.ID, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if u.PasswordHash == nil {
		return nil, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	return a.openSession(ctx, u, t, tracking)
}

// LoginWithGoogle implements auth.Service. The OAuth callback handler has
// already verified the Google identity; only an existing account may log in
// this way.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, tracking auth.SessionTrackingRequest) (*auth.LoginResponse, error) {
	u, err := a.users.GetByEmailAnyTenant(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrOAuthEmailNotFound
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	t, err := a.tenants.GetByID(ctx, u.TenantID)
	if err != nil {
		return nil, err
	}

	return a.openSession(ctx, u, t, tracking)
}

func (a *AuthServiceImpl) openSession(ctx context.Context, u *user.User, t *tenant.Tenant, tracking auth.SessionTrackingRequest) (*auth.LoginResponse, error) {
	csrfToken, err := sessiontoken.NewCSRFToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate csrf token: %w", err)
	}

	now := a.now()
	s := &session.Session{
		TenantID:   t.ID,
		UserID:     u.ID,
		EmployeeID: u.EmployeeID,
		Role:       u.Role,
		Tier:       t.Tier,
		CSRFToken:  csrfToken,
		IPAddress:  tracking.IPAddress,
		UserAgent:  tracking.UserAgent,
		ExpiresAt:  now.Add(a.sessionTTL),
	}

	if err := a.sessions.Create(ctx, s); err != nil {
		return nil, err
	}

	token, err := a.tokens.IssueToken(s.ID, s.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &auth.LoginResponse{
		Session:      s,
		SessionToken: token,
		CSRFToken:    csrfToken,
	}, nil
}

// Logout implements auth.Service.
func (a *AuthServiceImpl) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// Me implements auth.Service.
func (a *AuthServiceImpl) Me(ctx context.Context, userID string) (*auth.MeResponse, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	t, err := a.tenants.GetByID(ctx, u.TenantID)
	if err != nil {
		return nil, err
	}

	return &auth.MeResponse{
		UserID:     u.ID,
		TenantID:   u.TenantID,
		EmployeeID: u.EmployeeID,
		Email:      u.Email,
		Role:       string(u.Role),
		Tier:       int(t.Tier),
	}, nil
}

// VerifyPassword implements auth.Service. On success the session's audit
// verification time is stamped, opening the step-up window.
func (a *AuthServiceImpl) VerifyPassword(ctx context.Context, sessionID, userID string, req auth.VerifyPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if u.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.ErrInvalidCredentials
	}

	return a.sessions.SetAuditVerifiedAt(ctx, sessionID, a.now())
}
