package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/voidstaffos/headoffice-backend-go/internal/config"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/session"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/tenant"
	"github.com/voidstaffos/headoffice-backend-go/internal/domain/user"
	"github.com/voidstaffos/headoffice-backend-go/internal/handler/http/middleware"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sessiontoken"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth         AuthHandler
	Employee     EmployeeHandler
	Review       ReviewHandler
	Absence      AbsenceHandler
	Offboarding  OffboardingHandler
	GDPR         GDPRHandler
	Compensation CompensationHandler
	Recruitment  RecruitmentHandler
	Notification NotificationHandler
	Admin        AdminHandler
}

func NewRouter(cfg *config.Config, tokens sessiontoken.Service, sessions session.Repository, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "headoffice"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.CSRFHeader},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	globalLimiter := middleware.NewRateLimiter(cfg.RateLimit.GlobalPerMinute)
	authLimiter := middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute)
	r.Use(globalLimiter.Handler)

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			// Tighter limit on credential endpoints.
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Handler)
				r.Post("/register", h.Auth.Register)
				r.Post("/login", h.Auth.Login)
			})
			r.Get("/login/oauth/google", h.Auth.LoginWithGoogle)
			r.Get("/oauth/callback/google", h.Auth.OAuthCallbackGoogle)

			r.Group(func(r chi.Router) {
				r.Use(middleware.SessionAuth(tokens, sessions))
				r.Get("/me", h.Auth.Me)
				r.Group(func(r chi.Router) {
					r.Use(middleware.CSRF)
					r.Post("/logout", h.Auth.Logout)
					r.Group(func(r chi.Router) {
						r.Use(authLimiter.Handler)
						r.Post("/verify-password", h.Auth.VerifyPassword)
					})
				})
			})
		})

		// Everything below requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.SessionAuth(tokens, sessions))
			r.Use(middleware.CSRF)

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Post("/", h.Employee.Create)
				r.Get("/me", h.Employee.GetMyProfile)
				r.Get("/my-team", h.Employee.ListMyTeam)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
				r.Get("/{employeeID}/reviews", h.Review.ListForEmployee)
				r.Get("/{employeeID}/compensation", h.Compensation.GetEmployeeHistory)
				r.Get("/{employeeID}/compensation/current", h.Compensation.GetCurrent)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", h.Review.CreateManagerReview)
				r.Post("/self", h.Review.CreateSelfReflection)
				r.Get("/my-status", h.Review.GetMyStatus)
				r.Get("/{id}", h.Review.Get)
				r.Put("/{id}", h.Review.Update)
				r.Post("/{id}/commit", h.Review.Commit)
				r.Post("/{id}/uncommit", h.Review.Uncommit)
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/", h.Absence.CreateLeaveRequest)
				r.Get("/my", h.Absence.ListMyLeaveRequests)
				r.Get("/pending", h.Absence.ListPendingLeaveRequests)
				r.Get("/{id}", h.Absence.GetLeaveRequest)
				r.Post("/{id}/approve", h.Absence.ApproveLeaveRequest)
				r.Post("/{id}/reject", h.Absence.RejectLeaveRequest)
				r.Post("/{id}/cancel", h.Absence.CancelLeaveRequest)
			})

			// Absence insights are a premium module; admins can evaluate it
			// regardless of tier.
			r.Route("/absence-insights", func(r chi.Router) {
				r.Use(middleware.RequireTierOrRole(tenant.TierProfessional, user.RoleAdmin))
				r.Get("/", h.Absence.ListInsights)
				r.Get("/{id}", h.Absence.GetInsight)
				r.Put("/{id}/status", h.Absence.UpdateInsightStatus)
				r.With(middleware.RequirePermission(user.PermissionInsightsRunDetect)).
					Post("/run-detection", h.Absence.RunDetection)
			})

			r.Route("/offboarding", func(r chi.Router) {
				r.Get("/", h.Offboarding.List)
				r.Post("/", h.Offboarding.Initiate)
				r.Get("/{id}", h.Offboarding.Get)
				r.Put("/{id}/checklist/{itemID}", h.Offboarding.UpdateChecklistItem)
				r.Post("/{id}/complete", h.Offboarding.Complete)
				r.Post("/{id}/cancel", h.Offboarding.Cancel)
				r.Get("/{id}/handover", h.Offboarding.ListHandoverItems)
				r.Post("/{id}/handover", h.Offboarding.CreateHandoverItem)
				r.Post("/{id}/handover/{itemID}/complete", h.Offboarding.CompleteHandoverItem)
				r.Get("/{id}/exit-interview", h.Offboarding.GetExitInterview)
				r.Put("/{id}/exit-interview", h.Offboarding.SubmitExitInterview)
			})

			r.Route("/gdpr", func(r chi.Router) {
				r.Get("/", h.GDPR.List)
				r.Post("/", h.GDPR.OpenRequest)
				r.Get("/my", h.GDPR.ListMine)
				r.Get("/{id}", h.GDPR.Get)
				r.Post("/{id}/process", h.GDPR.Process)
				r.Post("/{id}/reject", h.GDPR.Reject)
			})

			r.Route("/compensation", func(r chi.Router) {
				r.Route("/pay-bands", func(r chi.Router) {
					r.Get("/", h.Compensation.ListPayBands)
					r.Post("/", h.Compensation.CreatePayBand)
					r.Put("/{id}", h.Compensation.UpdatePayBand)
					r.Delete("/{id}", h.Compensation.DeletePayBand)
				})
				r.Post("/records", h.Compensation.CreateRecord)
			})

			// Recruitment is a premium module.
			r.Route("/opportunities", func(r chi.Router) {
				r.Use(middleware.RequireTierOrRole(tenant.TierProfessional, user.RoleAdmin))
				r.Get("/", h.Recruitment.ListOpportunities)
				r.Post("/", h.Recruitment.CreateOpportunity)
				r.Get("/{id}", h.Recruitment.GetOpportunity)
				r.Post("/{id}/close", h.Recruitment.CloseOpportunity)
				r.Get("/{id}/applications", h.Recruitment.ListApplications)
				r.Post("/{id}/applications", h.Recruitment.SubmitApplication)
			})
			r.Put("/applications/{applicationID}/stage", h.Recruitment.AdvanceApplication)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notification.List)
				r.Get("/unread-count", h.Notification.UnreadCount)
				r.Get("/stream", h.Notification.Stream)
				r.Post("/mark-read", h.Notification.MarkAsRead)
				r.Post("/mark-all-read", h.Notification.MarkAllAsRead)
				r.Delete("/{id}", h.Notification.Delete)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Get("/users", h.Admin.ListUsers)
				r.Put("/users/{id}/role", h.Admin.UpdateUserRole)
				r.Post("/users/{id}/deactivate", h.Admin.DeactivateUser)
				r.Get("/tenant", h.Admin.GetTenant)
				r.Put("/tenant/tier", h.Admin.UpdateTenantTier)

				// The audit trail needs a fresh password re-verification.
				r.Route("/audit", func(r chi.Router) {
					r.Use(middleware.RequireAuditAccess(cfg.Session.AuditReauthWindow))
					r.Get("/", h.Admin.ListAuditEvents)
					r.Get("/by-target", h.Admin.ListAuditEventsByTarget)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	return r
}
