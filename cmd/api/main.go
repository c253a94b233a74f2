package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voidstaffos/headoffice-backend-go/internal/config"
	appHTTP "github.com/voidstaffos/headoffice-backend-go/internal/handler/http"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/cron"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/database"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/oauth"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sessiontoken"
	"github.com/voidstaffos/headoffice-backend-go/internal/pkg/sse"
	"github.com/voidstaffos/headoffice-backend-go/internal/repository/postgresql"
	absenceService "github.com/voidstaffos/headoffice-backend-go/internal/service/absence"
	adminService "github.com/voidstaffos/headoffice-backend-go/internal/service/admin"
	authService "github.com/voidstaffos/headoffice-backend-go/internal/service/auth"
	compensationService "github.com/voidstaffos/headoffice-backend-go/internal/service/compensation"
	employeeService "github.com/voidstaffos/headoffice-backend-go/internal/service/employee"
	gdprService "github.com/voidstaffos/headoffice-backend-go/internal/service/gdpr"
	notificationService "github.com/voidstaffos/headoffice-backend-go/internal/service/notification"
	offboardingService "github.com/voidstaffos/headoffice-backend-go/internal/service/offboarding"
	recruitmentService "github.com/voidstaffos/headoffice-backend-go/internal/service/recruitment"
	reviewService "github.com/voidstaffos/headoffice-backend-go/internal/service/review"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	tenantRepo := postgresql.NewTenantRepository(db)
	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	reviewRepo := postgresql.NewReviewRepository(db)
	leaveRepo := postgresql.NewLeaveRequestRepository(db)
	insightRepo := postgresql.NewInsightRepository(db)
	offboardingRepo := postgresql.NewOffboardingRepository(db)
	gdprRepo := postgresql.NewGDPRRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	recruitmentRepo := postgresql.NewRecruitmentRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	tokens := sessiontoken.NewService(cfg.Session.Secret, cfg.Session.CookieName, cfg.Session.SecureCookies)

	var googleSvc oauth.GoogleService
	if cfg.GoogleSSOEnabled() {
		googleSvc = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, logger, notificationService.Config{})
	defer notifSvc.Stop()

	authSvc := authService.NewAuthService(db, userRepo, tenantRepo, employeeRepo, sessionRepo, tokens, cfg.Session.TTL)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	reviewSvc := reviewService.NewReviewService(reviewRepo, employeeRepo, notifSvc, auditRepo)
	absenceSvc := absenceService.NewAbsenceService(leaveRepo, insightRepo, employeeRepo, userRepo, notifSvc)
	offboardingSvc := offboardingService.NewOffboardingService(offboardingRepo, employeeRepo, userRepo, notifSvc, auditRepo)
	gdprSvc := gdprService.NewGDPRService(db, gdprRepo, employeeRepo, userRepo, notifSvc, auditRepo, cfg.App.StoragePath)
	compensationSvc := compensationService.NewCompensationService(compensationRepo, employeeRepo, notifSvc)
	recruitmentSvc := recruitmentService.NewRecruitmentService(recruitmentRepo, userRepo, notifSvc)
	adminSvc := adminService.NewAdminService(userRepo, tenantRepo, sessionRepo, auditRepo)

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc, tokens, googleSvc, cfg.App.FrontendURL),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Review:       appHTTP.NewReviewHandler(reviewSvc),
		Absence:      appHTTP.NewAbsenceHandler(absenceSvc, absenceSvc),
		Offboarding:  appHTTP.NewOffboardingHandler(offboardingSvc),
		GDPR:         appHTTP.NewGDPRHandler(gdprSvc),
		Compensation: appHTTP.NewCompensationHandler(compensationSvc),
		Recruitment:  appHTTP.NewRecruitmentHandler(recruitmentSvc),
		Notification: appHTTP.NewNotificationHandler(notifSvc),
		Admin:        appHTTP.NewAdminHandler(adminSvc),
	}

	router := appHTTP.NewRouter(cfg, tokens, sessionRepo, handlers)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("absence-detection", 24*time.Hour, func(ctx context.Context) error {
		tenantIDs, err := tenantRepo.ListIDs(ctx)
		if err != nil {
			return err
		}
		for _, tenantID := range tenantIDs {
			raised, err := absenceSvc.RunDetection(ctx, tenantID)
			if err != nil {
				slog.Error("Absence detection failed", "tenant_id", tenantID, "error", err)
				continue
			}
			if raised > 0 {
				slog.Info("Absence insights raised", "tenant_id", tenantID, "count", raised)
			}
		}
		return nil
	})
	scheduler.AddJob("offboarding-deadlines", 24*time.Hour, func(ctx context.Context) error {
		sent, err := offboardingSvc.CheckDeadlines(ctx)
		if err != nil {
			return err
		}
		if sent > 0 {
			slog.Info("Offboarding reminders sent", "count", sent)
		}
		return nil
	})
	scheduler.AddJob("session-cleanup", time.Hour, func(ctx context.Context) error {
		deleted, err := sessionRepo.DeleteExpired(ctx, time.Now())
		if err != nil {
			return err
		}
		if deleted > 0 {
			slog.Info("Expired sessions removed", "count", deleted)
		}
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown error", "error", err)
	}
}
