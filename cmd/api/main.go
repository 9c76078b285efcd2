package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/config"
	"github.com/hiringdekho/hiring-dekho/internal/database"
	"github.com/hiringdekho/hiring-dekho/internal/handlers"
	"github.com/hiringdekho/hiring-dekho/internal/mailer"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Database Connection
	db := database.Connect(cfg.Database)
	defer database.Close(db)

	// 3. Core Services
	sessions := auth.NewSessionManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	profiles := services.NewProfileService(db)
	jobs := services.NewJobService(db)
	seoService := services.NewSEOService(db)
	llmService := services.NewLLMService(newCompleter(ctx, cfg.LLM), profiles, jobs)

	deps := handlers.Deps{
		Sessions:     sessions,
		Google:       auth.NewGoogleLogin(cfg.Auth.GoogleClientID, cfg.Auth.GoogleClientSecret, cfg.Auth.GoogleRedirectURL),
		Roles:        services.NewRoleService(cfg.AdminEmail, profiles, sessions, seoService),
		Jobs:         jobs,
		Applications: services.NewApplicationService(db, jobs, profiles, services.NewMatcherService()),
		Profiles:     profiles,
		Blogs:        services.NewBlogService(db),
		SEO:          seoService,
		Analytics:    services.NewAnalyticsService(db),
		LLM:          llmService,
		Leads:        services.NewLeadService(newMailSender(ctx, cfg.Mail), mailConfig(cfg.Mail)),
		CORSOrigins:  cfg.Server.CORSOrigins,
	}
	if deps.Google == nil {
		log.Println("Google sign-in disabled: GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set")
	}
	if cfg.AdminEmail == "" {
		log.Println("ADMIN_EMAIL not set: no account will resolve to the admin role")
	}

	// 4. Router & Server
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handlers.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Addr)
	if err := runServer(ctx, srv, shutdownTimeout); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// runServer serves until ctx is cancelled, then shuts down within timeout.
func runServer(ctx context.Context, srv httpServer, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// newCompleter returns nil (AI endpoints answer 503) when Gemini is not configured.
func newCompleter(ctx context.Context, cfg config.LLMConfig) services.Completer {
	if cfg.GeminiAPIKey == "" {
		log.Println("AI generation disabled: GEMINI_API_KEY not set")
		return nil
	}
	c, err := services.NewGeminiCompleter(ctx, cfg.GeminiAPIKey, cfg.Model)
	if err != nil {
		log.Printf("AI generation disabled: %v", err)
		return nil
	}
	log.Printf("Gemini client ready (%s)", cfg.Model)
	return c
}

func newMailSender(ctx context.Context, cfg config.MailConfig) mailer.Sender {
	if cfg.Transport != "gmail" {
		return mailer.NewSMTPSender(mailConfig(cfg))
	}

	log.Println("Initializing Gmail Client...")
	httpClient, err := auth.GetGmailClient(ctx, cfg.GmailCredentials, cfg.GmailToken)
	if err != nil {
		log.Printf("Gmail sender unavailable: %v", err)
		return mailer.NewGmailSender(nil)
	}
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		log.Printf("Failed to create Gmail Service: %v", err)
		return mailer.NewGmailSender(nil)
	}
	log.Println("Gmail Service connected successfully.")
	return mailer.NewGmailSender(svc)
}

func mailConfig(cfg config.MailConfig) mailer.Config {
	return mailer.Config{
		Transport: cfg.Transport,
		Host:      cfg.Host,
		Port:      cfg.Port,
		Username:  cfg.Username,
		Password:  cfg.Password,
		From:      cfg.From,
		To:        cfg.LeadRecipients,
	}
}
