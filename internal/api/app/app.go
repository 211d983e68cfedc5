package app

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

	apihttp "github.com/pathfinder-tours/pathfinder/internal/api/http"
	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/oauth/google"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/internal/api/store/drivers/sqlite"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

const (
	// BuildVersion is overridden at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the API service and owns its lifecycle.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	hasher   *cryptox.Hasher
	signer   jwtx.Signer
	verifier jwtx.Verifier
	mail     mailer.Mailer

	credentialService   *service.CredentialService
	lifecycleService    *service.LifecycleService
	accountService      *service.AccountService
	customerService     *service.CustomerService
	newsletterService   *service.NewsletterService
	contactService      *service.ContactService
	mfaService          *service.MFAService
	oauthService        *service.OAuthService // Optional: only when Google sign-in is configured
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *apihttp.Router
}

// New validates cfg and initialises every dependency. The admin account is
// seeded before New returns.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "pathfinder-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initCrypto(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()

	ctx := slogx.WithContext(context.Background(), app.logger)
	if _, err := app.credentialService.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("api service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			_ = app.db.Close()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains in-flight requests, stops background work and closes
// the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down api service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	db, err := sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

func (app *Application) initCrypto() error {
	pepper, err := cryptox.LoadOrCreatePepper(app.cfg.PepperFile)
	if err != nil {
		return fmt.Errorf("failed to load pepper: %w", err)
	}
	app.hasher = cryptox.NewHasher(pepper)

	signer, err := jwtx.NewSignerHS256(app.cfg.TokenSecret)
	if err != nil {
		return fmt.Errorf("failed to create token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256(app.cfg.TokenSecret, app.cfg.TokenIssuer)
	if err != nil {
		return fmt.Errorf("failed to create token verifier: %w", err)
	}
	app.signer = signer
	app.verifier = verifier
	return nil
}

func (app *Application) initServices() {
	if app.cfg.SMTPHost != "" {
		app.mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
			Timeout:  10 * time.Second,
		})
	} else {
		app.mail = mailer.LogMailer{}
		app.logger.Warn("SMTP_HOST not set, outgoing mail will only be logged")
	}

	app.credentialService = &service.CredentialService{
		Store:  app.db,
		Hasher: app.hasher,
		Issuer: &jwtx.Issuer{
			Signer: app.signer,
			Issuer: app.cfg.TokenIssuer,
			TTL:    app.cfg.AccessTokenTTL,
		},
	}
	app.lifecycleService = &service.LifecycleService{
		Store:     app.db,
		Mailer:    app.mail,
		Hasher:    app.hasher,
		CI:        app.cfg.CI,
		TokenTTL:  app.cfg.ConfirmationTokenTTL,
		PublicURL: app.cfg.PublicURL,
	}
	app.accountService = &service.AccountService{Store: app.db, Hasher: app.hasher}
	app.customerService = &service.CustomerService{Store: app.db, Hasher: app.hasher}
	app.newsletterService = &service.NewsletterService{Store: app.db, Mailer: app.mail}
	app.contactService = &service.ContactService{Store: app.db}
	app.mfaService = &service.MFAService{Store: app.db, Issuer: app.cfg.TokenIssuer}

	if app.cfg.GoogleEnabled() {
		app.oauthService = &service.OAuthService{
			Store: app.db,
			Provider: google.New(google.Config{
				ClientID:     app.cfg.GoogleClientID,
				ClientSecret: app.cfg.GoogleClientSecret,
				CallbackURL:  app.cfg.GoogleCallbackURL,
			}),
			Hasher:     app.hasher,
			SessionTTL: app.cfg.SessionMaxAge,
		}
		app.logger.Info("google sign-in enabled")
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := apihttp.NewRouter(
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.RateLimits = app.cfg.RateLimits
	router.StrictGuards = app.cfg.StrictGuards
	router.CookieSecure = app.cfg.CookieSecure

	router.CredentialService = app.credentialService
	router.LifecycleService = app.lifecycleService
	router.AccountService = app.accountService
	router.CustomerService = app.customerService
	router.NewsletterService = app.newsletterService
	router.ContactService = app.contactService
	router.MFAService = app.mfaService
	router.OAuthService = app.oauthService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
