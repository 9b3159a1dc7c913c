package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"performer-directory-backend/internal/captcha"
	"performer-directory-backend/internal/config"
	"performer-directory-backend/internal/database"
	"performer-directory-backend/internal/email"
	"performer-directory-backend/internal/handlers"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/logger"
	"performer-directory-backend/internal/middleware"
	"performer-directory-backend/internal/payments"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/supabase"
	"performer-directory-backend/internal/telemetry"
	"performer-directory-backend/internal/validator"
)

func newServeCmd() *cobra.Command {
	var runMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), runMigrations)
		},
	}

	cmd.Flags().BoolVar(&runMigrations, "migrate", true, "apply pending migrations on startup when DATABASE_URL is set")
	return cmd
}

func serve(parent context.Context, runMigrations bool) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
	}, log)
	if err != nil {
		return err
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(tctx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	dir := locations.Default()
	v := validator.New(dir)

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		return err
	}
	storageClient := supabase.NewStorageClient(cfg.SupabaseURL, cfg.StorageKey(), cfg.SupabaseStorageBucket)
	authClient := supabase.NewAuthClient(supabaseClient)

	// Direct database connection; without it the directory is served read-only
	// from the hosted REST API.
	var (
		pinger   handlers.Pinger
		reader   services.ProfileReader = supabase.NewRestCatalog(supabaseClient)
		profiles services.ProfileStore
		roles    services.RoleStore
		images   services.ImageStore   = services.Unavailable{}
		contacts services.ContactStore = services.Unavailable{}
		listings services.ListingStore = services.Unavailable{}
	)
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set: profile browsing uses the REST API and all writes return 503")
	} else {
		db, err := database.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()

		if runMigrations {
			if err := applyMigrations(ctx, db, log); err != nil {
				log.Warn("migration failed", zap.Error(err))
			}
		}

		dbClient := supabase.NewDatabaseClient(db)
		pinger = dbClient
		reader, profiles, roles = dbClient, dbClient, dbClient
		images, contacts, listings = dbClient, dbClient, dbClient
	}

	sender, err := newSender(cfg)
	if err != nil {
		return err
	}

	access := services.NewAccess(roles)
	issuer := captcha.NewIssuer(cfg.CaptchaSecret, cfg.CaptchaTTL)
	checkout := payments.NewClient(cfg.CheckoutEndpoint, cfg.SupabasePublishableKey)

	profileService := services.NewProfileService(reader, profiles, access, v, dir, cfg.PlaceholderImageURL, log)
	imageService := services.NewImageService(reader, images, storageClient, access, log)
	contactService := services.NewContactService(reader, contacts, issuer, v, log)
	listingService := services.NewListingService(listings, v, log)
	relayService := services.NewRelayService(contacts, sender, v, cfg.EmailFrom, cfg.AdminNotificationEmail, log)
	billingService := services.NewBillingService(checkout, profiles, v, cfg.PaymentWebhookSecret, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		Log:       log,
		Auth:      middleware.AuthMiddleware(cfg),
		Admin:     middleware.RequireAdmin(access, log),
		DB:        pinger,
		Reference: handlers.NewReferenceHandler(dir),
		Profiles:  handlers.NewProfilesHandler(profileService, log),
		Images:    handlers.NewImagesHandler(imageService, log),
		Inquiries: handlers.NewInquiriesHandler(contactService, log),
		Listings:  handlers.NewListingsHandler(listingService, log),
		Sessions:  handlers.NewAuthHandler(authClient, access, v, log),
		Checkout:  handlers.NewCheckoutHandler(billingService, log),
		Webhook:   handlers.NewWebhookHandler(billingService, log),
		AdminDesk: handlers.NewAdminHandler(contactService, listingService, log),
		Relays:    handlers.NewRelaysHandler(relayService, log),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           rootHandler(router, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// rootHandler applies the API CORS policy everywhere except the relay
// functions, which answer their own preflights.
func rootHandler(router http.Handler, allowedOrigins []string) http.Handler {
	api := middleware.APICORS(allowedOrigins).Handler(router)
	mux := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/functions/") {
			router.ServeHTTP(w, r)
			return
		}
		api.ServeHTTP(w, r)
	})
	return telemetry.Handler(mux, "performer-directory")
}

func newSender(cfg *config.Config) (email.Sender, error) {
	switch cfg.EmailProvider {
	case "smtp":
		return email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword), nil
	case "resend":
		return email.NewResendSender(cfg.ResendAPIBaseURL, cfg.ResendAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.EmailProvider)
	}
}
