package bootstrap

import (
	"context"
	"fmt"
	"time"

	"gettupp-server/internal/config"
	"gettupp-server/internal/middleware"
	"gettupp-server/internal/observability"
	"gettupp-server/internal/store"

	authHandler "gettupp-server/internal/auth/handler"
	authProcessor "gettupp-server/internal/auth/processor"
	"gettupp-server/internal/clients/mail"
	redisClient "gettupp-server/internal/clients/redis"
	"gettupp-server/internal/clients/turnstile"
	clientsHandler "gettupp-server/internal/crm/clients/handler"
	clientsProcessor "gettupp-server/internal/crm/clients/processor"
	invoicesHandler "gettupp-server/internal/crm/invoices/handler"
	invoicesProcessor "gettupp-server/internal/crm/invoices/processor"
	leadsHandler "gettupp-server/internal/crm/leads/handler"
	leadsProcessor "gettupp-server/internal/crm/leads/processor"
	shootsHandler "gettupp-server/internal/crm/shoots/handler"
	shootsProcessor "gettupp-server/internal/crm/shoots/processor"
	reportsHandler "gettupp-server/internal/reports/handler"
	reportsProcessor "gettupp-server/internal/reports/processor"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Handlers
	AuthHandler     authHandler.Handler
	LeadsHandler    leadsHandler.Handler
	ClientsHandler  clientsHandler.Handler
	ShootsHandler   shootsHandler.Handler
	InvoicesHandler invoicesHandler.Handler
	ReportsHandler  reportsHandler.Handler

	// Rate limiter for the public intake endpoint
	IntakeLimiter gin.HandlerFunc

	// Redis client (for cleanup)
	Redis *redisClient.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	stripe.Key = cfg.Services.StripeSecretKey

	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	mailClient, err := mail.NewResendClient(cfg.Services.ResendAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create resend client: %w", err)
	}

	turnstileClient := turnstile.NewClient(cfg.Services.TurnstileSecretKey, logger)

	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	deps.IntakeLimiter = middleware.RateLimit(deps.Redis, cfg.Server.IntakeRateLimit, time.Minute, logger)

	authProc := authProcessor.New(&deps.Store, cfg.Auth.JWTSecret, logger)
	deps.AuthHandler = authHandler.New(authProc, logger)

	leadsProc := leadsProcessor.New(&deps.Store, logger, mailClient, turnstileClient, leadsProcessor.NotifyConfig{
		Sender:      cfg.Services.DefaultEmailSender,
		StudioInbox: cfg.Services.StudioInboxAddress,
	})
	deps.LeadsHandler = leadsHandler.New(leadsProc, logger)

	clientsProc := clientsProcessor.New(&deps.Store, logger)
	deps.ClientsHandler = clientsHandler.New(clientsProc, logger)

	shootsProc := shootsProcessor.New(&deps.Store, logger)
	deps.ShootsHandler = shootsHandler.New(shootsProc, logger)

	invoicesProc := invoicesProcessor.New(&deps.Store, cfg.Services.StripeWebhookSecret, cfg.Services.WebAppURI, logger)
	deps.InvoicesHandler = invoicesHandler.New(invoicesProc, logger)

	reportsProc := reportsProcessor.New(reportsProcessor.SimulatedSources(), logger)
	deps.ReportsHandler = reportsHandler.New(reportsProc, logger)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup() {
	if d.Redis != nil {
		d.Redis.Close()
	}
}
