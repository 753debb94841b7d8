package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mvillanueva/tindahan/internal"
	"github.com/mvillanueva/tindahan/internal/events"
	"github.com/mvillanueva/tindahan/internal/handler/admin"
	"github.com/mvillanueva/tindahan/internal/handler/pos"
	"github.com/mvillanueva/tindahan/internal/handler/storefront"
	"github.com/mvillanueva/tindahan/internal/middleware"
	"github.com/mvillanueva/tindahan/internal/pricing"
	"github.com/mvillanueva/tindahan/internal/repository"
	"github.com/mvillanueva/tindahan/internal/router"
	"github.com/mvillanueva/tindahan/internal/routes"
	"github.com/mvillanueva/tindahan/internal/service"
	"github.com/mvillanueva/tindahan/internal/token"
)

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize repository
	store := repository.NewStore(pool)

	// Initialize event publisher. NATS is optional; without it events are
	// discarded and only the alert worker loses functionality.
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsURL, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("NATS publisher initialized", "url", cfg.NatsURL)
	} else {
		logger.Warn("NATS_URL not set, domain events will be discarded")
	}

	// Initialize tax calculators. Online orders add VAT at checkout; walk-in
	// prices are VAT-inclusive so the terminal adds none by default.
	checkoutCalc := pricing.NewPercentageCalculator(cfg.Tax.CheckoutRate)
	var posCalc pricing.Calculator = pricing.NewNoTaxCalculator()
	if cfg.Tax.POSRate > 0 {
		posCalc = pricing.NewPercentageCalculator(cfg.Tax.POSRate)
	}

	// Initialize services
	catalogService := service.NewCatalogService(store)
	cartService := service.NewCartService(store)
	checkoutService := service.NewCheckoutService(store, checkoutCalc, publisher, logger)
	orderService := service.NewOrderService(store, publisher, logger)
	posService := service.NewPOSService(store, posCalc, publisher, logger)
	shiftService := service.NewShiftService(store, logger)
	proofService := service.NewPaymentProofService(store, logger)
	inventoryService := service.NewInventoryService(store, publisher, logger)
	reportService := service.NewReportService(store)

	signer := token.NewSigner(cfg.SessionSecret)
	passwordService := service.NewPasswordChangeService(store, signer,
		service.LogOTPSender{Logger: logger}, logger)

	// Build route dependencies
	storefrontDeps := routes.StorefrontDeps{
		ProductHandler:  storefront.NewProductHandler(catalogService, logger),
		CartHandler:     storefront.NewCartHandler(cartService, logger),
		CheckoutHandler: storefront.NewCheckoutHandler(checkoutService, logger),
		OrderHandler:    storefront.NewOrderHandler(orderService, proofService, logger),
		AccountHandler:  storefront.NewAccountHandler(passwordService, logger),
	}

	posDeps := routes.POSDeps{
		SaleHandler:   pos.NewSaleHandler(posService, logger),
		RefundHandler: pos.NewRefundHandler(posService, logger),
		ShiftHandler:  pos.NewShiftHandler(shiftService, logger),
	}

	adminDeps := routes.AdminDeps{
		InventoryHandler:    admin.NewInventoryHandler(inventoryService, logger),
		OrderHandler:        admin.NewOrderHandler(orderService, logger),
		PaymentProofHandler: admin.NewPaymentProofHandler(proofService, logger),
		ReportHandler:       admin.NewReportHandler(reportService, logger),
	}

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("tindahan")

	// Create router and register routes
	r := router.New(
		middleware.RequestID,
		metrics.Middleware,
		middleware.WithActor(store),
		middleware.WithRequestLogger(logger),
	)

	// Metrics endpoint (no auth required, should be firewalled in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.RegisterStorefrontRoutes(r, storefrontDeps)
	routes.RegisterPOSRoutes(r, posDeps)
	routes.RegisterAdminRoutes(r, adminDeps)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
