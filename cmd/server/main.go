package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/database"
	"travel-booking-platform/internal/handlers"
	"travel-booking-platform/internal/logging"
	"travel-booking-platform/internal/middleware"
	"travel-booking-platform/internal/models"
	"travel-booking-platform/internal/repositories"
	"travel-booking-platform/internal/services"
	"travel-booking-platform/internal/session"
	"travel-booking-platform/web/templates/emails"
)

// stores groups the catalog and form repositories of the selected backend
type stores struct {
	products   repositories.ProductRepository
	newsletter repositories.NewsletterRepository
	listeners  repositories.ListenerRepository
	contest    repositories.ContestRepository
	close      func() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open stores", zap.String("store", cfg.Database.Store), zap.Error(err))
	}
	defer st.close()

	// Email goes out on a bounded worker pool
	email := services.NewEmailService(cfg.Email, logger)
	notifier, err := services.NewAsyncNotifier(email, cfg.Email.Workers, logger)
	if err != nil {
		logger.Fatal("Failed to initialize notifier", zap.Error(err))
	}

	storage := services.NewStorageService(ctx, cfg.Storage, logger)

	catalog := services.NewCatalogService(st.products, st.listeners, logger)
	carts := services.NewCartService(st.products, notifier, emails.CartThankYou, logger)
	newsletter := services.NewNewsletterService(st.newsletter, logger)
	contest := services.NewContestService(storage, st.contest, logger)

	scheduler := services.NewScheduler(logger)
	inSeason := services.NewInSeasonJob(st.products, st.listeners, email, emails.InSeason, logger)
	if err := scheduler.ScheduleInSeason(cfg.Jobs.InSeasonSchedule, inSeason); err != nil {
		logger.Fatal("Failed to schedule in-season notifications", zap.Error(err))
	}
	scheduler.Start()

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	go cleanupVisitors(ctx, limiter, logger)

	router := handlers.NewRouter(handlers.Dependencies{
		Logger:       logger,
		Store:        session.NewStore(cfg.Session, cfg.IsProduction()),
		Weather:      services.NewWeatherService(),
		Products:     st.products,
		Tours:        repositories.NewTourRepository(models.DefaultTours()),
		Catalog:      catalog,
		Carts:        carts,
		Newsletter:   newsletter,
		Contest:      contest,
		Limiter:      limiter,
		UploadDir:    cfg.Storage.UploadDir,
		MaxBodyBytes: cfg.Storage.MaxUploadBytes,
		Production:   cfg.IsProduction(),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Meadowlark Travel started; press Ctrl-C to terminate",
			zap.String("env", cfg.Server.Env),
			zap.String("addr", "http://"+cfg.Addr()),
			zap.String("store", cfg.Database.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down")
	case err := <-serverErr:
		logger.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	scheduler.Stop(shutdownCtx)
	if err := notifier.Close(cfg.Server.ShutdownTimeout); err != nil {
		logger.Warn("Pending notifications were not delivered", zap.Error(err))
	}
}

// openStores selects the in-memory or Postgres repositories
func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.Database.Store == "memory" {
		logger.Info("Using in-memory stores")
		return &stores{
			products:   repositories.NewMemoryProductRepository(models.DefaultCatalog()),
			newsletter: repositories.NewMemoryNewsletterRepository(),
			listeners:  repositories.NewMemoryListenerRepository(),
			contest:    repositories.NewMemoryContestRepository(),
			close:      func() error { return nil },
		}, nil
	}

	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established successfully")

	applied, err := db.RunMigrations(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	for _, m := range applied {
		logger.Info("Applied migration", zap.Int("version", m.Version), zap.String("name", m.Name))
	}

	seeded, err := database.SeedCatalog(ctx, db.DB, models.DefaultCatalog())
	if err != nil {
		db.Close()
		return nil, err
	}
	if seeded > 0 {
		logger.Info("Seeded vacation catalog", zap.Int("products", seeded))
	}

	return &stores{
		products:   repositories.NewPostgresProductRepository(db.DB),
		newsletter: repositories.NewPostgresNewsletterRepository(db.DB),
		listeners:  repositories.NewPostgresListenerRepository(db.DB),
		contest:    repositories.NewPostgresContestRepository(db.DB),
		close:      db.Close,
	}, nil
}

// cleanupVisitors forgets idle rate limiter entries until ctx is done
func cleanupVisitors(ctx context.Context, limiter *middleware.IPRateLimiter, logger *zap.Logger) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := limiter.Cleanup(); removed > 0 {
				logger.Debug("Removed idle rate limit entries", zap.Int("count", removed))
			}
		}
	}
}
