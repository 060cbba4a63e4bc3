package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/Fresh-Industries/InflateMate-sub005/internal/cache"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/clock"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/config"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/handler"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/middleware"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/notification"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/repository"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/router"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/scheduler"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/service"
	"github.com/Fresh-Industries/InflateMate-sub005/internal/service/ports"
	"github.com/pressly/goose/v3"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
)

const migrationsDir = "migrations"

type App struct {
	cfg           *config.Config
	log           logger.Logger
	db            *dbpg.DB
	businessCache *cache.BusinessCache
	httpServer    *http.Server
	scheduler     *scheduler.Scheduler
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"rental-hold",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	if err = app.runMigrations(); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	if err = app.initDB(); err != nil {
		return nil, fmt.Errorf("init db: %w", err)
	}

	if err = app.initServices(); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initServices() error {
	clk := clock.NewSystem()

	reservationRepo := repository.NewReservationRepo(a.db, clk)
	businessRepo := repository.NewBusinessRepo(a.db)
	skuRepo := repository.NewSKURepo(a.db)

	businessCache, err := cache.NewBusinessCache(cache.Config{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
		TTL:      a.cfg.Redis.TTL,
	}, a.log)
	if err != nil {
		return fmt.Errorf("init business cache: %w", err)
	}
	a.businessCache = businessCache

	// A disabled cache must stay a nil interface, not a typed nil.
	var cachePort ports.BusinessCache
	if businessCache != nil {
		cachePort = businessCache
	}

	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	reservationService := service.NewReservationService(
		reservationRepo,
		businessRepo,
		cachePort,
		n,
		clk,
		a.log,
		service.ReservationConfig{
			HoldTTL:        a.cfg.Hold.TTL,
			RetryAttempts:  a.cfg.Hold.RetryAttempts,
			RetryBaseDelay: a.cfg.Hold.RetryBaseDelay,
			TxTimeout:      a.cfg.Hold.TxTimeout,
			ExpiryGrace:    a.cfg.Scheduler.Grace,
		},
	)
	availabilityService := service.NewAvailabilityService(reservationRepo, businessRepo, skuRepo, cachePort)
	catalogService := service.NewCatalogService(businessRepo, skuRepo, cachePort, clk)

	a.scheduler = scheduler.New(
		reservationService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	h := handler.NewHandler(reservationService, availabilityService, catalogService)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	if a.businessCache != nil {
		if err := a.businessCache.Close(); err != nil {
			a.log.LogAttrs(context.Background(), logger.WarnLevel, "close business cache",
				logger.String("error", err.Error()),
			)
		}
	}

	if err := a.db.Master.Close(); err != nil {
		return fmt.Errorf("close db: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
