package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"habit-analytics/internal/config"
	domainsvc "habit-analytics/internal/domain/service"
	cronpkg "habit-analytics/internal/infrastructure/cron"
	"habit-analytics/internal/infrastructure/kafka"
	redisinfra "habit-analytics/internal/infrastructure/redis"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/internal/service"
	"habit-analytics/internal/transport/grpc"
	"habit-analytics/internal/transport/http/handler"
	"habit-analytics/internal/transport/http/middleware"
	"habit-analytics/pkg/dates"
	"habit-analytics/pkg/jwt"

	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout    = 30 * time.Second
	rateLimitSweep     = time.Minute
	reconcileLockName  = "streak-reconcile"
	defaultRatePerMin  = 100
	defaultHTTPTimeout = 15 * time.Second
)

// App represents the application
type App struct {
	cfg     *config.Config
	log     *logger.Logger
	clock   dates.Clock
	tokens  *jwt.TokenManager
	habits  domainsvc.HabitService
	reports domainsvc.ReportService

	httpServer  *http.Server
	grpcServer  *grpc.Server
	rateLimiter *middleware.RateLimiter
	streakJob   *cronpkg.StreakJob

	applied int
	closers []func()
}

// New wires storage, services and transports from cfg
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	loc, err := cfg.Analytics.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:    cfg,
		log:    log,
		clock:  dates.SystemClock(loc),
		tokens: jwt.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.Issuer),
	}

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.applied = store.applied
	a.closers = append(a.closers, store.close)

	// A disabled producer must stay a nil interface.
	var publisher domainsvc.EventPublisher
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&cfg.Kafka, log)
		publisher = producer
		a.closers = append(a.closers, func() {
			if err := producer.Close(); err != nil {
				log.Warn("failed to close kafka producer", "error", err)
			}
		})
		log.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	a.habits = service.NewHabitService(store.habits, store.logs, store.categories, publisher, a.clock, log)
	engine := service.NewAnalyticsEngine(a.clock, log)
	a.reports = service.NewReportService(
		store.habits,
		store.logs,
		engine,
		service.NewInsightGenerator(engine, log),
		service.NewCalendarProjector(a.clock, log),
	)
	log.Info("Services initialized", "timezone", loc.String())

	if cfg.Scheduler.Enabled {
		var locker cronpkg.Locker
		if cfg.Redis.Enabled {
			client, err := redisinfra.NewClient(ctx, &cfg.Redis)
			if err != nil {
				a.Close()
				return nil, err
			}
			a.closers = append(a.closers, func() {
				if err := client.Close(); err != nil {
					log.Warn("failed to close redis client", "error", err)
				}
			})
			locker = redisinfra.NewLock(client, reconcileLockName, cfg.Scheduler.LockTTL)
			log.Info("Connected to Redis", "addr", cfg.Redis.Addr)
		}
		a.streakJob = cronpkg.NewStreakJob(a.habits, locker, cfg.Scheduler.ReconcileInterval, log)
	} else {
		log.Info("Streak reconciler is disabled in configuration")
	}

	a.initHTTPServer()
	a.grpcServer = grpc.NewServer(grpc.NewAnalyticsHandler(a.reports, a.clock, log), a.tokens, cfg.GRPC.Port, log)

	return a, nil
}

// initHTTPServer initializes the HTTP server with all handlers and middleware
func (a *App) initHTTPServer() {
	rpm := a.cfg.HTTP.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRatePerMin
	}
	a.rateLimiter = middleware.NewRateLimiter(rpm)

	router := handler.NewRouter(
		handler.NewHabitHandler(a.habits, a.clock, a.log),
		handler.NewReportHandler(a.reports, a.clock, a.log),
		handler.NewCategoryHandler(a.habits, a.log),
		middleware.NewAuthMiddleware(a.tokens),
		a.rateLimiter,
		a.log,
	)

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.HTTP.Port),
		Handler:      router.Setup(),
		ReadTimeout:  orDefault(a.cfg.HTTP.ReadTimeout, defaultHTTPTimeout),
		WriteTimeout: orDefault(a.cfg.HTTP.WriteTimeout, defaultHTTPTimeout),
	}
}

// Run starts the application and blocks until SIGINT, SIGTERM or a server
// failure
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.streakJob != nil {
		if err := a.streakJob.Start(); err != nil {
			return fmt.Errorf("failed to start streak reconciler: %w", err)
		}
	}

	a.rateLimiter.Cleanup(ctx, rateLimitSweep)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.log.Info("Starting HTTP server", "addr", a.httpServer.Addr)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := a.grpcServer.Start(); err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.log.Info("Shutting down server...")
		a.shutdown()
		return nil
	})

	a.log.Info("Service started", "service", a.cfg.Service.Name, "http_port", a.cfg.HTTP.Port, "grpc_port", a.cfg.GRPC.Port)

	return g.Wait()
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Warn("HTTP server shutdown error", "error", err)
	}

	a.grpcServer.Stop()

	if a.streakJob != nil {
		a.streakJob.Stop()
	}

	a.Close()
	a.log.Info("Server shutdown complete")
}

// Close releases storage, broker and cache connections in reverse order
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// MigrationsApplied reports how many migrations New applied
func (a *App) MigrationsApplied() int {
	return a.applied
}

// ReconcileStreaks runs one reconcile pass outside the scheduler
func (a *App) ReconcileStreaks(ctx context.Context) (int, error) {
	return a.habits.ReconcileStreaks(ctx)
}

// Habits exposes the write-side service
func (a *App) Habits() domainsvc.HabitService {
	return a.habits
}

// Reports exposes the read-side service
func (a *App) Reports() domainsvc.ReportService {
	return a.reports
}

func orDefault(v, fallback time.Duration) time.Duration {
	if v <= 0 {
		return fallback
	}
	return v
}
