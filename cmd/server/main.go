package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/simaogato/wealthflow-planner/internal/adapter/cache"
	grpcadapter "github.com/simaogato/wealthflow-planner/internal/adapter/grpc"
	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/memory"
	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthflow-planner/internal/adapter/repository/sqlite"
	"github.com/simaogato/wealthflow-planner/internal/config"
	"github.com/simaogato/wealthflow-planner/internal/domain"
	"github.com/simaogato/wealthflow-planner/internal/logging"
	"github.com/simaogato/wealthflow-planner/internal/metrics"
	"github.com/simaogato/wealthflow-planner/internal/scenario"
	"github.com/simaogato/wealthflow-planner/internal/scheduler"
	"github.com/simaogato/wealthflow-planner/internal/usecase/dashboard"
	"github.com/simaogato/wealthflow-planner/internal/usecase/planner"
	"github.com/simaogato/wealthflow-planner/internal/usecase/seeder"
	"github.com/simaogato/wealthflow-planner/internal/usecase/snapshot"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	// 1. Configuration and logging
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// 2. Storage and cache
	repo, closeRepo, err := openSnapshotRepository(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open snapshot storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	planCache, closeCache := openPlanCache(ctx, cfg, logger)
	defer closeCache()

	// 3. Services (use cases)
	m := metrics.New()
	plannerService := planner.NewPlannerService(planCache, m, logger)
	dashboardService := dashboard.NewDashboardService(plannerService)
	snapshotService := snapshot.NewSnapshotService(repo, plannerService, m, logger)

	defaults := domain.PlanSettings{
		MonthlyIncome:   cfg.Defaults.MonthlyIncome,
		YearlyInflation: cfg.Defaults.YearlyInflation,
		HorizonMonths:   cfg.Defaults.HorizonMonths,
	}

	// 4. Baseline scenario: seed a first snapshot and record it on schedule
	var cronScheduler *scheduler.Scheduler
	if cfg.Snapshots.BaselineScenario != "" {
		baseline, err := scenario.Load(cfg.Snapshots.BaselineScenario)
		if err != nil {
			logger.Error("failed to load baseline scenario", "path", cfg.Snapshots.BaselineScenario, "error", err)
			os.Exit(1)
		}

		if _, err := seeder.NewBaselineSeeder(snapshotService).Seed(ctx, baseline); err != nil {
			logger.Error("failed to seed baseline snapshot", "error", err)
			os.Exit(1)
		}

		cronScheduler = scheduler.NewScheduler(ctx, snapshotService, baseline, cfg.Retention(), logger)
		if err := cronScheduler.Register(cfg.Snapshots.Cron); err != nil {
			logger.Error("failed to register snapshot job", "cron", cfg.Snapshots.Cron, "error", err)
			os.Exit(1)
		}
		cronScheduler.Start()
	}

	// 5. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger),
			grpcadapter.RecoveryInterceptor(logger),
			grpcadapter.AuthInterceptor(cfg.Server.APIToken, grpcadapter.HealthCheckMethod, grpcadapter.HealthWatchMethod),
		),
	)

	grpcadapter.RegisterPlannerServiceServer(grpcServer,
		grpcadapter.NewServer(plannerService, dashboardService, snapshotService, defaults))

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	healthSrv.SetServingStatus(grpcadapter.ServiceName, healthpb.HealthCheckResponse_SERVING)

	if cfg.Server.Reflection {
		reflection.Register(grpcServer)
	}

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		logger.Error("failed to listen", "addr", cfg.Server.GRPCAddr, "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server stopped with error", "error", err)
			stop()
		}
	}()

	// 6. Metrics endpoint
	metricsServer := &http.Server{
		Addr:              cfg.Server.MetricsAddr,
		Handler:           metricsMux(m),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", "addr", cfg.Server.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped with error", "error", err)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("shutting down gracefully")

	healthSrv.Shutdown()
	if cronScheduler != nil {
		cronScheduler.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("metrics server shutdown", "error", err)
	}

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

func metricsMux(m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// openSnapshotRepository selects the snapshot store named by storage.driver
func openSnapshotRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.SnapshotRepository, func(), error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case config.StoragePostgres:
		// The database may still be starting next to us
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.NewDB(connectCtx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("snapshot storage ready", "driver", config.StoragePostgres)
		return postgres.NewSnapshotRepository(db), func() { db.Close() }, nil

	case config.StorageSQLite:
		repo, err := sqlite.NewSnapshotRepository(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("snapshot storage ready", "driver", config.StorageSQLite, "path", cfg.Storage.SQLitePath)
		return repo, func() { repo.Close() }, nil

	default:
		logger.Info("snapshot storage ready", "driver", config.StorageMemory)
		return memory.NewSnapshotRepository(), func() {}, nil
	}
}

// openPlanCache selects the plan cache named by cache.driver.
// An unreachable Redis is logged; the cache then misses and plans are computed.
func openPlanCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.PlanCache, func()) {
	switch strings.ToLower(cfg.Cache.Driver) {
	case config.CacheRedis:
		redisCache := cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
		if err := redisCache.Ping(ctx); err != nil {
			logger.Warn("redis not reachable, plans will be computed until it is", "addr", cfg.Cache.RedisAddr, "error", err)
		}
		return redisCache, func() { redisCache.Close() }
	case config.CacheNone:
		return nil, func() {}
	default:
		return cache.NewMemoryCache(cfg.Cache.TTL), func() {}
	}
}
