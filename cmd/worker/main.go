package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsdiary/internal/app"
	"newsdiary/internal/config"
	"newsdiary/internal/domain/entity"
	"newsdiary/internal/infra/scraper"
	workerPkg "newsdiary/internal/infra/worker"
	"newsdiary/internal/observability/logging"
	envconfig "newsdiary/pkg/config"
)

func main() {
	scraper.MaybeRunChild()

	configPath := flag.String("config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	once := flag.Bool("once", false, "run one collection and exit")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg, warnings, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.Worker.CronSchedule),
		slog.String("timezone", cfg.Worker.Timezone),
		slog.Duration("collect_timeout", cfg.Worker.CollectTimeout),
		slog.Int("health_port", cfg.Worker.HealthPort),
		slog.Int("parallelism", cfg.Scraper.Parallelism),
		slog.String("engine", cfg.Scraper.Engine))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize components", slog.Any("error", err))
		os.Exit(1)
	}
	closeStore := func() {
		if err := components.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}

	// NEWSDIARY_WORKER_CATEGORIES="정치,경제" narrows scheduled runs; unset means all six
	categories, err := entity.ParseCategories(envconfig.GetEnvStringList("NEWSDIARY_WORKER_CATEGORIES", nil))
	if err != nil {
		logger.Error("invalid NEWSDIARY_WORKER_CATEGORIES", slog.Any("error", err))
		closeStore()
		os.Exit(1)
	}

	job := workerPkg.NewCollectJob(
		components.Collect,
		categories,
		cfg.Worker.CollectTimeout,
		workerPkg.NewWorkerMetrics(),
		logger,
	)

	code := 0
	if *once {
		if status := job.Run(ctx); status != workerPkg.StatusSuccess {
			code = 1
		}
	} else {
		code = run(ctx, logger, cfg, components, job)
	}
	closeStore()
	os.Exit(code)
}

// run starts the health server and the scheduler and blocks until ctx is
// canceled. It returns the process exit code.
func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, c *app.Components, job *workerPkg.CollectJob) int {
	scheduler, err := workerPkg.NewScheduler(cfg.Worker.CronSchedule, cfg.Worker.Timezone, job, logger)
	if err != nil {
		logger.Error("failed to create scheduler", slog.Any("error", err))
		return 1
	}

	healthAddr := fmt.Sprintf(":%d", cfg.Worker.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger, c.Fetcher)
	go func() {
		if err := healthServer.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	c.RefreshCounts(ctx)
	if cfg.Worker.RunOnStart {
		logger.Info("running initial collection")
		job.Run(ctx)
	}

	healthServer.SetReady(true)
	scheduler.Run(ctx)
	healthServer.SetReady(false)
	return 0
}
