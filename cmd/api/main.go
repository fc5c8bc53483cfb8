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
	"syscall"
	"time"

	"newsdiary/internal/app"
	"newsdiary/internal/config"
	hhttp "newsdiary/internal/handler/http"
	hauth "newsdiary/internal/handler/http/auth"
	"newsdiary/internal/infra/scraper"
	"newsdiary/internal/observability/logging"
	"newsdiary/internal/observability/tracing"
	envconfig "newsdiary/pkg/config"
)

// @title           News Diary API
// @version         1.0
// @description     Collects Naver news headlines per category and keeps a personal diary and calendar of issues.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Obtain a token from POST /auth/token and send it as "Bearer {token}".

func main() {
	scraper.MaybeRunChild()

	configPath := flag.String("config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	flag.Parse()

	logger := logging.NewLogger()
	slog.SetDefault(logger)

	cfg := loadConfig(logger, *configPath)
	validateCredentials(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := setupTracing(cfg)
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	components, err := app.Build(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize components", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := components.Close(); err != nil {
			logger.Error("failed to close store", slog.Any("error", err))
		}
	}()
	components.RefreshCounts(ctx)

	handler := setupRouter(logger, cfg, components)
	runServer(ctx, logger, cfg, handler)
}

// loadConfig reads and validates the configuration, exiting on failure.
func loadConfig(logger *slog.Logger, path string) *config.AppConfig {
	cfg, warnings, err := config.Load(path)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	for _, w := range warnings {
		logger.Warn("configuration fallback", slog.String("detail", w))
	}
	return cfg
}

// validateCredentials refuses to start with missing or weak operator
// credentials or JWT secret.
func validateCredentials(logger *slog.Logger, cfg *config.AppConfig) {
	if err := hauth.ValidateCredentials(cfg.Auth.User, cfg.Auth.Password); err != nil {
		logger.Error("operator credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
	if err := hauth.ValidateJWTSecret(cfg.Auth.JWTSecret); err != nil {
		logger.Error("JWT secret validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func setupTracing(cfg *config.AppConfig) func(context.Context) error {
	if cfg.API.TraceSampleRatio <= 0 {
		return func(context.Context) error { return nil }
	}
	return tracing.Setup(cfg.API.TraceSampleRatio)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

func setupRouter(logger *slog.Logger, cfg *config.AppConfig, c *app.Components) http.Handler {
	// 로그인 시도는 클라이언트당 5회 후 12초마다 1회
	tokenLimiter := hhttp.NewRateLimiter(12*time.Second, 5)
	tokenLimiter.TrustForwardedFor = envconfig.GetEnvBool("TRUST_PROXY_HEADERS", false)

	return hhttp.NewRouter(hhttp.RouterConfig{
		Logger:    logger,
		Articles:  c.Articles,
		Diary:     c.Diary,
		Calendar:  c.Calendar,
		Collector: c.Collect,
		Operator:  hauth.NewOperator(cfg.Auth.User, cfg.Auth.Password),
		Issuer:    hauth.NewIssuer(cfg.Auth.JWTSecret, cfg.API.TokenTTL),
		Health: &hhttp.HealthHandler{
			Version: getVersion(),
			Checks:  map[string]hhttp.Check{"storage": c.CheckStorage},
		},
		CollectTimeout: cfg.Worker.CollectTimeout,
		MaxBodyBytes:   int64(cfg.API.MaxBodyBytes),
		TokenLimiter:   tokenLimiter,
	})
}

// runServer serves until ctx is canceled, then shuts down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, handler http.Handler) {
	srv := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.API.Addr),
			slog.String("version", getVersion()),
			slog.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logger.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	case <-ctx.Done():
	}
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.API.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
