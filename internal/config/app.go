// Package config assembles the application configuration from an optional
// YAML file, a .env file and environment variables, in that order of
// increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	pkgconfig "newsdiary/internal/pkg/config"
)

// EnvConfigPath names the YAML file to load when no path is given explicitly.
const EnvConfigPath = "NEWSDIARY_CONFIG"

// metrics is shared by every Load call in the process.
var metrics = pkgconfig.NewConfigMetrics("newsdiary")

// AppConfig is the complete configuration of every binary.
type AppConfig struct {
	DataDir string        `yaml:"data_dir"`
	Storage StorageConfig `yaml:"storage"`
	Scraper ScraperConfig `yaml:"scraper"`
	Worker  WorkerConfig  `yaml:"worker"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"-"`
}

// StorageConfig selects the document store backend.
type StorageConfig struct {
	// Driver is "file", "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// DSN is the database source for the SQL drivers.
	DSN string `yaml:"dsn"`
}

// ScraperConfig controls how categories are scraped.
type ScraperConfig struct {
	Engine      string        `yaml:"engine"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxItems    int           `yaml:"max_items"`
	Parallelism int           `yaml:"parallelism"`
	MinInterval time.Duration `yaml:"min_interval"`
	UserAgent   string        `yaml:"user_agent"`
	BaseURL     string        `yaml:"base_url"`
}

// WorkerConfig controls scheduled collection.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression.
	CronSchedule string `yaml:"cron_schedule"`
	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone       string        `yaml:"timezone"`
	HealthPort     int           `yaml:"health_port"`
	CollectTimeout time.Duration `yaml:"collect_timeout"`
	// RunOnStart triggers one collection right after startup.
	RunOnStart bool `yaml:"run_on_start"`
}

// APIConfig controls the HTTP server.
type APIConfig struct {
	Addr            string        `yaml:"addr"`
	TokenTTL        time.Duration `yaml:"token_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int           `yaml:"max_body_bytes"`
	// TraceSampleRatio is the fraction of requests traced; 0 disables tracing.
	TraceSampleRatio float64 `yaml:"trace_sample_ratio"`
}

// AuthConfig holds the operator credentials. It is read from the
// environment only and never from the YAML file.
type AuthConfig struct {
	User      string
	Password  string
	JWTSecret string
}

// Default returns the configuration used when nothing is overridden.
func Default() AppConfig {
	return AppConfig{
		DataDir: "data",
		Storage: StorageConfig{Driver: "file"},
		Scraper: ScraperConfig{
			Engine:      "http",
			Timeout:     60 * time.Second,
			MaxItems:    20,
			Parallelism: 1,
		},
		Worker: WorkerConfig{
			CronSchedule:   "0 */3 * * *",
			Timezone:       "Asia/Seoul",
			HealthPort:     9091,
			CollectTimeout: 10 * time.Minute,
		},
		API: APIConfig{
			Addr:            ":8080",
			TokenTTL:        time.Hour,
			ShutdownTimeout: 5 * time.Second,
			MaxBodyBytes:    1 << 20,
		},
	}
}

// Load builds the configuration. path may be empty, in which case the file
// named by NEWSDIARY_CONFIG is used if set. A .env file in the working
// directory is loaded first without overriding variables already set.
// Invalid environment values fall back to the file or default value with a
// warning; the result is then validated as a whole.
func Load(path string) (*AppConfig, []string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, nil, err
		}
	}

	warnings := cfg.applyEnv(slog.Default())
	if err := cfg.Validate(); err != nil {
		return nil, warnings, err
	}
	return &cfg, warnings, nil
}

func (c *AppConfig) loadFile(path string) error {
	// #nosec G304 -- path comes from the operator (flag or environment)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *AppConfig) applyEnv(logger *slog.Logger) []string {
	o := pkgconfig.NewOverrides(logger, metrics)

	o.String("NEWSDIARY_DATA_DIR", "data_dir", &c.DataDir, nil)
	o.String("NEWSDIARY_STORAGE_DRIVER", "storage_driver", &c.Storage.Driver,
		pkgconfig.OneOf("file", "sqlite", "postgres"))
	o.String("NEWSDIARY_STORAGE_DSN", "storage_dsn", &c.Storage.DSN, nil)

	o.String("NEWSDIARY_SCRAPER_ENGINE", "scraper_engine", &c.Scraper.Engine,
		pkgconfig.OneOf("http", "browser"))
	o.Duration("NEWSDIARY_SCRAPER_TIMEOUT", "scraper_timeout", &c.Scraper.Timeout, func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, 5*time.Second, 10*time.Minute)
	})
	o.Int("NEWSDIARY_SCRAPER_MAX_ITEMS", "scraper_max_items", &c.Scraper.MaxItems, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100)
	})
	o.Int("NEWSDIARY_SCRAPER_PARALLELISM", "scraper_parallelism", &c.Scraper.Parallelism, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 6)
	})
	o.Duration("NEWSDIARY_SCRAPER_MIN_INTERVAL", "scraper_min_interval", &c.Scraper.MinInterval,
		pkgconfig.ValidateNonNegativeDuration)
	o.String("NEWSDIARY_SCRAPER_USER_AGENT", "scraper_user_agent", &c.Scraper.UserAgent, nil)
	o.String("NEWSDIARY_SCRAPER_BASE_URL", "scraper_base_url", &c.Scraper.BaseURL, nil)

	o.String("CRON_SCHEDULE", "cron_schedule", &c.Worker.CronSchedule, pkgconfig.ValidateCronSchedule)
	o.String("WORKER_TIMEZONE", "timezone", &c.Worker.Timezone, pkgconfig.ValidateTimezone)
	o.Int("WORKER_HEALTH_PORT", "health_port", &c.Worker.HealthPort, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1024, 65535)
	})
	o.Duration("COLLECT_TIMEOUT", "collect_timeout", &c.Worker.CollectTimeout, func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, time.Minute, 2*time.Hour)
	})
	o.Bool("WORKER_RUN_ON_START", "run_on_start", &c.Worker.RunOnStart)

	o.String("NEWSDIARY_API_ADDR", "api_addr", &c.API.Addr, nil)
	o.Duration("JWT_TTL", "token_ttl", &c.API.TokenTTL, pkgconfig.ValidatePositiveDuration)

	c.Auth = AuthConfig{
		User:      os.Getenv("ADMIN_USER"),
		Password:  os.Getenv("ADMIN_USER_PASSWORD"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	return o.Finish()
}

// Validate checks every section and reports all problems at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.DataDir == "" && c.Storage.Driver == "file" {
		errs = append(errs, errors.New("data_dir: required for the file storage driver"))
	}
	if err := pkgconfig.OneOf("file", "sqlite", "postgres")(c.Storage.Driver); err != nil {
		errs = append(errs, fmt.Errorf("storage.driver: %w", err))
	}
	if c.Storage.Driver == "postgres" && c.Storage.DSN == "" {
		errs = append(errs, errors.New("storage.dsn: required for the postgres driver"))
	}

	if err := pkgconfig.OneOf("http", "browser")(c.Scraper.Engine); err != nil {
		errs = append(errs, fmt.Errorf("scraper.engine: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Scraper.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("scraper.timeout: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Scraper.MaxItems, 1, 100); err != nil {
		errs = append(errs, fmt.Errorf("scraper.max_items: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Scraper.Parallelism, 1, 6); err != nil {
		errs = append(errs, fmt.Errorf("scraper.parallelism: %w", err))
	}
	if err := pkgconfig.ValidateNonNegativeDuration(c.Scraper.MinInterval); err != nil {
		errs = append(errs, fmt.Errorf("scraper.min_interval: %w", err))
	}

	if err := pkgconfig.ValidateCronSchedule(c.Worker.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("worker.cron_schedule: %w", err))
	}
	if err := pkgconfig.ValidateTimezone(c.Worker.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("worker.timezone: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Worker.HealthPort, 1024, 65535); err != nil {
		errs = append(errs, fmt.Errorf("worker.health_port: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Worker.CollectTimeout); err != nil {
		errs = append(errs, fmt.Errorf("worker.collect_timeout: %w", err))
	}

	if c.API.Addr == "" {
		errs = append(errs, errors.New("api.addr: required"))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.API.TokenTTL); err != nil {
		errs = append(errs, fmt.Errorf("api.token_ttl: %w", err))
	}
	if c.API.TraceSampleRatio < 0 || c.API.TraceSampleRatio > 1 {
		errs = append(errs, fmt.Errorf("api.trace_sample_ratio: %v is outside [0, 1]", c.API.TraceSampleRatio))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}
