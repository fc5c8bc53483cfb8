package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigPath,
		"NEWSDIARY_DATA_DIR", "NEWSDIARY_STORAGE_DRIVER", "NEWSDIARY_STORAGE_DSN",
		"NEWSDIARY_SCRAPER_ENGINE", "NEWSDIARY_SCRAPER_TIMEOUT", "NEWSDIARY_SCRAPER_MAX_ITEMS",
		"NEWSDIARY_SCRAPER_PARALLELISM", "NEWSDIARY_SCRAPER_MIN_INTERVAL",
		"NEWSDIARY_SCRAPER_USER_AGENT", "NEWSDIARY_SCRAPER_BASE_URL",
		"CRON_SCHEDULE", "WORKER_TIMEZONE", "WORKER_HEALTH_PORT", "COLLECT_TIMEOUT",
		"WORKER_RUN_ON_START", "NEWSDIARY_API_ADDR", "JWT_TTL",
		"ADMIN_USER", "ADMIN_USER_PASSWORD", "JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "newsdiary.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "http", cfg.Scraper.Engine)
	assert.Equal(t, 60*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 20, cfg.Scraper.MaxItems)
	assert.Equal(t, 1, cfg.Scraper.Parallelism)
	assert.Equal(t, "0 */3 * * *", cfg.Worker.CronSchedule)
	assert.Equal(t, "Asia/Seoul", cfg.Worker.Timezone)
	assert.Equal(t, 9091, cfg.Worker.HealthPort)
	assert.Equal(t, ":8080", cfg.API.Addr)
}

func TestLoad_NoFile(t *testing.T) {
	clearEnv(t)

	cfg, warnings, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, Default().Scraper, cfg.Scraper)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
data_dir: /var/lib/newsdiary
storage:
  driver: sqlite
  dsn: /var/lib/newsdiary/docs.db
scraper:
  engine: browser
  timeout: 90s
  max_items: 10
  parallelism: 3
worker:
  cron_schedule: "30 6 * * *"
  timezone: UTC
`)

	cfg, _, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/newsdiary", cfg.DataDir)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "browser", cfg.Scraper.Engine)
	assert.Equal(t, 90*time.Second, cfg.Scraper.Timeout)
	assert.Equal(t, 10, cfg.Scraper.MaxItems)
	assert.Equal(t, 3, cfg.Scraper.Parallelism)
	assert.Equal(t, "30 6 * * *", cfg.Worker.CronSchedule)
	assert.Equal(t, "UTC", cfg.Worker.Timezone)
	// untouched keys keep their defaults
	assert.Equal(t, 9091, cfg.Worker.HealthPort)
	assert.Equal(t, time.Hour, cfg.API.TokenTTL)
}

func TestLoad_PathFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigPath, writeFile(t, "data_dir: from-env-path\n"))

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-env-path", cfg.DataDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "scraper:\n  max_items: 10\n")
	t.Setenv("NEWSDIARY_SCRAPER_MAX_ITEMS", "5")
	t.Setenv("WORKER_RUN_ON_START", "true")
	t.Setenv("ADMIN_USER", "operator")
	t.Setenv("JWT_SECRET", "s3cr3t")

	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 5, cfg.Scraper.MaxItems)
	assert.True(t, cfg.Worker.RunOnStart)
	assert.Equal(t, "operator", cfg.Auth.User)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
}

func TestLoad_InvalidEnvFallsBack(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "scraper:\n  max_items: 10\n")
	t.Setenv("NEWSDIARY_SCRAPER_MAX_ITEMS", "500")
	t.Setenv("CRON_SCHEDULE", "every minute")
	t.Setenv("NEWSDIARY_SCRAPER_ENGINE", "curl")

	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, warnings, 3)
	assert.Equal(t, 10, cfg.Scraper.MaxItems, "file value survives a rejected override")
	assert.Equal(t, "0 */3 * * *", cfg.Worker.CronSchedule)
	assert.Equal(t, "http", cfg.Scraper.Engine)
}

func TestLoad_UnknownYAMLKey(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "scrapper:\n  max_items: 10\n")

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoad_InvalidYAMLValueFailsValidation(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "scraper:\n  parallelism: 12\nworker:\n  timezone: Mars/Olympus\n")

	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scraper.parallelism")
	assert.Contains(t, err.Error(), "worker.timezone")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*AppConfig) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *AppConfig) { c.Storage.Driver = "mongo" },
			wantErr: "storage.driver",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *AppConfig) { c.Storage.Driver = "postgres" },
			wantErr: "storage.dsn",
		},
		{
			name:   "sqlite without data dir",
			mutate: func(c *AppConfig) { c.Storage.Driver = "sqlite"; c.DataDir = "" },
		},
		{
			name:    "file without data dir",
			mutate:  func(c *AppConfig) { c.DataDir = "" },
			wantErr: "data_dir",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *AppConfig) { c.Scraper.Timeout = 0 },
			wantErr: "scraper.timeout",
		},
		{
			name:    "negative min interval",
			mutate:  func(c *AppConfig) { c.Scraper.MinInterval = -time.Second },
			wantErr: "scraper.min_interval",
		},
		{
			name:    "bad cron",
			mutate:  func(c *AppConfig) { c.Worker.CronSchedule = "* *" },
			wantErr: "worker.cron_schedule",
		},
		{
			name:    "privileged health port",
			mutate:  func(c *AppConfig) { c.Worker.HealthPort = 80 },
			wantErr: "worker.health_port",
		},
		{
			name:    "sample ratio above one",
			mutate:  func(c *AppConfig) { c.API.TraceSampleRatio = 1.5 },
			wantErr: "api.trace_sample_ratio",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
