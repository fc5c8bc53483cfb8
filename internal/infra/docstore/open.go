package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"newsdiary/internal/resilience/retry"
	envconfig "newsdiary/pkg/config"
)

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and configures a backend.
type Options struct {
	Driver  string
	DataDir string
	DSN     string
}

// ConnectionConfig holds database connection pool configuration.
type ConnectionConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultConnectionConfig returns the default connection pool configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnMaxIdleTime: 30 * time.Minute,
	}
}

// connectionConfigFromEnv applies DB_* overrides on top of the defaults.
func connectionConfigFromEnv() ConnectionConfig {
	cfg := DefaultConnectionConfig()
	cfg.MaxOpenConns = envconfig.GetEnvInt("DB_MAX_OPEN_CONNS", cfg.MaxOpenConns)
	cfg.MaxIdleConns = envconfig.GetEnvInt("DB_MAX_IDLE_CONNS", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = envconfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = envconfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the configured backend and a closer for its resources.
// SQL backends are pinged and migrated before they are returned.
func Open(ctx context.Context, opts Options) (Store, io.Closer, error) {
	switch opts.Driver {
	case "", DriverFile:
		fs, err := NewFileStore(opts.DataDir)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("document store ready", slog.String("driver", DriverFile), slog.String("dir", fs.Dir()))
		return fs, nopCloser{}, nil
	case DriverSQLite:
		return openSQL(ctx, "sqlite", opts.DSN, sq.Question)
	case DriverPostgres:
		return openSQL(ctx, "pgx", opts.DSN, sq.Dollar)
	default:
		return nil, nil, fmt.Errorf("docstore: unknown driver %q", opts.Driver)
	}
}

func openSQL(ctx context.Context, driverName, dsn string, placeholder sq.PlaceholderFormat) (Store, io.Closer, error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("docstore: dsn is required for driver %s", driverName)
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, err
	}

	cfg := connectionConfigFromEnv()
	if driverName == "sqlite" {
		// SQLite allows a single writer.
		cfg.MaxOpenConns = 1
		cfg.MaxIdleConns = 1
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	err = retry.WithBackoff(pingCtx, "docstore.ping", retry.DBConfig(), func() error {
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping database: %w", err)
	}

	store := NewSQLStore(db, placeholder)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	slog.Info("document store ready",
		slog.String("driver", driverName),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime))
	return store, db, nil
}
