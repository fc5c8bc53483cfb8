package circuitbreaker

import (
	"context"
	"database/sql"
	"time"
)

// DBConfig trips after five consecutive database failures and retries
// after thirty seconds.
func DBConfig() Config {
	return Config{
		Name:                "database",
		MaxRequests:         1,
		Interval:            time.Minute,
		Timeout:             30 * time.Second,
		ConsecutiveFailures: 5,
	}
}

// DB guards a *sql.DB. While the circuit is open calls fail fast with ErrOpen
// instead of waiting on an unreachable server.
type DB struct {
	cb *CircuitBreaker
	db *sql.DB
}

// NewDB wraps db with DBConfig.
func NewDB(db *sql.DB) *DB {
	return NewDBWithConfig(db, DBConfig())
}

// NewDBWithConfig wraps db with a custom configuration.
func NewDBWithConfig(db *sql.DB, cfg Config) *DB {
	return &DB{cb: New(cfg), db: db}
}

// QueryContext runs a query through the breaker.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := d.cb.Do(func() error {
		var err error
		rows, err = d.db.QueryContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ExecContext runs a statement through the breaker.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var res sql.Result
	err := d.cb.Do(func() error {
		var err error
		res, err = d.db.ExecContext(ctx, query, args...)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// IsOpen reports whether calls are currently short-circuited.
func (d *DB) IsOpen() bool {
	return d.cb.IsOpen()
}
