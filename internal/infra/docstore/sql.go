package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"newsdiary/internal/resilience/circuitbreaker"
)

const documentsTable = "documents"

// SQLStore keeps each document as one row of the documents table.
// Every statement goes through a database circuit breaker.
type SQLStore struct {
	db *circuitbreaker.DB
	sb sq.StatementBuilderType
}

// NewSQLStore wraps db. The placeholder format must match the driver:
// sq.Question for SQLite, sq.Dollar for PostgreSQL.
func NewSQLStore(db *sql.DB, placeholder sq.PlaceholderFormat) *SQLStore {
	return &SQLStore{
		db: circuitbreaker.NewDB(db),
		sb: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Migrate creates the documents table when it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    body       TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`)
	if err != nil {
		return fmt.Errorf("migrate documents: %w", err)
	}
	return nil
}

func (s *SQLStore) Read(ctx context.Context, name string) ([]byte, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	query, args, err := s.sb.
		Select("body").
		From(documentsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, err
	}
	return []byte(body), nil
}

func (s *SQLStore) Write(ctx context.Context, name string, body []byte) error {
	if name == "" {
		return ErrInvalidName
	}
	query, args, err := s.sb.
		Insert(documentsTable).
		Columns("name", "body", "updated_at").
		Values(name, string(body), time.Now().UTC()).
		Suffix("ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}
	return nil
}
