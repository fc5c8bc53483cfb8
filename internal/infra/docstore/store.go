// Package docstore persists named JSON documents.
//
// A document is a whole collection (a list or a map of records) that is
// always read and written in one piece. Two backends are provided: FileStore
// keeps one file per document under a data directory, SQLStore keeps one row
// per document in a relational table.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"newsdiary/internal/observability/metrics"
)

var (
	// ErrInvalidName is returned for document names that could escape the store.
	ErrInvalidName = errors.New("docstore: invalid document name")
	// ErrCorrupt is returned when a stored document cannot be decoded.
	ErrCorrupt = errors.New("docstore: corrupt document")
)

// Store reads and writes raw document bodies by name.
// Read returns (nil, nil) when the document does not exist yet.
type Store interface {
	Read(ctx context.Context, name string) ([]byte, error)
	Write(ctx context.Context, name string, body []byte) error
}

// LoadList decodes a list document. A missing document yields an empty list.
func LoadList[T any](ctx context.Context, s Store, name string) ([]T, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load", name, time.Since(start)) }()

	body, err := s.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	out := []T{}
	if isEmpty(body) {
		return out, nil
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, corrupt(ctx, name, "list", err)
	}
	return out, nil
}

// LoadMap decodes a map document keyed by string. A missing document yields an empty map.
// When fromList is non-nil, a document stored as a JSON array is decoded as
// a list and handed to fromList instead of being reported as corrupt.
func LoadMap[T any](ctx context.Context, s Store, name string, fromList func([]T) map[string]T) (map[string]T, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("load", name, time.Since(start)) }()

	body, err := s.Read(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]T{}, nil
	}

	if body[0] == '[' && fromList != nil {
		var list []T
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, corrupt(ctx, name, "list", err)
		}
		return fromList(list), nil
	}

	out := map[string]T{}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, corrupt(ctx, name, "map", err)
	}
	return out, nil
}

// Save encodes v and replaces the whole document.
func Save(ctx context.Context, s Store, name string, v any) error {
	start := time.Now()
	defer func() { metrics.RecordStoreOperation("save", name, time.Since(start)) }()

	body, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.Write(ctx, name, body); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Encode renders v as two-space indented JSON.
// Non-ASCII text and HTML characters are written as-is.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isEmpty(body []byte) bool {
	return len(bytes.TrimSpace(body)) == 0
}

func corrupt(ctx context.Context, name, shape string, err error) error {
	slog.WarnContext(ctx, "stored document is not a valid "+shape,
		slog.String("document", name),
		slog.Any("error", err))
	return fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
}
