package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// timestampLayout is the wire format for every persisted timestamp.
	timestampLayout = "2006-01-02T15:04:05.999999Z07:00"

	// DateLayout is the calendar date format used for grouping and issues.
	DateLayout = "2006-01-02"
)

// legacyLayouts are accepted on decode. Documents written by older tooling
// carry naive local timestamps without an offset.
var legacyLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Timestamp is an ISO-8601 instant with microsecond precision.
// It keeps the offset it was created or decoded with, so Date() reports the
// calendar day the operator saw when the record was written.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to microseconds and drops the monotonic reading.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Round(0).Truncate(time.Microsecond)}
}

// Now returns the current local time as a Timestamp.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// ParseTimestamp parses the wire format and the accepted legacy formats.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(timestampLayout, s); err == nil {
		return Timestamp{Time: t}, nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("parse timestamp %q: unsupported format", s)
}

// String returns the wire representation, or "" for the zero value.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}

// Date returns the YYYY-MM-DD portion, or "" for the zero value.
func (t Timestamp) Date() string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// Equal reports whether both timestamps denote the same instant.
func (t Timestamp) Equal(u Timestamp) bool {
	return t.Time.Equal(u.Time)
}

// MarshalJSON encodes the zero value as an empty string.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts strings in any supported layout; null and "" decode to zero.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
