// Package idgen produces string identifiers from a prefix and a
// microsecond-resolution timestamp.
package idgen

import (
	"strings"
	"sync"
	"time"
)

// stampLayout renders a timestamp as YYYYMMDDhhmmssffffff.
const stampLayout = "20060102150405.000000"

// Generator issues identifiers that are unique within a process.
// When two IDs are requested within the same microsecond the later one is
// pushed forward, so the timestamp part never repeats.
type Generator struct {
	mu   sync.Mutex
	now  func() time.Time
	last time.Time
}

// New creates a Generator backed by the wall clock.
func New() *Generator {
	return &Generator{now: time.Now}
}

// NewWithClock creates a Generator with a custom clock (used in tests).
func NewWithClock(now func() time.Time) *Generator {
	return &Generator{now: now}
}

// Stamp returns the next unique timestamp string.
func (g *Generator) Stamp() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	t := g.now().Truncate(time.Microsecond)
	if !t.After(g.last) {
		t = g.last.Add(time.Microsecond)
	}
	g.last = t
	return strings.Replace(t.Format(stampLayout), ".", "", 1)
}

// Next returns "{prefix}_{stamp}", or just the stamp when prefix is empty.
func (g *Generator) Next(prefix string) string {
	stamp := g.Stamp()
	if prefix == "" {
		return stamp
	}
	return prefix + "_" + stamp
}

var defaultGenerator = New()

// Next issues an identifier from the process-wide generator.
func Next(prefix string) string {
	return defaultGenerator.Next(prefix)
}

// Stamp issues a timestamp from the process-wide generator.
func Stamp() string {
	return defaultGenerator.Stamp()
}
