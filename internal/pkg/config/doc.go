// Package config holds the shared building blocks for configuration loading:
// validators for cron schedules, timezones, ranges and durations, fail-open
// environment loaders that fall back to defaults with a warning, and the
// Prometheus metrics that report those fallbacks.
package config
