package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value.
// When the environment holds an unusable value, Value is the default,
// FallbackApplied is set and Warnings explains why.
type LoadResult[T any] struct {
	Value           T
	Warnings        []string
	FallbackApplied bool
}

func fallback[T any](envKey, raw string, defaultValue T, reason any) LoadResult[T] {
	return LoadResult[T]{
		Value: defaultValue,
		Warnings: []string{fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to default '%v'",
			envKey, raw, reason, defaultValue,
		)},
		FallbackApplied: true,
	}
}

// LoadEnvWithFallback loads a string and validates it. An unset variable
// yields the default without a warning; a value rejected by validator yields
// the default with a warning. It never fails.
//
// Example:
//
//	result := LoadEnvWithFallback("CRON_SCHEDULE", "0 */3 * * *", ValidateCronSchedule)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult[string] {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult[string]{Value: defaultValue}
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, value, defaultValue, err)
		}
	}
	return LoadResult[string]{Value: value}
}

// LoadEnvDuration loads a duration in time.ParseDuration form ("30s", "1h30m").
// Parse and validation failures fall back to the default with a warning.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult[time.Duration] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[time.Duration]{Value: defaultValue}
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, err)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return fallback(envKey, raw, defaultValue, err)
		}
	}
	return LoadResult[time.Duration]{Value: d}
}

// LoadEnvInt loads a base-10 integer.
// Parse and validation failures fall back to the default with a warning.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult[int] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[int]{Value: defaultValue}
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, "invalid integer format")
	}
	if validator != nil {
		if err := validator(v); err != nil {
			return fallback(envKey, raw, defaultValue, err)
		}
	}
	return LoadResult[int]{Value: v}
}

// LoadEnvBool loads a boolean in strconv.ParseBool form.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult[bool] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return LoadResult[bool]{Value: defaultValue}
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback(envKey, raw, defaultValue, "invalid boolean format, expected 'true' or 'false'")
	}
	return LoadResult[bool]{Value: v}
}

// Overrides applies environment overrides onto an already populated config
// struct. Every fallback is logged, counted in Metrics and remembered so
// Finish can publish whether any fallback is active.
//
// Example:
//
//	o := NewOverrides(slog.Default(), metrics)
//	o.String("CRON_SCHEDULE", "cron_schedule", &cfg.CronSchedule, ValidateCronSchedule)
//	o.Duration("NEWSDIARY_SCRAPER_TIMEOUT", "scraper_timeout", &cfg.Timeout, ValidatePositiveDuration)
//	warnings := o.Finish()
type Overrides struct {
	logger   *slog.Logger
	metrics  *ConfigMetrics
	warnings []string
}

// NewOverrides creates an Overrides. A nil metrics disables metric updates.
func NewOverrides(logger *slog.Logger, metrics *ConfigMetrics) *Overrides {
	if logger == nil {
		logger = slog.Default()
	}
	return &Overrides{logger: logger, metrics: metrics}
}

// String overrides dst from envKey.
func (o *Overrides) String(envKey, field string, dst *string, validator func(string) error) {
	r := LoadEnvWithFallback(envKey, *dst, validator)
	*dst = r.Value
	o.record(field, r.FallbackApplied, r.Warnings)
}

// Int overrides dst from envKey.
func (o *Overrides) Int(envKey, field string, dst *int, validator func(int) error) {
	r := LoadEnvInt(envKey, *dst, validator)
	*dst = r.Value
	o.record(field, r.FallbackApplied, r.Warnings)
}

// Duration overrides dst from envKey.
func (o *Overrides) Duration(envKey, field string, dst *time.Duration, validator func(time.Duration) error) {
	r := LoadEnvDuration(envKey, *dst, validator)
	*dst = r.Value
	o.record(field, r.FallbackApplied, r.Warnings)
}

// Bool overrides dst from envKey.
func (o *Overrides) Bool(envKey, field string, dst *bool) {
	r := LoadEnvBool(envKey, *dst)
	*dst = r.Value
	o.record(field, r.FallbackApplied, r.Warnings)
}

func (o *Overrides) record(field string, applied bool, warnings []string) {
	if !applied {
		return
	}
	if o.metrics != nil {
		o.metrics.RecordValidationError(field)
		o.metrics.RecordFallback(field, "default")
	}
	for _, w := range warnings {
		o.logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", w))
	}
	o.warnings = append(o.warnings, warnings...)
}

// Finish publishes the load metrics and returns every warning collected.
func (o *Overrides) Finish() []string {
	if o.metrics != nil {
		o.metrics.SetFallbackActive("", len(o.warnings) > 0)
		o.metrics.RecordLoadTimestamp()
	}
	return o.warnings
}
