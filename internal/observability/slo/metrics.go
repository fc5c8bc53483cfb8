// Package slo tracks the collection objectives of the scheduled worker.
package slo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Objectives for scheduled collection.
const (
	// CategoryCoverageSLO is the share of categories a run must scrape successfully.
	CategoryCoverageSLO = 5.0 / 6.0

	// FreshnessSLOSeconds is the longest acceptable gap between successful runs.
	FreshnessSLOSeconds = 3 * 60 * 60
)

var (
	// CategoryCoverage is the share of requested categories scraped by the last run.
	CategoryCoverage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "slo_collection_category_coverage_ratio",
			Help: "Share of requested categories scraped by the last collection run (0-1), target: 0.83",
		},
	)

	// CoverageBreaches counts runs that fell below CategoryCoverageSLO.
	CoverageBreaches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "slo_collection_coverage_breaches_total",
			Help: "Collection runs whose category coverage was below the objective",
		},
	)
)

// RecordCollectionRun updates coverage from the number of requested and
// failed categories. A run that requested nothing is ignored.
func RecordCollectionRun(requested, failed int) {
	if requested <= 0 {
		return
	}
	if failed < 0 {
		failed = 0
	}
	if failed > requested {
		failed = requested
	}
	ratio := float64(requested-failed) / float64(requested)
	CategoryCoverage.Set(ratio)
	if ratio < CategoryCoverageSLO {
		CoverageBreaches.Inc()
	}
}
