package slo

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCollectionRun(t *testing.T) {
	tests := []struct {
		name         string
		requested    int
		failed       int
		wantCoverage float64
		wantBreach   bool
	}{
		{"all scraped", 6, 0, 1, false},
		{"one category failed", 6, 1, 5.0 / 6.0, false},
		{"two categories failed", 6, 2, 4.0 / 6.0, true},
		{"everything failed", 6, 6, 0, true},
		{"failures clamp to requested", 2, 5, 0, true},
		{"single category run", 1, 0, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(CoverageBreaches)

			RecordCollectionRun(tt.requested, tt.failed)

			assert.InDelta(t, tt.wantCoverage, testutil.ToFloat64(CategoryCoverage), 1e-9)
			delta := testutil.ToFloat64(CoverageBreaches) - before
			if tt.wantBreach {
				assert.Equal(t, 1.0, delta)
			} else {
				assert.Equal(t, 0.0, delta)
			}
		})
	}
}

func TestRecordCollectionRun_NothingRequested(t *testing.T) {
	CategoryCoverage.Set(0.5)
	RecordCollectionRun(0, 0)
	assert.Equal(t, 0.5, testutil.ToFloat64(CategoryCoverage))
}
