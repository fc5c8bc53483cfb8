package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordScrape(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		count     int
		errorType string
	}{
		{name: "success", category: "정치", count: 20},
		{name: "empty page", category: "경제", count: 0},
		{name: "timeout", category: "사회", errorType: "timeout"},
		{name: "parse failure", category: "세계", errorType: "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			beforeOK := testutil.ToFloat64(ArticlesScrapedTotal.WithLabelValues(tt.category))
			beforeErr := 0.0
			if tt.errorType != "" {
				beforeErr = testutil.ToFloat64(ScrapeErrorsTotal.WithLabelValues(tt.category, tt.errorType))
			}

			RecordScrape(tt.category, 1500*time.Millisecond, tt.count, tt.errorType)

			if tt.errorType != "" {
				assert.Equal(t, beforeErr+1, testutil.ToFloat64(ScrapeErrorsTotal.WithLabelValues(tt.category, tt.errorType)))
				assert.Equal(t, beforeOK, testutil.ToFloat64(ArticlesScrapedTotal.WithLabelValues(tt.category)))
				return
			}
			assert.Equal(t, beforeOK+float64(tt.count), testutil.ToFloat64(ArticlesScrapedTotal.WithLabelValues(tt.category)))
		})
	}
}

func TestRecordCollectRun(t *testing.T) {
	successBefore := testutil.ToFloat64(CollectRunsTotal.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(CollectRunsTotal.WithLabelValues("failure"))
	addedBefore := testutil.ToFloat64(ArticlesAddedTotal)

	RecordCollectRun(true, 3*time.Second, 7)
	RecordCollectRun(false, time.Second, 99)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(CollectRunsTotal.WithLabelValues("success")))
	assert.Equal(t, failureBefore+1, testutil.ToFloat64(CollectRunsTotal.WithLabelValues("failure")))
	assert.Equal(t, addedBefore+7, testutil.ToFloat64(ArticlesAddedTotal))
	assert.Greater(t, testutil.ToFloat64(LastCollectSuccess), 0.0)
}

func TestUpdateStoredCounts(t *testing.T) {
	UpdateStoredCounts(120, 4, 2)
	assert.Equal(t, 120.0, testutil.ToFloat64(ArticlesStored))
	assert.Equal(t, 4.0, testutil.ToFloat64(DiaryEntriesStored))
	assert.Equal(t, 2.0, testutil.ToFloat64(CalendarIssuesStored))

	UpdateStoredCounts(-1, 5, -1)
	assert.Equal(t, 120.0, testutil.ToFloat64(ArticlesStored))
	assert.Equal(t, 5.0, testutil.ToFloat64(DiaryEntriesStored))
	assert.Equal(t, 2.0, testutil.ToFloat64(CalendarIssuesStored))
}

func TestRecordHTTPAndStore_NotPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/articles", "200", 20*time.Millisecond, 512)
		RecordHTTPRequest("POST", "/collect", "500", time.Second, 0)
		RecordStoreOperation("load", "news_articles.json", time.Millisecond)
	})
}
