package metrics

import (
	"time"
)

// RecordScrape records the outcome of one category scrape.
// A non-empty errorType marks the scrape as failed.
func RecordScrape(category string, duration time.Duration, count int, errorType string) {
	ScrapeDuration.WithLabelValues(category).Observe(duration.Seconds())
	if errorType != "" {
		ScrapeErrorsTotal.WithLabelValues(category, errorType).Inc()
		return
	}
	ArticlesScrapedTotal.WithLabelValues(category).Add(float64(count))
}

// RecordCollectRun records a finished collection run.
func RecordCollectRun(success bool, duration time.Duration, added int) {
	CollectDuration.Observe(duration.Seconds())
	if !success {
		CollectRunsTotal.WithLabelValues("failure").Inc()
		return
	}
	CollectRunsTotal.WithLabelValues("success").Inc()
	if added > 0 {
		ArticlesAddedTotal.Add(float64(added))
	}
	LastCollectSuccess.SetToCurrentTime()
}

// UpdateStoredCounts refreshes the collection size gauges.
// Negative values leave the corresponding gauge untouched.
func UpdateStoredCounts(articles, diaryEntries, issues int) {
	if articles >= 0 {
		ArticlesStored.Set(float64(articles))
	}
	if diaryEntries >= 0 {
		DiaryEntriesStored.Set(float64(diaryEntries))
	}
	if issues >= 0 {
		CalendarIssuesStored.Set(float64(issues))
	}
}
