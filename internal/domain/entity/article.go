// Package entity defines the core domain entities and validation logic for the application.
// It contains the collected Article, the per-article DiaryEntry, the free-standing
// CalendarIssue, the fixed Category enumeration, and domain-specific errors.
package entity

// DefaultSource is the origin tag assigned to every scraped article.
const DefaultSource = "naver"

// Article represents a collected news article.
// Articles are created only by a collection run, mutated only by the favorite
// toggle, and destroyed by an explicit delete that cascades to the diary.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Category    Category  `json:"category"`
	CollectedAt Timestamp `json:"collected_at"`
	Source      string    `json:"source"`
	IsFavorite  bool      `json:"is_favorite"`
}

// DedupKey identifies the underlying story of an article.
// Two articles with the same title in the same category are the same story.
// The comparison is exact and case-sensitive.
type DedupKey struct {
	Title    string
	Category Category
}

// DedupKey returns the (title, category) pair used for duplicate detection.
func (a Article) DedupKey() DedupKey {
	return DedupKey{Title: a.Title, Category: a.Category}
}

// CollectedDate returns the YYYY-MM-DD portion of CollectedAt,
// or an empty string when the timestamp is missing.
func (a Article) CollectedDate() string {
	return a.CollectedAt.Date()
}

// Normalize fills legacy or missing fields with their documented defaults.
func (a *Article) Normalize() {
	if a.Source == "" {
		a.Source = DefaultSource
	}
}
