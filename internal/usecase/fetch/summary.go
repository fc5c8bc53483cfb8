package fetch

import "newsdiary/internal/domain/entity"

// Summary is the reported outcome of one collection run, shared by the
// HTTP API and the CLI.
type Summary struct {
	RunID            string         `json:"run_id"`
	Collected        int            `json:"collected"`
	Added            int            `json:"added"`
	Duplicates       int            `json:"duplicates"`
	Total            int            `json:"total"`
	FailedCategories []string       `json:"failed_categories"`
	PerCategory      map[string]int `json:"per_category"`
	DurationMS       int64          `json:"duration_ms"`
}

// Summarize combines the run statistics with the per-category scrape counts.
func (r *CollectResult) Summarize(scraped map[entity.Category][]entity.Article) Summary {
	out := Summary{
		RunID:            r.RunID,
		Collected:        r.Collected,
		Added:            r.Added,
		Duplicates:       r.Duplicates,
		Total:            r.Total,
		FailedCategories: make([]string, 0, len(r.FailedCategories)),
		PerCategory:      make(map[string]int, len(scraped)),
		DurationMS:       r.Duration.Milliseconds(),
	}
	for _, c := range r.FailedCategories {
		out.FailedCategories = append(out.FailedCategories, c.String())
	}
	for c, articles := range scraped {
		out.PerCategory[c.String()] = len(articles)
	}
	return out
}
