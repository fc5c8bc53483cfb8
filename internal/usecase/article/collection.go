package article

import (
	"sort"
	"strings"

	"newsdiary/internal/domain/entity"
)

// Merge returns existing followed by every incoming article whose dedup key
// is not yet present. Existing articles keep their order and are never
// replaced; new ones are appended in first-appearance order. Neither
// argument is modified.
func Merge(existing, incoming []entity.Article) []entity.Article {
	out := make([]entity.Article, 0, len(existing)+len(incoming))
	seen := make(map[entity.DedupKey]struct{}, len(existing)+len(incoming))

	out = append(out, existing...)
	for _, a := range existing {
		seen[a.DedupKey()] = struct{}{}
	}
	for _, a := range incoming {
		key := a.DedupKey()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Dedup removes later articles that repeat an earlier dedup key.
func Dedup(articles []entity.Article) []entity.Article {
	return Merge(nil, articles)
}

// FilterByCategory returns the articles of one category in collection order.
func FilterByCategory(articles []entity.Article, category entity.Category) []entity.Article {
	out := make([]entity.Article, 0)
	for _, a := range articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// FilterByDate returns the articles whose collection date starts with date.
// A full YYYY-MM-DD matches one day; a shorter prefix such as "2024-05"
// matches a month.
func FilterByDate(articles []entity.Article, date string) []entity.Article {
	out := make([]entity.Article, 0)
	for _, a := range articles {
		d := a.CollectedDate()
		if d != "" && strings.HasPrefix(d, date) {
			out = append(out, a)
		}
	}
	return out
}

// DatesWithNews returns the distinct collection dates, newest first.
func DatesWithNews(articles []entity.Article) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, a := range articles {
		d := a.CollectedDate()
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out
}

// FindByID returns the article with the given ID.
func FindByID(articles []entity.Article, id string) (entity.Article, bool) {
	for _, a := range articles {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Article{}, false
}

// Favorites returns the favorited articles in collection order.
func Favorites(articles []entity.Article) []entity.Article {
	out := make([]entity.Article, 0)
	for _, a := range articles {
		if a.IsFavorite {
			out = append(out, a)
		}
	}
	return out
}

// removeWhere splits articles into those kept and the IDs of those removed.
func removeWhere(articles []entity.Article, match func(entity.Article) bool) ([]entity.Article, []string) {
	kept := make([]entity.Article, 0, len(articles))
	var removed []string
	for _, a := range articles {
		if match(a) {
			removed = append(removed, a.ID)
			continue
		}
		kept = append(kept, a)
	}
	return kept, removed
}
