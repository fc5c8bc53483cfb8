package fetch_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/usecase/fetch"
)

func TestCollectResult_Summarize(t *testing.T) {
	res := &fetch.CollectResult{
		RunID:            "run-1",
		Collected:        3,
		Added:            2,
		Duplicates:       1,
		Total:            10,
		FailedCategories: []entity.Category{entity.CategoryWorld},
		Duration:         1500 * time.Millisecond,
	}
	scraped := map[entity.Category][]entity.Article{
		entity.CategoryPolitics: {{ID: "a"}, {ID: "b"}},
		entity.CategoryEconomy:  {{ID: "c"}},
		entity.CategoryWorld:    {},
	}

	want := fetch.Summary{
		RunID:            "run-1",
		Collected:        3,
		Added:            2,
		Duplicates:       1,
		Total:            10,
		FailedCategories: []string{"세계"},
		PerCategory:      map[string]int{"정치": 2, "경제": 1, "세계": 0},
		DurationMS:       1500,
	}
	if diff := cmp.Diff(want, res.Summarize(scraped)); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectResult_SummarizeEmpty(t *testing.T) {
	got := (&fetch.CollectResult{}).Summarize(nil)
	if got.FailedCategories == nil || got.PerCategory == nil {
		t.Fatalf("empty run must encode lists and maps, got %+v", got)
	}
}
