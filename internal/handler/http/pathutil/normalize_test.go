package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "article id", path: "/articles/news_IT_20250101120000000001_0", want: "/articles/:id"},
		{name: "escaped slash in id", path: "/articles/news_%EC%83%9D%ED%99%9C%2F%EB%AC%B8%ED%99%94_1_0", want: "/articles/:id"},
		{name: "trailing slash", path: "/articles/abc/", want: "/articles/:id"},
		{name: "query string", path: "/articles/abc?x=1", want: "/articles/:id"},
		{name: "favorite", path: "/articles/abc/favorite", want: "/articles/:id/favorite"},
		{name: "diary", path: "/articles/abc/diary", want: "/articles/:id/diary"},
		{name: "issue", path: "/issues/issue_20250101_1", want: "/issues/:id"},
		{name: "article dates", path: "/articles/dates", want: "/articles/dates"},
		{name: "favorites", path: "/articles/favorites", want: "/articles/favorites"},
		{name: "delete all", path: "/articles/all", want: "/articles/all"},
		{name: "bulk delete", path: "/articles/delete", want: "/articles/delete"},
		{name: "issue dates", path: "/issues/dates", want: "/issues/dates"},
		{name: "diary entry", path: "/diary/diary_20250101_1", want: "/diary/:id"},
		{name: "diary list", path: "/diary", want: "/diary"},
		{name: "collection", path: "/articles", want: "/articles"},
		{name: "root", path: "/", want: "/"},
		{name: "health", path: "/health", want: "/health"},
		{name: "unknown nested", path: "/articles/a/b/c", want: "/articles/a/b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}
