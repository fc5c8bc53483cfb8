// Package pathutil extracts identifiers from request paths and collapses
// ID-bearing paths into route templates for metric labels.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern maps a path regex to its metric label template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// staticPaths are fixed routes that would otherwise match an ID pattern.
var staticPaths = map[string]struct{}{
	"/articles/dates":     {},
	"/articles/favorites": {},
	"/articles/all":       {},
	"/articles/delete":    {},
	"/issues/dates":       {},
}

// pathPatterns are evaluated in order. Article IDs may contain an escaped
// slash, so a segment is anything up to the next literal '/'.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/articles/[^/]+/favorite$`), Template: "/articles/:id/favorite"},
	{Pattern: regexp.MustCompile(`^/articles/[^/]+/diary$`), Template: "/articles/:id/diary"},
	{Pattern: regexp.MustCompile(`^/articles/[^/]+$`), Template: "/articles/:id"},
	{Pattern: regexp.MustCompile(`^/issues/[^/]+$`), Template: "/issues/:id"},
	{Pattern: regexp.MustCompile(`^/diary/[^/]+$`), Template: "/diary/:id"},
}

// NormalizePath converts an escaped request path into its route template.
//
//	NormalizePath("/articles/news_%EC%84%B8%EA%B3%84_20250101_0")  // "/articles/:id"
//	NormalizePath("/articles/abc/diary")                             // "/articles/:id/diary"
//	NormalizePath("/articles/dates")                                 // "/articles/dates"
//	NormalizePath("/issues/issue_1?x=1")                             // "/issues/:id"
//	NormalizePath("/unknown/1")                                      // "/unknown/1"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := staticPaths[path]; ok {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
