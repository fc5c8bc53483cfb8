// Package jsondoc implements the repository ports on top of a docstore.Store.
//
// Each collection lives in its own named document:
//
//	news_articles.json    list of articles in storage order
//	diary_entries.json    object keyed by article ID
//	calendar_issues.json  list of issues in creation order
package jsondoc

// Document names.
const (
	ArticlesDocument = "news_articles.json"
	DiaryDocument    = "diary_entries.json"
	IssuesDocument   = "calendar_issues.json"
)
