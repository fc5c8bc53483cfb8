// Package article provides the article collection use cases: merging scraped
// batches into the stored collection, read views over it, favorites, and
// deletions that cascade into the diary.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrArticleNotFound indicates that the requested article was not found.
	ErrArticleNotFound = errors.New("article not found")

	// ErrCascadeIncomplete indicates that articles were deleted but the
	// matching diary entries could not be removed. Repeating the same delete
	// or calling PruneOrphans finishes the cascade.
	ErrCascadeIncomplete = errors.New("article deleted but diary cleanup incomplete")
)
