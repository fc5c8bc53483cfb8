// Package repository declares the persistence ports used by the use cases.
//
// Every collection is loaded and saved whole: callers read the current
// collection, compute the new one, and write it back.
package repository

import (
	"context"

	"newsdiary/internal/domain/entity"
)

// ArticleRepository persists the article collection in storage order.
type ArticleRepository interface {
	// Load returns every stored article. A missing collection is empty.
	Load(ctx context.Context) ([]entity.Article, error)
	// Save replaces the stored collection.
	Save(ctx context.Context, articles []entity.Article) error
}
