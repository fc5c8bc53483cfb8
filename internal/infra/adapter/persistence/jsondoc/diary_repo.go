package jsondoc

import (
	"context"
	"log/slog"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/observability/metrics"
	"newsdiary/internal/repository"
)

type DiaryRepo struct {
	store docstore.Store
}

func NewDiaryRepo(store docstore.Store) repository.DiaryRepository {
	return &DiaryRepo{store: store}
}

// Load accepts both the keyed object and the legacy array layout.
// Array documents collapse to one entry per article, the later entry winning.
func (r *DiaryRepo) Load(ctx context.Context) (entity.DiaryBook, error) {
	raw, err := docstore.LoadMap(ctx, r.store, DiaryDocument, func(entries []entity.DiaryEntry) map[string]entity.DiaryEntry {
		book := entity.NewDiaryBook(entries)
		slog.InfoContext(ctx, "converted legacy diary layout",
			slog.Int("entries", len(entries)),
			slog.Int("articles", len(book)))
		return book
	})
	if err != nil {
		return nil, err
	}

	book := make(entity.DiaryBook, len(raw))
	for articleID, e := range raw {
		e.ArticleID = articleID
		book[articleID] = e
	}
	metrics.UpdateStoredCounts(-1, len(book), -1)
	return book, nil
}

func (r *DiaryRepo) Save(ctx context.Context, book entity.DiaryBook) error {
	if book == nil {
		book = entity.DiaryBook{}
	}
	if err := docstore.Save(ctx, r.store, DiaryDocument, book); err != nil {
		return err
	}
	metrics.UpdateStoredCounts(-1, len(book), -1)
	return nil
}
