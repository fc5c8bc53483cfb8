package jsondoc

import (
	"context"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/observability/metrics"
	"newsdiary/internal/repository"
)

type ArticleRepo struct {
	store docstore.Store
}

func NewArticleRepo(store docstore.Store) repository.ArticleRepository {
	return &ArticleRepo{store: store}
}

func (r *ArticleRepo) Load(ctx context.Context) ([]entity.Article, error) {
	articles, err := docstore.LoadList[entity.Article](ctx, r.store, ArticlesDocument)
	if err != nil {
		return nil, err
	}
	for i := range articles {
		articles[i].Normalize()
	}
	metrics.UpdateStoredCounts(len(articles), -1, -1)
	return articles, nil
}

func (r *ArticleRepo) Save(ctx context.Context, articles []entity.Article) error {
	if articles == nil {
		articles = []entity.Article{}
	}
	if err := docstore.Save(ctx, r.store, ArticlesDocument, articles); err != nil {
		return err
	}
	metrics.UpdateStoredCounts(len(articles), -1, -1)
	return nil
}
