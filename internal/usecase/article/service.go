package article

import (
	"context"
	"fmt"
	"log/slog"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/repository"
)

// Service provides article views, favorites and cascading deletes.
// Every operation loads the collection, works on the copy and saves it back;
// concurrent writers follow last-writer-wins.
type Service struct {
	Repo      repository.ArticleRepository
	DiaryRepo repository.DiaryRepository
}

// NewService creates an article Service.
func NewService(repo repository.ArticleRepository, diaryRepo repository.DiaryRepository) *Service {
	return &Service{Repo: repo, DiaryRepo: diaryRepo}
}

// DeleteResult reports the outcome of a delete operation.
type DeleteResult struct {
	DeletedCount int `json:"deleted_count"`
}

// List returns the whole collection in stored order.
func (s *Service) List(ctx context.Context) ([]entity.Article, error) {
	articles, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// ListByCategory returns the articles of one category.
func (s *Service) ListByCategory(ctx context.Context, category entity.Category) ([]entity.Article, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %q", entity.ErrInvalidCategory, string(category))
	}
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(articles, category), nil
}

// ListByDate returns the articles collected on date (or within a date prefix).
func (s *Service) ListByDate(ctx context.Context, date string) ([]entity.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByDate(articles, date), nil
}

// DatesWithNews returns the distinct collection dates, newest first.
func (s *Service) DatesWithNews(ctx context.Context) ([]string, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return DatesWithNews(articles), nil
}

// Get returns one article or ErrArticleNotFound.
func (s *Service) Get(ctx context.Context, id string) (entity.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return entity.Article{}, err
	}
	a, ok := FindByID(articles, id)
	if !ok {
		return entity.Article{}, ErrArticleNotFound
	}
	return a, nil
}

// Favorites returns the favorited articles.
func (s *Service) Favorites(ctx context.Context) ([]entity.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Favorites(articles), nil
}

// FavoriteStatus reports whether the article is a favorite.
// Unknown IDs report false.
func (s *Service) FavoriteStatus(ctx context.Context, id string) (bool, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	a, _ := FindByID(articles, id)
	return a.IsFavorite, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
// An unknown ID returns false without writing anything.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	idx := -1
	for i := range articles {
		if articles[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}

	updated := make([]entity.Article, len(articles))
	copy(updated, articles)
	updated[idx].IsFavorite = !updated[idx].IsFavorite

	if err := s.Repo.Save(ctx, updated); err != nil {
		return false, fmt.Errorf("save articles: %w", err)
	}
	slog.InfoContext(ctx, "favorite toggled",
		slog.String("article_id", id),
		slog.Bool("is_favorite", updated[idx].IsFavorite))
	return updated[idx].IsFavorite, nil
}

// Delete removes one article and its diary entry.
// It reports whether the article existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.DeleteSelected(ctx, []string{id})
	return res.DeletedCount > 0, err
}

// DeleteSelected removes the given articles, then removes the diary entries
// of every requested ID, whether or not an article matched it.
func (s *Service) DeleteSelected(ctx context.Context, ids []string) (DeleteResult, error) {
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	res, _, err := s.deleteWhere(ctx, "selected", func(a entity.Article) bool {
		_, ok := want[a.ID]
		return ok
	})
	if err != nil {
		return res, err
	}

	return res, s.cascade(ctx, func(book entity.DiaryBook) int {
		n := 0
		for _, id := range ids {
			if _, ok := book[id]; ok {
				delete(book, id)
				n++
			}
		}
		return n
	})
}

// DeleteByCategory removes every article of the category, then every diary
// entry whose article is no longer stored, so repeating the call finishes a
// cascade that failed earlier.
func (s *Service) DeleteByCategory(ctx context.Context, category entity.Category) (DeleteResult, error) {
	if !category.Valid() {
		return DeleteResult{}, fmt.Errorf("%w: %q", entity.ErrInvalidCategory, string(category))
	}

	res, kept, err := s.deleteWhere(ctx, "category", func(a entity.Article) bool {
		return a.Category == category
	})
	if err != nil {
		return res, err
	}

	live := liveIDs(kept)
	return res, s.cascade(ctx, func(book entity.DiaryBook) int {
		return removeOrphans(book, live)
	})
}

// DeleteAll empties the article collection and the whole diary.
func (s *Service) DeleteAll(ctx context.Context) (DeleteResult, error) {
	res, _, err := s.deleteWhere(ctx, "all", func(entity.Article) bool { return true })
	if err != nil {
		return res, err
	}

	return res, s.cascade(ctx, func(book entity.DiaryBook) int {
		n := len(book)
		clear(book)
		return n
	})
}

// PruneOrphans removes diary entries whose article no longer exists and
// returns how many were removed.
func (s *Service) PruneOrphans(ctx context.Context) (int, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	book, err := s.DiaryRepo.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load diary: %w", err)
	}
	book = book.Clone()

	n := removeOrphans(book, liveIDs(articles))
	if n == 0 {
		return 0, nil
	}
	if err := s.DiaryRepo.Save(ctx, book); err != nil {
		return 0, fmt.Errorf("save diary: %w", err)
	}
	slog.InfoContext(ctx, "orphaned diary entries pruned", slog.Int("removed", n))
	return n, nil
}

// deleteWhere saves the collection without the matching articles and
// returns what is stored afterwards.
func (s *Service) deleteWhere(ctx context.Context, scope string, match func(entity.Article) bool) (DeleteResult, []entity.Article, error) {
	articles, err := s.List(ctx)
	if err != nil {
		return DeleteResult{}, nil, err
	}

	kept, removed := removeWhere(articles, match)
	if len(removed) == 0 {
		return DeleteResult{}, articles, nil
	}
	if err := s.Repo.Save(ctx, kept); err != nil {
		return DeleteResult{}, nil, fmt.Errorf("save articles: %w", err)
	}

	slog.InfoContext(ctx, "articles deleted",
		slog.String("scope", scope),
		slog.Int("deleted", len(removed)))
	return DeleteResult{DeletedCount: len(removed)}, kept, nil
}

func liveIDs(articles []entity.Article) map[string]struct{} {
	live := make(map[string]struct{}, len(articles))
	for _, a := range articles {
		live[a.ID] = struct{}{}
	}
	return live
}

// removeOrphans deletes the entries whose article is not in live.
func removeOrphans(book entity.DiaryBook, live map[string]struct{}) int {
	n := 0
	for articleID := range book {
		if _, ok := live[articleID]; !ok {
			delete(book, articleID)
			n++
		}
	}
	return n
}

// cascade applies remove to a copy of the diary and saves it when anything
// changed. Failures are reported as ErrCascadeIncomplete.
func (s *Service) cascade(ctx context.Context, remove func(entity.DiaryBook) int) error {
	book, err := s.DiaryRepo.Load(ctx)
	if err != nil {
		return cascadeError(ctx, fmt.Errorf("load diary: %w", err))
	}
	book = book.Clone()

	n := remove(book)
	if n == 0 {
		return nil
	}
	if err := s.DiaryRepo.Save(ctx, book); err != nil {
		return cascadeError(ctx, fmt.Errorf("save diary: %w", err))
	}
	slog.DebugContext(ctx, "diary entries removed with their articles", slog.Int("removed", n))
	return nil
}

func cascadeError(ctx context.Context, err error) error {
	slog.WarnContext(ctx, "diary cascade incomplete", slog.Any("error", err))
	return fmt.Errorf("%w: %w", ErrCascadeIncomplete, err)
}
