package diary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/pkg/idgen"
	"newsdiary/internal/repository"
)

const idPrefix = "diary"

// EntryInput is the text of a diary entry.
type EntryInput struct {
	Content string
	Summary string
	Opinion string
}

// UpdateInput represents a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Content *string
	Summary *string
	Opinion *string
}

// Service manages diary entries.
type Service struct {
	Repo repository.DiaryRepository

	ids *idgen.Generator
	now func() time.Time
}

// NewService creates a diary Service.
func NewService(repo repository.DiaryRepository) *Service {
	return &Service{Repo: repo, ids: idgen.New(), now: time.Now}
}

// CreateEntry stores the entry for an article. When the article already has
// one, its text is replaced and its ID and creation time are kept.
func (s *Service) CreateEntry(ctx context.Context, articleID string, in EntryInput) (entity.DiaryEntry, error) {
	if err := entity.ValidateRequired("article_id", articleID); err != nil {
		return entity.DiaryEntry{}, err
	}

	book, err := s.load(ctx)
	if err != nil {
		return entity.DiaryEntry{}, err
	}

	now := entity.NewTimestamp(s.now())
	entry, exists := book[articleID]
	if !exists {
		entry = entity.DiaryEntry{
			ID:        s.ids.Next(idPrefix),
			ArticleID: articleID,
			CreatedAt: now,
		}
	}
	entry.Content = in.Content
	entry.Summary = in.Summary
	entry.Opinion = in.Opinion
	entry.UpdatedAt = now
	book[articleID] = entry

	if err := s.save(ctx, book); err != nil {
		return entity.DiaryEntry{}, err
	}
	slog.InfoContext(ctx, "diary entry saved",
		slog.String("entry_id", entry.ID),
		slog.String("article_id", articleID),
		slog.Bool("replaced", exists))
	return entry, nil
}

// GetByArticle returns the entry of an article, if any.
func (s *Service) GetByArticle(ctx context.Context, articleID string) (entity.DiaryEntry, bool, error) {
	book, err := s.load(ctx)
	if err != nil {
		return entity.DiaryEntry{}, false, err
	}
	e, ok := book[articleID]
	return e, ok, nil
}

// EntriesByArticle returns the entries of an article as a list of zero or one.
func (s *Service) EntriesByArticle(ctx context.Context, articleID string) ([]entity.DiaryEntry, error) {
	e, ok, err := s.GetByArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []entity.DiaryEntry{}, nil
	}
	return []entity.DiaryEntry{e}, nil
}

// HasEntry reports whether the article has a diary entry.
func (s *Service) HasEntry(ctx context.Context, articleID string) (bool, error) {
	_, ok, err := s.GetByArticle(ctx, articleID)
	return ok, err
}

// GetByID returns the entry with the given entry ID or ErrEntryNotFound.
func (s *Service) GetByID(ctx context.Context, entryID string) (entity.DiaryEntry, error) {
	book, err := s.load(ctx)
	if err != nil {
		return entity.DiaryEntry{}, err
	}
	e, ok := book.FindByID(entryID)
	if !ok {
		return entity.DiaryEntry{}, ErrEntryNotFound
	}
	return e, nil
}

// Update applies the non-nil fields to an entry.
func (s *Service) Update(ctx context.Context, entryID string, in UpdateInput) (entity.DiaryEntry, error) {
	book, err := s.load(ctx)
	if err != nil {
		return entity.DiaryEntry{}, err
	}
	e, ok := book.FindByID(entryID)
	if !ok {
		return entity.DiaryEntry{}, ErrEntryNotFound
	}

	if in.Content != nil {
		e.Content = *in.Content
	}
	if in.Summary != nil {
		e.Summary = *in.Summary
	}
	if in.Opinion != nil {
		e.Opinion = *in.Opinion
	}
	e.UpdatedAt = entity.NewTimestamp(s.now())
	book[e.ArticleID] = e

	if err := s.save(ctx, book); err != nil {
		return entity.DiaryEntry{}, err
	}
	return e, nil
}

// Delete removes the entry with the given entry ID and reports whether it existed.
func (s *Service) Delete(ctx context.Context, entryID string) (bool, error) {
	book, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	e, ok := book.FindByID(entryID)
	if !ok {
		return false, nil
	}
	delete(book, e.ArticleID)
	if err := s.save(ctx, book); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteByArticle removes the entry of an article. A missing entry is not an error.
func (s *Service) DeleteByArticle(ctx context.Context, articleID string) (bool, error) {
	book, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if _, ok := book[articleID]; !ok {
		return false, nil
	}
	delete(book, articleID)
	if err := s.save(ctx, book); err != nil {
		return false, err
	}
	return true, nil
}

// List returns every entry ordered by creation time.
func (s *Service) List(ctx context.Context) ([]entity.DiaryEntry, error) {
	book, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return book.List(), nil
}

// Entries returns the diary keyed by article ID.
func (s *Service) Entries(ctx context.Context) (entity.DiaryBook, error) {
	return s.load(ctx)
}

// load returns a copy of the stored book that callers may modify.
func (s *Service) load(ctx context.Context) (entity.DiaryBook, error) {
	book, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load diary: %w", err)
	}
	return book.Clone(), nil
}

func (s *Service) save(ctx context.Context, book entity.DiaryBook) error {
	if err := s.Repo.Save(ctx, book); err != nil {
		return fmt.Errorf("save diary: %w", err)
	}
	return nil
}
