package diary_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/usecase/diary"
)

/* ───────── 스텁 저장소 ───────── */

type memDiaryRepo struct {
	book    entity.DiaryBook
	loadErr error
	saveErr error
	saves   int
}

func (r *memDiaryRepo) Load(_ context.Context) (entity.DiaryBook, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.book == nil {
		return entity.DiaryBook{}, nil
	}
	return r.book, nil
}

func (r *memDiaryRepo) Save(_ context.Context, book entity.DiaryBook) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.book = book.Clone()
	return nil
}

func ptr(s string) *string { return &s }

/* ───────── 생성 ───────── */

func TestService_CreateEntry(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)

	e, err := svc.CreateEntry(context.Background(), "news_정치_1_0", diary.EntryInput{
		Content: "오늘의 메모",
		Summary: "요약",
		Opinion: "의견",
	})
	require.NoError(t, err)

	assert.Regexp(t, `^diary_\d{20}$`, e.ID)
	assert.Equal(t, "news_정치_1_0", e.ArticleID)
	assert.Equal(t, "오늘의 메모", e.Content)
	assert.False(t, e.CreatedAt.IsZero())
	assert.True(t, e.CreatedAt.Equal(e.UpdatedAt))
	assert.Equal(t, e, repo.book["news_정치_1_0"])
}

func TestService_CreateEntryUpserts(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)
	ctx := context.Background()

	first, err := svc.CreateEntry(ctx, "a1", diary.EntryInput{Content: "x"})
	require.NoError(t, err)
	second, err := svc.CreateEntry(ctx, "a1", diary.EntryInput{Content: "y", Opinion: "z"})
	require.NoError(t, err)

	assert.Len(t, repo.book, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.Equal(t, "y", second.Content)
	assert.Equal(t, "z", second.Opinion)
	assert.Empty(t, second.Summary)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt.Time))

	got, ok, err := svc.GetByArticle(ctx, "a1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", got.Content)
}

func TestService_CreateEntryRequiresArticleID(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)

	_, err := svc.CreateEntry(context.Background(), "  ", diary.EntryInput{Content: "x"})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
	assert.Zero(t, repo.saves)
}

func TestService_CreateEntrySaveError(t *testing.T) {
	repo := &memDiaryRepo{saveErr: errors.New("disk full")}
	svc := diary.NewService(repo)

	_, err := svc.CreateEntry(context.Background(), "a1", diary.EntryInput{})
	assert.ErrorContains(t, err, "disk full")
}

/* ───────── 조회 ───────── */

func TestService_Lookups(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, "a1", diary.EntryInput{Content: "x"})
	require.NoError(t, err)

	has, err := svc.HasEntry(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = svc.HasEntry(ctx, "a2")
	require.NoError(t, err)
	assert.False(t, has)

	byID, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, byID)

	_, err = svc.GetByID(ctx, "diary_missing")
	assert.ErrorIs(t, err, diary.ErrEntryNotFound)

	list, err := svc.EntriesByArticle(ctx, "a1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.EntriesByArticle(ctx, "a2")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}

func TestService_ListOrdersByCreation(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		_, err := svc.CreateEntry(ctx, id, diary.EntryInput{Content: id})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ArticleID)
	assert.Equal(t, "a", list[1].ArticleID)
	assert.Equal(t, "b", list[2].ArticleID)

	book, err := svc.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, book, 3)
	assert.Equal(t, "a", book["a"].Content)
}

/* ───────── 수정 / 삭제 ───────── */

func TestService_UpdatePartial(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, "a1", diary.EntryInput{Content: "c", Summary: "s", Opinion: "o"})
	require.NoError(t, err)

	got, err := svc.Update(ctx, e.ID, diary.UpdateInput{Summary: ptr("new summary")})
	require.NoError(t, err)
	assert.Equal(t, "c", got.Content)
	assert.Equal(t, "new summary", got.Summary)
	assert.Equal(t, "o", got.Opinion)
	assert.Equal(t, got, repo.book["a1"])

	_, err = svc.Update(ctx, "diary_missing", diary.UpdateInput{Content: ptr("x")})
	assert.ErrorIs(t, err, diary.ErrEntryNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := &memDiaryRepo{}
	svc := diary.NewService(repo)
	ctx := context.Background()

	e, err := svc.CreateEntry(ctx, "a1", diary.EntryInput{Content: "c"})
	require.NoError(t, err)
	_, err = svc.CreateEntry(ctx, "a2", diary.EntryInput{Content: "c"})
	require.NoError(t, err)

	ok, err := svc.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotContains(t, repo.book, "a1")

	ok, err = svc.Delete(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.DeleteByArticle(ctx, "a2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, repo.book)

	savesBefore := repo.saves
	ok, err = svc.DeleteByArticle(ctx, "a2")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, savesBefore, repo.saves)
}

func TestService_LoadError(t *testing.T) {
	svc := diary.NewService(&memDiaryRepo{loadErr: errors.New("corrupt")})

	_, err := svc.List(context.Background())
	assert.ErrorContains(t, err, "load diary")
	_, _, err = svc.GetByArticle(context.Background(), "a1")
	assert.Error(t, err)
}
