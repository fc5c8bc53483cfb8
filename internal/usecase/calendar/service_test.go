package calendar_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/usecase/calendar"
)

/* ───────── 스텁 저장소 ───────── */

type memIssueRepo struct {
	issues  []entity.CalendarIssue
	loadErr error
	saveErr error
	saves   int
}

func (r *memIssueRepo) Load(_ context.Context) ([]entity.CalendarIssue, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return append([]entity.CalendarIssue{}, r.issues...), nil
}

func (r *memIssueRepo) Save(_ context.Context, issues []entity.CalendarIssue) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.issues = append([]entity.CalendarIssue{}, issues...)
	return nil
}

func ptr(s string) *string { return &s }

func TestService_CreateAndQuery(t *testing.T) {
	repo := &memIssueRepo{}
	svc := calendar.NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, "2024-05-01", "총선", "투표율 확인")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "2024-05-01", "금리", "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, "2024-05-03", "환율", "")
	require.NoError(t, err)

	assert.Regexp(t, `^issue_\d{20}$`, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, repo.issues, 3)

	sameDay, err := svc.ByDate(ctx, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, sameDay, 2)
	assert.Equal(t, "총선", sameDay[0].Title)
	assert.Equal(t, "금리", sameDay[1].Title)

	none, err := svc.ByDate(ctx, "2024-05-02")
	require.NoError(t, err)
	assert.Empty(t, none)

	dates, err := svc.DatesWithIssues(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-03", "2024-05-01"}, dates)

	got, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)

	_, err = svc.Get(ctx, "issue_missing")
	assert.ErrorIs(t, err, calendar.ErrIssueNotFound)
}

func TestService_CreateValidation(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		title string
		field string
	}{
		{"missing date", "", "t", "date"},
		{"bad date format", "2024/05/01", "t", "date"},
		{"impossible date", "2024-02-30", "t", "date"},
		{"empty title", "2024-05-01", " ", "title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memIssueRepo{}
			svc := calendar.NewService(repo)

			_, err := svc.Create(context.Background(), tt.date, tt.title, "")
			var verr *entity.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, repo.saves)
		})
	}
}

func TestService_ByDateRejectsBadDate(t *testing.T) {
	svc := calendar.NewService(&memIssueRepo{})
	_, err := svc.ByDate(context.Background(), "May 1st")
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
}

func TestService_UpdatePartial(t *testing.T) {
	repo := &memIssueRepo{}
	svc := calendar.NewService(repo)
	ctx := context.Background()

	issue, err := svc.Create(ctx, "2024-05-01", "제목", "내용")
	require.NoError(t, err)

	got, err := svc.Update(ctx, issue.ID, calendar.UpdateInput{Content: ptr("새 내용")})
	require.NoError(t, err)
	assert.Equal(t, "제목", got.Title)
	assert.Equal(t, "새 내용", got.Content)
	assert.True(t, got.CreatedAt.Equal(issue.CreatedAt))
	assert.Equal(t, got, repo.issues[0])

	_, err = svc.Update(ctx, issue.ID, calendar.UpdateInput{Title: ptr("")})
	assert.ErrorIs(t, err, entity.ErrValidationFailed)
	assert.Equal(t, "제목", repo.issues[0].Title)

	_, err = svc.Update(ctx, "issue_missing", calendar.UpdateInput{Title: ptr("x")})
	assert.ErrorIs(t, err, calendar.ErrIssueNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := &memIssueRepo{}
	svc := calendar.NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, "2024-05-01", "A", "")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "2024-05-01", "B", "")
	require.NoError(t, err)

	ok, err := svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []entity.CalendarIssue{b}, repo.issues)

	ok, err = svc.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestService_RepositoryErrors(t *testing.T) {
	svc := calendar.NewService(&memIssueRepo{loadErr: errors.New("corrupt")})
	_, err := svc.All(context.Background())
	assert.ErrorContains(t, err, "load issues")

	svc = calendar.NewService(&memIssueRepo{saveErr: errors.New("disk full")})
	_, err = svc.Create(context.Background(), "2024-05-01", "t", "")
	assert.ErrorContains(t, err, "disk full")
}
