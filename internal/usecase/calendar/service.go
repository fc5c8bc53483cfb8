package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/pkg/idgen"
	"newsdiary/internal/repository"
)

const idPrefix = "issue"

// UpdateInput represents a partial update. Nil fields are left unchanged.
type UpdateInput struct {
	Title   *string
	Content *string
}

// Service manages calendar issues.
type Service struct {
	Repo repository.IssueRepository

	ids *idgen.Generator
	now func() time.Time
}

// NewService creates a calendar Service.
func NewService(repo repository.IssueRepository) *Service {
	return &Service{Repo: repo, ids: idgen.New(), now: time.Now}
}

// Create validates and stores a new issue.
func (s *Service) Create(ctx context.Context, date, title, content string) (entity.CalendarIssue, error) {
	now := entity.NewTimestamp(s.now())
	issue := entity.CalendarIssue{
		Date:      date,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := issue.Validate(); err != nil {
		return entity.CalendarIssue{}, err
	}

	issues, err := s.All(ctx)
	if err != nil {
		return entity.CalendarIssue{}, err
	}
	issue.ID = s.ids.Next(idPrefix)
	issues = append(issues, issue)

	if err := s.save(ctx, issues); err != nil {
		return entity.CalendarIssue{}, err
	}
	slog.InfoContext(ctx, "calendar issue created",
		slog.String("issue_id", issue.ID),
		slog.String("date", date))
	return issue, nil
}

// All returns every issue in creation order.
func (s *Service) All(ctx context.Context) ([]entity.CalendarIssue, error) {
	issues, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	return issues, nil
}

// ByDate returns the issues of one date.
func (s *Service) ByDate(ctx context.Context, date string) ([]entity.CalendarIssue, error) {
	if err := entity.ValidateDate("date", date); err != nil {
		return nil, err
	}
	issues, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.CalendarIssue, 0)
	for _, i := range issues {
		if i.Date == date {
			out = append(out, i)
		}
	}
	return out, nil
}

// Get returns one issue or ErrIssueNotFound.
func (s *Service) Get(ctx context.Context, id string) (entity.CalendarIssue, error) {
	issues, err := s.All(ctx)
	if err != nil {
		return entity.CalendarIssue{}, err
	}
	for _, i := range issues {
		if i.ID == id {
			return i, nil
		}
	}
	return entity.CalendarIssue{}, ErrIssueNotFound
}

// Update applies the non-nil fields to an issue.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (entity.CalendarIssue, error) {
	issues, err := s.All(ctx)
	if err != nil {
		return entity.CalendarIssue{}, err
	}
	idx := indexOf(issues, id)
	if idx < 0 {
		return entity.CalendarIssue{}, ErrIssueNotFound
	}

	issue := issues[idx]
	if in.Title != nil {
		issue.Title = *in.Title
	}
	if in.Content != nil {
		issue.Content = *in.Content
	}
	if err := issue.Validate(); err != nil {
		return entity.CalendarIssue{}, err
	}
	issue.UpdatedAt = entity.NewTimestamp(s.now())

	updated := make([]entity.CalendarIssue, len(issues))
	copy(updated, issues)
	updated[idx] = issue
	if err := s.save(ctx, updated); err != nil {
		return entity.CalendarIssue{}, err
	}
	return issue, nil
}

// Delete removes an issue and reports whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	issues, err := s.All(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(issues, id)
	if idx < 0 {
		return false, nil
	}

	kept := make([]entity.CalendarIssue, 0, len(issues)-1)
	kept = append(kept, issues[:idx]...)
	kept = append(kept, issues[idx+1:]...)
	if err := s.save(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

// DatesWithIssues returns the distinct dates that carry issues, newest first.
func (s *Service) DatesWithIssues(ctx context.Context) ([]string, error) {
	issues, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(issues))
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		if _, ok := seen[i.Date]; ok {
			continue
		}
		seen[i.Date] = struct{}{}
		out = append(out, i.Date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(out)))
	return out, nil
}

func (s *Service) save(ctx context.Context, issues []entity.CalendarIssue) error {
	if err := s.Repo.Save(ctx, issues); err != nil {
		return fmt.Errorf("save issues: %w", err)
	}
	return nil
}

func indexOf(issues []entity.CalendarIssue, id string) int {
	for i := range issues {
		if issues[i].ID == id {
			return i
		}
	}
	return -1
}
