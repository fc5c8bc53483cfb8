package repository

import (
	"context"

	"newsdiary/internal/domain/entity"
)

// IssueRepository persists calendar issues in creation order.
type IssueRepository interface {
	Load(ctx context.Context) ([]entity.CalendarIssue, error)
	Save(ctx context.Context, issues []entity.CalendarIssue) error
}
