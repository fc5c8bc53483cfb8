package jsondoc

import (
	"context"

	"newsdiary/internal/domain/entity"
	"newsdiary/internal/infra/docstore"
	"newsdiary/internal/observability/metrics"
	"newsdiary/internal/repository"
)

type IssueRepo struct {
	store docstore.Store
}

func NewIssueRepo(store docstore.Store) repository.IssueRepository {
	return &IssueRepo{store: store}
}

func (r *IssueRepo) Load(ctx context.Context) ([]entity.CalendarIssue, error) {
	issues, err := docstore.LoadList[entity.CalendarIssue](ctx, r.store, IssuesDocument)
	if err != nil {
		return nil, err
	}
	metrics.UpdateStoredCounts(-1, -1, len(issues))
	return issues, nil
}

func (r *IssueRepo) Save(ctx context.Context, issues []entity.CalendarIssue) error {
	if issues == nil {
		issues = []entity.CalendarIssue{}
	}
	if err := docstore.Save(ctx, r.store, IssuesDocument, issues); err != nil {
		return err
	}
	metrics.UpdateStoredCounts(-1, -1, len(issues))
	return nil
}
