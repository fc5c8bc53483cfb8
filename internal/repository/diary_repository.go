package repository

import (
	"context"

	"newsdiary/internal/domain/entity"
)

// DiaryRepository persists diary entries keyed by article ID.
type DiaryRepository interface {
	Load(ctx context.Context) (entity.DiaryBook, error)
	Save(ctx context.Context, book entity.DiaryBook) error
}
