package repository

import (
	"context"
	"errors"

	"spica/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// PromptLogRepo records generation prompts for later review.
type PromptLogRepo interface {
	Create(ctx context.Context, r *domain.PromptRecord) error
	GetByID(ctx context.Context, id string) (*domain.PromptRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.PromptRecord, error)
	CountByTask(ctx context.Context) (map[string]int, error)
}
