package repository

import (
	"context"

	"habit-analytics/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for habit category persistence
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.HabitCategory) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.HabitCategory, error)
	Delete(ctx context.Context, categoryID, userID uuid.UUID) error
}
