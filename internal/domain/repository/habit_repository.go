package repository

import (
	"context"
	"time"

	"habit-analytics/internal/domain/entity"

	"github.com/google/uuid"
)

// HabitRepository defines the interface for habit persistence
type HabitRepository interface {
	// Create creates a new habit
	Create(ctx context.Context, habit *entity.Habit) error

	// GetByIDAndUserID retrieves a habit by ID and user ID (for authorization)
	GetByIDAndUserID(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)

	// GetByUserID retrieves all habits for a user
	GetByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, error)

	// ListActive retrieves every active habit across users
	ListActive(ctx context.Context) ([]*entity.Habit, error)

	// Update updates the editable fields of a habit
	Update(ctx context.Context, habit *entity.Habit) error

	// Delete removes a habit; its logs go with it
	Delete(ctx context.Context, habitID uuid.UUID) error

	// UpdateStreak writes the derived streak fields
	UpdateStreak(ctx context.Context, habitID uuid.UUID, streak int32, lastCompleted *time.Time) error
}
