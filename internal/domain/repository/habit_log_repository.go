package repository

import (
	"context"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// HabitLogRepository defines the interface for habit log persistence
type HabitLogRepository interface {
	// Upsert inserts the log or replaces the one stored for the same habit and day
	Upsert(ctx context.Context, log *entity.HabitLog) error

	// GetByHabitAndDate retrieves the log of a habit for one day
	GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day dates.Day) (*entity.HabitLog, error)

	// ListByHabitID retrieves every log of a habit ordered by date
	ListByHabitID(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error)

	// ListByUserID retrieves every log of a user ordered by date
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.HabitLog, error)

	// ListByUserRange retrieves a user's logs with from <= date <= to
	ListByUserRange(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HabitLog, error)
}
