package service

import (
	"context"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// CreateHabitInput carries the fields of a new habit
type CreateHabitInput struct {
	Name        string
	Description *string
	Frequency   entity.Frequency
	Category    string
	Goal        *int32
	Color       *string
}

// UpdateHabitInput carries optional replacements; nil leaves a field unchanged
type UpdateHabitInput struct {
	Name        *string
	Description *string
	Frequency   *entity.Frequency
	Category    *string
	Goal        *int32
	Color       *string
	IsActive    *bool
}

// LogInput is a full log write for one habit and day
type LogInput struct {
	Date      dates.Day
	Completed bool
	Notes     *string
	Mood      *int32
	Effort    *int32
}

// CreateCategoryInput carries the fields of a new category
type CreateCategoryInput struct {
	Name        string
	Color       string
	Icon        *string
	Description *string
}

// HabitService defines the interface for habit business logic
type HabitService interface {
	CreateHabit(ctx context.Context, userID uuid.UUID, in CreateHabitInput) (*entity.Habit, error)
	GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error)
	ListHabits(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, int32, error)
	UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, in UpdateHabitInput) (*entity.Habit, error)

	// DeleteHabit removes the habit together with its logs
	DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error

	// ToggleCompletion flips the completion of a day, creating a completed log when none exists
	ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, day dates.Day) (*entity.Habit, *entity.HabitLog, error)

	// LogCompletion writes a full log for a day, replacing any existing one
	LogCompletion(ctx context.Context, habitID, userID uuid.UUID, in LogInput) (*entity.Habit, *entity.HabitLog, error)

	// GetHabitHistory returns the habit's logs ordered by date
	GetHabitHistory(ctx context.Context, habitID, userID uuid.UUID) ([]entity.HabitLog, error)

	// ReconcileStreaks recomputes derived streak fields of all active habits and returns how many changed
	ReconcileStreaks(ctx context.Context) (int, error)

	CreateCategory(ctx context.Context, userID uuid.UUID, in CreateCategoryInput) (*entity.HabitCategory, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*entity.HabitCategory, error)
	DeleteCategory(ctx context.Context, categoryID, userID uuid.UUID) error
}

// EventPublisher delivers habit events to downstream consumers
type EventPublisher interface {
	Publish(ctx context.Context, event *entity.HabitEvent) error
}
