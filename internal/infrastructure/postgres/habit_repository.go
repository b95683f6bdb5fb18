package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const habitColumns = `
	id, user_id, name, description, frequency, category, goal, color,
	streak, last_completed, is_active, created_at, updated_at
`

type habitRepository struct {
	pool *pgxpool.Pool
}

// NewHabitRepository creates a new PostgreSQL habit repository
func NewHabitRepository(pool *pgxpool.Pool) repository.HabitRepository {
	return &habitRepository{pool: pool}
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		habit.ID, habit.UserID, habit.Name, habit.Description, string(habit.Frequency), habit.Category, habit.Goal, habit.Color,
		habit.Streak, habit.LastCompleted, habit.IsActive, habit.CreatedAt, habit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

func (r *habitRepository) GetByIDAndUserID(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1 AND user_id = $2`

	habit, err := scanHabit(r.pool.QueryRow(ctx, query, habitID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

func (r *habitRepository) GetByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = $1`

	if activeOnly {
		query += " AND is_active = TRUE"
	}

	query += " ORDER BY created_at ASC, id ASC"

	return r.list(ctx, query, userID)
}

func (r *habitRepository) ListActive(ctx context.Context) ([]*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE is_active = TRUE ORDER BY user_id, created_at`
	return r.list(ctx, query)
}

func (r *habitRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Habit, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get habits: %w", err)
	}
	defer rows.Close()

	var habits []*entity.Habit
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, habit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

func (r *habitRepository) Update(ctx context.Context, habit *entity.Habit) error {
	query := `
		UPDATE habits SET
			name = $1,
			description = $2,
			frequency = $3,
			category = $4,
			goal = $5,
			color = $6,
			is_active = $7,
			updated_at = $8
		WHERE id = $9
	`

	result, err := r.pool.Exec(ctx, query,
		habit.Name, habit.Description, string(habit.Frequency), habit.Category, habit.Goal, habit.Color,
		habit.IsActive, habit.UpdatedAt, habit.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) Delete(ctx context.Context, habitID uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM habits WHERE id = $1`, habitID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrHabitNotFound
	}

	return nil
}

func (r *habitRepository) UpdateStreak(ctx context.Context, habitID uuid.UUID, streak int32, lastCompleted *time.Time) error {
	query := `
		UPDATE habits SET
			streak = $1,
			last_completed = $2,
			updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, streak, lastCompleted, time.Now().UTC(), habitID)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	if result.RowsAffected() == 0 {
		return entity.ErrHabitNotFound
	}

	return nil
}

func scanHabit(row pgx.Row) (*entity.Habit, error) {
	habit := &entity.Habit{}
	var frequency string
	err := row.Scan(
		&habit.ID, &habit.UserID, &habit.Name, &habit.Description, &frequency, &habit.Category, &habit.Goal, &habit.Color,
		&habit.Streak, &habit.LastCompleted, &habit.IsActive, &habit.CreatedAt, &habit.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	habit.Frequency = entity.Frequency(frequency)
	return habit, nil
}
