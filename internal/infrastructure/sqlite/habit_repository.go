package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"

	"github.com/google/uuid"
)

const habitColumns = `
	id, user_id, name, description, frequency, category, goal, color,
	streak, last_completed, is_active, created_at, updated_at
`

type habitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a SQLite habit repository
func NewHabitRepository(store *Store) repository.HabitRepository {
	return &habitRepository{db: store.db}
}

func (r *habitRepository) Create(ctx context.Context, habit *entity.Habit) error {
	query := `
		INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		habit.ID.String(), habit.UserID.String(), habit.Name, habit.Description, string(habit.Frequency), habit.Category, habit.Goal, habit.Color,
		habit.Streak, nullTime(habit.LastCompleted), habit.IsActive, formatTime(habit.CreatedAt), formatTime(habit.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}

	return nil
}

func (r *habitRepository) GetByIDAndUserID(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = ? AND user_id = ?`

	habit, err := scanHabit(r.db.QueryRowContext(ctx, query, habitID.String(), userID.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrHabitNotFound
		}
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}

	return habit, nil
}

func (r *habitRepository) GetByUserID(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE user_id = ?`
	if activeOnly {
		query += " AND is_active = 1"
	}
	query += " ORDER BY created_at ASC, id ASC"

	return r.list(ctx, query, userID.String())
}

func (r *habitRepository) ListActive(ctx context.Context) ([]*entity.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE is_active = 1 ORDER BY user_id, created_at`
	return r.list(ctx, query)
}

func (r *habitRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
			name = ?,
			description = ?,
			frequency = ?,
			category = ?,
			goal = ?,
			color = ?,
			is_active = ?,
			updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		habit.Name, habit.Description, string(habit.Frequency), habit.Category, habit.Goal, habit.Color,
		habit.IsActive, formatTime(habit.UpdatedAt), habit.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}

	return requireRow(result, entity.ErrHabitNotFound)
}

func (r *habitRepository) Delete(ctx context.Context, habitID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, habitID.String())
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}

	return requireRow(result, entity.ErrHabitNotFound)
}

func (r *habitRepository) UpdateStreak(ctx context.Context, habitID uuid.UUID, streak int32, lastCompleted *time.Time) error {
	query := `UPDATE habits SET streak = ?, last_completed = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, streak, nullTime(lastCompleted), formatTime(time.Now()), habitID.String())
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}

	return requireRow(result, entity.ErrHabitNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHabit(row rowScanner) (*entity.Habit, error) {
	habit := &entity.Habit{}
	var (
		id, userID, frequency string
		lastCompleted         sql.NullString
		createdAt, updatedAt  string
	)

	err := row.Scan(
		&id, &userID, &habit.Name, &habit.Description, &frequency, &habit.Category, &habit.Goal, &habit.Color,
		&habit.Streak, &lastCompleted, &habit.IsActive, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if habit.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid habit id %q: %w", id, err)
	}
	if habit.UserID, err = uuid.Parse(userID); err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	habit.Frequency = entity.Frequency(frequency)
	if habit.LastCompleted, err = parseNullTime(lastCompleted); err != nil {
		return nil, err
	}
	if habit.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if habit.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return habit, nil
}

func requireRow(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
