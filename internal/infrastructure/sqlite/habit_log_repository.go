package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

const logColumns = `
	id, habit_id, user_id, log_date, completed, notes, mood, effort, created_at, updated_at
`

type habitLogRepository struct {
	db *sql.DB
}

// NewHabitLogRepository creates a SQLite habit log repository
func NewHabitLogRepository(store *Store) repository.HabitLogRepository {
	return &habitLogRepository{db: store.db}
}

func (r *habitLogRepository) Upsert(ctx context.Context, log *entity.HabitLog) error {
	query := `
		INSERT INTO habit_logs (` + logColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET
			completed = excluded.completed,
			notes = excluded.notes,
			mood = excluded.mood,
			effort = excluded.effort,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		log.ID.String(), log.HabitID.String(), log.UserID.String(), log.Date.String(), log.Completed,
		log.Notes, log.Mood, log.Effort, formatTime(log.CreatedAt), formatTime(log.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert habit log: %w", err)
	}

	return nil
}

func (r *habitLogRepository) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day dates.Day) (*entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = ? AND log_date = ?`

	log, err := scanLog(r.db.QueryRowContext(ctx, query, habitID.String(), day.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrHabitLogNotFound
		}
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}

	return &log, nil
}

func (r *habitLogRepository) ListByHabitID(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = ? ORDER BY log_date ASC`
	return r.list(ctx, query, habitID.String())
}

func (r *habitLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE user_id = ? ORDER BY log_date ASC, habit_id`
	return r.list(ctx, query, userID.String())
}

// Dates are stored as YYYY-MM-DD, so text comparison orders them correctly.
func (r *habitLogRepository) ListByUserRange(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HabitLog, error) {
	if to.Before(from) {
		return nil, entity.ErrInvalidDateRange
	}

	query := `
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE user_id = ? AND log_date >= ? AND log_date <= ?
		ORDER BY log_date ASC, habit_id
	`
	return r.list(ctx, query, userID.String(), from.String(), to.String())
}

func (r *habitLogRepository) list(ctx context.Context, query string, args ...any) ([]entity.HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get habit logs: %w", err)
	}
	defer rows.Close()

	var logs []entity.HabitLog
	for rows.Next() {
		log, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit log: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habit logs: %w", err)
	}

	return logs, nil
}

func scanLog(row rowScanner) (entity.HabitLog, error) {
	var (
		log                         entity.HabitLog
		id, habitID, userID, logDay string
		createdAt, updatedAt        string
	)

	err := row.Scan(
		&id, &habitID, &userID, &logDay, &log.Completed,
		&log.Notes, &log.Mood, &log.Effort, &createdAt, &updatedAt,
	)
	if err != nil {
		return entity.HabitLog{}, err
	}

	if log.ID, err = uuid.Parse(id); err != nil {
		return entity.HabitLog{}, fmt.Errorf("invalid log id %q: %w", id, err)
	}
	if log.HabitID, err = uuid.Parse(habitID); err != nil {
		return entity.HabitLog{}, fmt.Errorf("invalid habit id %q: %w", habitID, err)
	}
	if log.UserID, err = uuid.Parse(userID); err != nil {
		return entity.HabitLog{}, fmt.Errorf("invalid user id %q: %w", userID, err)
	}
	if log.Date, err = dates.Parse(logDay); err != nil {
		return entity.HabitLog{}, err
	}
	if log.CreatedAt, err = parseTime(createdAt); err != nil {
		return entity.HabitLog{}, err
	}
	if log.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return entity.HabitLog{}, err
	}

	return log, nil
}
