package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const logColumns = `
	id, habit_id, user_id, log_date, completed, notes, mood, effort, created_at, updated_at
`

type habitLogRepository struct {
	pool *pgxpool.Pool
}

// NewHabitLogRepository creates a new PostgreSQL habit log repository
func NewHabitLogRepository(pool *pgxpool.Pool) repository.HabitLogRepository {
	return &habitLogRepository{pool: pool}
}

func (r *habitLogRepository) Upsert(ctx context.Context, log *entity.HabitLog) error {
	query := `
		INSERT INTO habit_logs (` + logColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (habit_id, log_date) DO UPDATE SET
			completed = EXCLUDED.completed,
			notes = EXCLUDED.notes,
			mood = EXCLUDED.mood,
			effort = EXCLUDED.effort,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.pool.Exec(ctx, query,
		log.ID, log.HabitID, log.UserID, log.Date.Time(), log.Completed,
		log.Notes, log.Mood, log.Effort, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert habit log: %w", err)
	}

	return nil
}

func (r *habitLogRepository) GetByHabitAndDate(ctx context.Context, habitID uuid.UUID, day dates.Day) (*entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = $1 AND log_date = $2`

	log, err := scanLog(r.pool.QueryRow(ctx, query, habitID, day.Time()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrHabitLogNotFound
		}
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}

	return &log, nil
}

func (r *habitLogRepository) ListByHabitID(ctx context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE habit_id = $1 ORDER BY log_date ASC`
	return r.list(ctx, query, habitID)
}

func (r *habitLogRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]entity.HabitLog, error) {
	query := `SELECT ` + logColumns + ` FROM habit_logs WHERE user_id = $1 ORDER BY log_date ASC, habit_id`
	return r.list(ctx, query, userID)
}

func (r *habitLogRepository) ListByUserRange(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HabitLog, error) {
	if to.Before(from) {
		return nil, entity.ErrInvalidDateRange
	}

	query := `
		SELECT ` + logColumns + ` FROM habit_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
		ORDER BY log_date ASC, habit_id
	`
	return r.list(ctx, query, userID, from.Time(), to.Time())
}

func (r *habitLogRepository) list(ctx context.Context, query string, args ...any) ([]entity.HabitLog, error) {
	rows, err := r.pool.Query(ctx, query, args...)
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

func scanLog(row pgx.Row) (entity.HabitLog, error) {
	var log entity.HabitLog
	var logDate time.Time
	err := row.Scan(
		&log.ID, &log.HabitID, &log.UserID, &logDate, &log.Completed,
		&log.Notes, &log.Mood, &log.Effort, &log.CreatedAt, &log.UpdatedAt,
	)
	if err != nil {
		return entity.HabitLog{}, err
	}
	log.Date = dates.FromTime(logDate)
	return log, nil
}
