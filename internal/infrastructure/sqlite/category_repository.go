package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"

	"github.com/google/uuid"
)

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a SQLite category repository
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &categoryRepository{db: store.db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.HabitCategory) error {
	query := `
		INSERT INTO habit_categories (id, user_id, name, color, icon, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		category.ID.String(), category.UserID.String(), category.Name, category.Color,
		category.Icon, category.Description, formatTime(category.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return entity.ErrCategoryExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.HabitCategory, error) {
	query := `
		SELECT id, user_id, name, color, icon, description, created_at
		FROM habit_categories
		WHERE user_id = ?
		ORDER BY name ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer rows.Close()

	var categories []*entity.HabitCategory
	for rows.Next() {
		c := &entity.HabitCategory{}
		var id, owner, createdAt string
		if err := rows.Scan(&id, &owner, &c.Name, &c.Color, &c.Icon, &c.Description, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		if c.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid category id %q: %w", id, err)
		}
		if c.UserID, err = uuid.Parse(owner); err != nil {
			return nil, fmt.Errorf("invalid user id %q: %w", owner, err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) Delete(ctx context.Context, categoryID, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM habit_categories WHERE id = ? AND user_id = ?`, categoryID.String(), userID.String())
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return requireRow(result, entity.ErrCategoryNotFound)
}
