package entity

import (
	"time"

	"github.com/google/uuid"
)

// Frequency is how often a habit is meant to be done
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// ExpectedOccurrences returns how many completions a 30-day window should hold
func (f Frequency) ExpectedOccurrences() int {
	switch f {
	case FrequencyWeekly:
		return 4
	case FrequencyMonthly:
		return 1
	default:
		return 30
	}
}

// Habit represents a user's habit
type Habit struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"user_id"`

	// Basic info
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	Category    string    `json:"category"`
	Goal        *int32    `json:"goal,omitempty"`  // target streak length
	Color       *string   `json:"color,omitempty"` // HEX color, e.g., "#FF5722"

	// Derived from the habit's logs, rewritten after every log write
	Streak        int32      `json:"streak"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`

	// Metadata
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GoalReached reports whether streak meets the habit's goal
func (h *Habit) GoalReached(streak int32) bool {
	return h.Goal != nil && *h.Goal > 0 && streak >= *h.Goal
}

// HabitCategory groups habits for the user
type HabitCategory struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        *string   `json:"icon,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
