package entity

import (
	"time"

	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// Rating bounds for mood and effort
const (
	MinRating = 1
	MaxRating = 5
)

// HabitLog records what happened with a habit on one calendar day
type HabitLog struct {
	ID      uuid.UUID `json:"id"`
	HabitID uuid.UUID `json:"habit_id"`
	UserID  uuid.UUID `json:"user_id"`

	Date      dates.Day `json:"date"`
	Completed bool      `json:"completed"`

	// Optional self-reported details
	Notes  *string `json:"notes,omitempty"`
	Mood   *int32  `json:"mood,omitempty"`
	Effort *int32  `json:"effort,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no pointers with l
func (l HabitLog) Clone() HabitLog {
	out := l
	out.Notes = ClonePtr(l.Notes)
	out.Mood = ClonePtr(l.Mood)
	out.Effort = ClonePtr(l.Effort)
	return out
}

// ValidRating reports whether r is unset or within bounds
func ValidRating(r *int32) bool {
	return r == nil || (*r >= MinRating && *r <= MaxRating)
}

// ClonePtr returns a fresh copy of *p, or nil
func ClonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
