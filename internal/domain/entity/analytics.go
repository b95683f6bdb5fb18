package entity

import (
	"time"

	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

const (
	WeeklyBuckets  = 7
	MonthlyBuckets = 6
)

// HabitAnalytics is the statistics summary of one habit
type HabitAnalytics struct {
	HabitID            uuid.UUID           `json:"habit_id"`
	TotalCompletions   int                 `json:"total_completions"`
	CurrentStreak      int                 `json:"current_streak"`
	LongestStreak      int                 `json:"longest_streak"`
	CompletionRate     float64             `json:"completion_rate"` // percent, last 30 days
	AverageMood        *float64            `json:"average_mood,omitempty"`
	AverageEffort      *float64            `json:"average_effort,omitempty"`
	WeeklyCompletions  [WeeklyBuckets]int  `json:"weekly_completions"`  // oldest week first
	MonthlyCompletions [MonthlyBuckets]int `json:"monthly_completions"` // oldest month first
	BestDay            string              `json:"best_day,omitempty"`
	MissedDays         int                 `json:"missed_days"`
	Consistency        int                 `json:"consistency"` // 0..100
}

// InsightType classifies a HabitInsight
type InsightType string

const (
	InsightStreak         InsightType = "streak"
	InsightCompletion     InsightType = "completion"
	InsightConsistency    InsightType = "consistency"
	InsightMood           InsightType = "mood"
	InsightRecommendation InsightType = "recommendation"
)

// Trend is the direction an insight points at
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// HabitInsight is a human-readable observation derived from analytics
type HabitInsight struct {
	ID          string      `json:"id"`
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Value       string      `json:"value,omitempty"`
	Trend       Trend       `json:"trend,omitempty"`
	Actionable  bool        `json:"actionable"`
	Suggestion  string      `json:"suggestion,omitempty"`
}

// EventType names a habit event published to the broker
type EventType string

const (
	EventLogRecorded       EventType = "habit.log_recorded"
	EventStreakGoalReached EventType = "habit.streak_goal_reached"
)

// HabitEvent is emitted after a log write has been applied
type HabitEvent struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	HabitID    uuid.UUID `json:"habit_id"`
	UserID     uuid.UUID `json:"user_id"`
	Date       dates.Day `json:"date"`
	Completed  bool      `json:"completed"`
	Streak     int32     `json:"streak"`
	OccurredAt time.Time `json:"occurred_at"`
}
