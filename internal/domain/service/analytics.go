package service

import (
	"context"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// AnalyticsEngine turns a habit's logs into statistics
type AnalyticsEngine interface {
	CalculateAnalytics(habit entity.Habit, logs []entity.HabitLog) entity.HabitAnalytics
}

// InsightGenerator derives insights from analytics
type InsightGenerator interface {
	// GenerateInsights evaluates the per-habit rules; allHabits and allLogs feed the category comparison
	GenerateInsights(habit entity.Habit, analytics entity.HabitAnalytics, allHabits []entity.Habit, allLogs []entity.HabitLog) []entity.HabitInsight

	// GetOverallInsights evaluates the cross-habit rules
	GetOverallInsights(habits []entity.Habit, logs []entity.HabitLog) []entity.HabitInsight
}

// CalendarProjector lays habits and logs out on calendar grids
type CalendarProjector interface {
	GenerateCalendarMonth(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) entity.CalendarMonth
	GenerateHeatmap(habits []entity.Habit, logs []entity.HabitLog, from, to dates.Day) []entity.HeatmapCell
	GetWeeklyOverview(start dates.Day, habits []entity.Habit, logs []entity.HabitLog) entity.WeeklyOverview
	GetMonthlyStats(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) entity.MonthlyStats
	GetHabitsForDate(day dates.Day, habits []entity.Habit, logs []entity.HabitLog) []entity.CalendarHabitData
	GetCompletionCountsForMonth(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) []int
}

// ReportService loads a user's data and runs the engines on it
type ReportService interface {
	GetHabitAnalytics(ctx context.Context, habitID, userID uuid.UUID) (*entity.HabitAnalytics, error)
	GetHabitInsights(ctx context.Context, habitID, userID uuid.UUID) ([]entity.HabitInsight, error)
	GetOverallInsights(ctx context.Context, userID uuid.UUID) ([]entity.HabitInsight, error)
	GetCalendarMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.CalendarMonth, error)
	GetHeatmap(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HeatmapCell, error)
	GetWeeklyOverview(ctx context.Context, userID uuid.UUID, start dates.Day) (*entity.WeeklyOverview, error)
	GetMonthlyStats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.MonthlyStats, error)

	// GetDay lists every active habit with its status on one day
	GetDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]entity.CalendarHabitData, error)

	// GetMonthCounts returns completions per day of month, index 0 being the 1st
	GetMonthCounts(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]int, error)
}
