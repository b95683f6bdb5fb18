package service

import (
	"context"
	"fmt"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"
	"habit-analytics/internal/domain/service"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// MaxHeatmapDays bounds the range a single heatmap request may cover.
const MaxHeatmapDays = 366

type reportService struct {
	habitRepo repository.HabitRepository
	logRepo   repository.HabitLogRepository
	analytics service.AnalyticsEngine
	insights  service.InsightGenerator
	calendar  service.CalendarProjector
}

// NewReportService creates the read side that feeds repository snapshots to the engines
func NewReportService(
	habitRepo repository.HabitRepository,
	logRepo repository.HabitLogRepository,
	analytics service.AnalyticsEngine,
	insights service.InsightGenerator,
	calendar service.CalendarProjector,
) service.ReportService {
	return &reportService{
		habitRepo: habitRepo,
		logRepo:   logRepo,
		analytics: analytics,
		insights:  insights,
		calendar:  calendar,
	}
}

func (s *reportService) GetHabitAnalytics(ctx context.Context, habitID, userID uuid.UUID) (*entity.HabitAnalytics, error) {
	habit, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByHabitID(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	analytics := s.analytics.CalculateAnalytics(*habit, logs)
	return &analytics, nil
}

func (s *reportService) GetHabitInsights(ctx context.Context, habitID, userID uuid.UUID) ([]entity.HabitInsight, error) {
	habit, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	habits, logs, err := s.snapshot(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	analytics := s.analytics.CalculateAnalytics(*habit, logsFor(habit.ID, logs))
	return s.insights.GenerateInsights(*habit, analytics, habits, logs), nil
}

func (s *reportService) GetOverallInsights(ctx context.Context, userID uuid.UUID) ([]entity.HabitInsight, error) {
	habits, logs, err := s.snapshot(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	return s.insights.GetOverallInsights(habits, logs), nil
}

func (s *reportService) GetCalendarMonth(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.CalendarMonth, error) {
	habits, logs, err := s.snapshot(ctx, userID, true)
	if err != nil {
		return nil, err
	}

	cal := s.calendar.GenerateCalendarMonth(year, month, habits, logs)
	return &cal, nil
}

func (s *reportService) GetHeatmap(ctx context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HeatmapCell, error) {
	if to < from || to.Sub(from) >= MaxHeatmapDays {
		return nil, entity.ErrInvalidDateRange
	}

	habits, err := s.activeHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	return s.calendar.GenerateHeatmap(habits, logs, from, to), nil
}

func (s *reportService) GetWeeklyOverview(ctx context.Context, userID uuid.UUID, start dates.Day) (*entity.WeeklyOverview, error) {
	habits, err := s.activeHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByUserRange(ctx, userID, start, start.AddDays(6))
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	overview := s.calendar.GetWeeklyOverview(start, habits, logs)
	return &overview, nil
}

func (s *reportService) GetMonthlyStats(ctx context.Context, userID uuid.UUID, year int, month time.Month) (*entity.MonthlyStats, error) {
	habits, err := s.activeHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	first := dates.New(year, month, 1)
	logs, err := s.logRepo.ListByUserRange(ctx, userID, first, first.EndOfMonth())
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	stats := s.calendar.GetMonthlyStats(year, month, habits, logs)
	return &stats, nil
}

func (s *reportService) GetDay(ctx context.Context, userID uuid.UUID, day dates.Day) ([]entity.CalendarHabitData, error) {
	habits, err := s.activeHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByUserRange(ctx, userID, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	return s.calendar.GetHabitsForDate(day, habits, logs), nil
}

func (s *reportService) GetMonthCounts(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]int, error) {
	habits, err := s.activeHabits(ctx, userID)
	if err != nil {
		return nil, err
	}

	first := dates.New(year, month, 1)
	logs, err := s.logRepo.ListByUserRange(ctx, userID, first, first.EndOfMonth())
	if err != nil {
		return nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	return s.calendar.GetCompletionCountsForMonth(year, month, habits, logs), nil
}

// snapshot loads the user's habits and every log they own.
func (s *reportService) snapshot(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]entity.Habit, []entity.HabitLog, error) {
	habits, err := s.habitRepo.GetByUserID(ctx, userID, activeOnly)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habits: %w", err)
	}

	logs, err := s.logRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list habit logs: %w", err)
	}

	return derefHabits(habits), logs, nil
}

func (s *reportService) activeHabits(ctx context.Context, userID uuid.UUID) ([]entity.Habit, error) {
	habits, err := s.habitRepo.GetByUserID(ctx, userID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return derefHabits(habits), nil
}

func derefHabits(habits []*entity.Habit) []entity.Habit {
	out := make([]entity.Habit, 0, len(habits))
	for _, h := range habits {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out
}

func logsFor(habitID uuid.UUID, logs []entity.HabitLog) []entity.HabitLog {
	var out []entity.HabitLog
	for _, l := range logs {
		if l.HabitID == habitID {
			out = append(out, l)
		}
	}
	return out
}
