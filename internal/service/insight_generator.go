package service

import (
	"fmt"
	"math"
	"strconv"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"

	"github.com/google/uuid"
)

// Insight thresholds
const (
	greatStreakDays       = 7
	personalBestMinDays   = 5
	highCompletionRate    = 80.0
	lowCompletionRate     = 50.0
	highConsistency       = 90
	lowConsistency        = 60
	positiveMood          = 4.0
	categoryLeaderMargin  = 20.0
	overallExcellentRate  = 75.0
	strongestCategoryRate = 80.0
)

type insightGenerator struct {
	engine service.AnalyticsEngine
	log    *logger.Logger
}

// NewInsightGenerator creates an insight generator. The engine computes the
// sibling analytics needed for category comparisons.
func NewInsightGenerator(engine service.AnalyticsEngine, log *logger.Logger) service.InsightGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &insightGenerator{engine: engine, log: log}
}

func (g *insightGenerator) GenerateInsights(habit entity.Habit, analytics entity.HabitAnalytics, allHabits []entity.Habit, allLogs []entity.HabitLog) []entity.HabitInsight {
	insights := make([]entity.HabitInsight, 0, 8)
	id := habit.ID.String()

	if analytics.CurrentStreak >= greatStreakDays {
		insights = append(insights, entity.HabitInsight{
			ID:          "streak-" + id,
			Type:        entity.InsightStreak,
			Title:       "Great Streak!",
			Description: fmt.Sprintf("You're on a %d-day streak with %s", analytics.CurrentStreak, habit.Name),
			Value:       strconv.Itoa(analytics.CurrentStreak),
			Trend:       entity.TrendUp,
		})
	}
	if analytics.CurrentStreak == analytics.LongestStreak && analytics.CurrentStreak >= personalBestMinDays {
		insights = append(insights, entity.HabitInsight{
			ID:          "personal-best-" + id,
			Type:        entity.InsightStreak,
			Title:       "Personal Best!",
			Description: fmt.Sprintf("This is your longest streak for %s", habit.Name),
			Value:       strconv.Itoa(analytics.LongestStreak),
			Trend:       entity.TrendUp,
		})
	}

	rate := formatPercent(analytics.CompletionRate)
	switch {
	case analytics.CompletionRate >= highCompletionRate:
		insights = append(insights, entity.HabitInsight{
			ID:          "completion-high-" + id,
			Type:        entity.InsightCompletion,
			Title:       "Excellent Consistency",
			Description: rate + " completion rate is outstanding",
			Value:       rate,
			Trend:       entity.TrendUp,
		})
	case analytics.CompletionRate < lowCompletionRate:
		insights = append(insights, entity.HabitInsight{
			ID:          "completion-low-" + id,
			Type:        entity.InsightCompletion,
			Title:       "Room for Improvement",
			Description: rate + " completion rate could be better",
			Value:       rate,
			Trend:       entity.TrendDown,
			Actionable:  true,
			Suggestion:  "Try reducing the habit to a smaller, more manageable version",
		})
	}

	switch {
	case analytics.Consistency >= highConsistency:
		insights = append(insights, entity.HabitInsight{
			ID:          "consistency-high-" + id,
			Type:        entity.InsightConsistency,
			Title:       "Very Consistent",
			Description: fmt.Sprintf("You're maintaining great consistency with %s", habit.Name),
			Value:       strconv.Itoa(analytics.Consistency),
			Trend:       entity.TrendStable,
		})
	case analytics.Consistency < lowConsistency:
		insights = append(insights, entity.HabitInsight{
			ID:          "consistency-low-" + id,
			Type:        entity.InsightConsistency,
			Title:       "Inconsistent Pattern",
			Description: "Try to reduce gaps between completions",
			Value:       strconv.Itoa(analytics.Consistency),
			Trend:       entity.TrendDown,
			Actionable:  true,
			Suggestion:  "Set up reminders or pair this habit with an existing routine",
		})
	}

	if analytics.AverageMood != nil && *analytics.AverageMood >= positiveMood {
		insights = append(insights, entity.HabitInsight{
			ID:          "mood-positive-" + id,
			Type:        entity.InsightMood,
			Title:       "Positive Impact",
			Description: fmt.Sprintf("%s seems to boost your mood", habit.Name),
			Value:       strconv.FormatFloat(*analytics.AverageMood, 'f', 1, 64),
			Trend:       entity.TrendUp,
		})
	}

	if analytics.BestDay != "" {
		insights = append(insights, entity.HabitInsight{
			ID:          "best-day-" + id,
			Type:        entity.InsightCompletion,
			Title:       "Best Day Pattern",
			Description: fmt.Sprintf("You complete %s most often on %s", habit.Name, analytics.BestDay),
			Value:       analytics.BestDay,
			Trend:       entity.TrendStable,
			Actionable:  true,
			Suggestion:  "Consider scheduling this habit on your most successful day",
		})
	}

	if avg, ok := g.siblingCompletionRate(habit, allHabits, allLogs); ok && analytics.CompletionRate > avg+categoryLeaderMargin {
		insights = append(insights, entity.HabitInsight{
			ID:          "category-leader-" + id,
			Type:        entity.InsightRecommendation,
			Title:       "Category Leader",
			Description: fmt.Sprintf("You're excelling in %s habits", habit.Category),
			Trend:       entity.TrendUp,
			Actionable:  true,
			Suggestion:  "Consider adding another habit in this category",
		})
	}

	return insights
}

// siblingCompletionRate averages the window completion rate of the other
// habits in habit's category.
func (g *insightGenerator) siblingCompletionRate(habit entity.Habit, allHabits []entity.Habit, allLogs []entity.HabitLog) (float64, bool) {
	byHabit := groupLogs(allLogs)

	var sum float64
	var n int
	for _, h := range allHabits {
		if h.ID == habit.ID || h.Category != habit.Category {
			continue
		}
		sum += g.engine.CalculateAnalytics(h, byHabit[h.ID]).CompletionRate
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func (g *insightGenerator) GetOverallInsights(habits []entity.Habit, logs []entity.HabitLog) []entity.HabitInsight {
	insights := make([]entity.HabitInsight, 0, 2)

	known := make(map[uuid.UUID]struct{}, len(habits))
	for _, h := range habits {
		known[h.ID] = struct{}{}
	}

	var total, completed int
	for _, l := range dedupeLogs(logs) {
		if _, ok := known[l.HabitID]; !ok {
			g.log.Debug("skipping log of unknown habit", "log_habit_id", l.HabitID, "log_id", l.ID)
			continue
		}
		total++
		if l.Completed {
			completed++
		}
	}
	if total > 0 {
		rate := float64(completed) / float64(total) * 100
		if rate >= overallExcellentRate {
			value := fmt.Sprintf("%d%%", int(math.Round(rate)))
			insights = append(insights, entity.HabitInsight{
				ID:          "overall-excellent",
				Type:        entity.InsightCompletion,
				Title:       "Excellent Overall Progress",
				Description: value + " completion rate across all habits",
				Value:       value,
				Trend:       entity.TrendUp,
			})
		}
	}

	if name, rate, ok := strongestCategory(habits, logs); ok && rate > strongestCategoryRate {
		insights = append(insights, entity.HabitInsight{
			ID:          "best-category",
			Type:        entity.InsightRecommendation,
			Title:       "Strongest Category",
			Description: fmt.Sprintf("You excel at %s habits", name),
			Value:       fmt.Sprintf("%d%%", int(math.Round(rate))),
			Trend:       entity.TrendUp,
			Actionable:  true,
			Suggestion:  "Consider adding more habits in this successful category",
		})
	}

	return insights
}

// strongestCategory returns the category with the highest mean all-time
// completion rate. Ties go to the category seen first.
func strongestCategory(habits []entity.Habit, logs []entity.HabitLog) (string, float64, bool) {
	byHabit := groupLogs(logs)

	type stat struct {
		count int
		rate  float64
	}
	stats := make(map[string]*stat)
	var order []string

	for _, h := range habits {
		var total, completed int
		for _, l := range byHabit[h.ID] {
			total++
			if l.Completed {
				completed++
			}
		}
		rate := 0.0
		if total > 0 {
			rate = float64(completed) / float64(total) * 100
		}

		s, ok := stats[h.Category]
		if !ok {
			s = &stat{}
			stats[h.Category] = s
			order = append(order, h.Category)
		}
		s.count++
		s.rate = (s.rate*float64(s.count-1) + rate) / float64(s.count)
	}

	if len(order) == 0 {
		return "", 0, false
	}
	best := order[0]
	for _, name := range order[1:] {
		if stats[name].rate > stats[best].rate {
			best = name
		}
	}
	return best, stats[best].rate, true
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
