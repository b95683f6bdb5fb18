package service

import (
	"math"
	"sort"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"
)

// AnalyticsWindowDays is the length of the trailing window used for rates.
const AnalyticsWindowDays = 30

type analyticsEngine struct {
	clock dates.Clock
	log   *logger.Logger
}

// NewAnalyticsEngine creates an analytics engine reading "today" from clock
func NewAnalyticsEngine(clock dates.Clock, log *logger.Logger) service.AnalyticsEngine {
	if log == nil {
		log = logger.Nop()
	}
	return &analyticsEngine{clock: clock, log: log}
}

// window returns the first and last day of the trailing window ending today.
func window(today dates.Day) (dates.Day, dates.Day) {
	return today.AddDays(-(AnalyticsWindowDays - 1)), today
}

func (e *analyticsEngine) CalculateAnalytics(habit entity.Habit, logs []entity.HabitLog) entity.HabitAnalytics {
	today := e.clock.Today()
	habitLogs := e.logsOf(habit, logs)

	result := entity.HabitAnalytics{
		HabitID:       habit.ID,
		CurrentStreak: CurrentStreak(habitLogs, today),
		LongestStreak: LongestStreak(habitLogs),
	}

	var (
		moodSum, effortSum     float64
		moodCount, effortCount int
		weekdayCounts          [7]int
	)
	for _, l := range habitLogs {
		if !l.Completed {
			continue
		}
		result.TotalCompletions++
		weekdayCounts[l.Date.Weekday()]++
		if l.Mood != nil {
			moodSum += float64(*l.Mood)
			moodCount++
		}
		if l.Effort != nil {
			effortSum += float64(*l.Effort)
			effortCount++
		}
	}
	if moodCount > 0 {
		avg := moodSum / float64(moodCount)
		result.AverageMood = &avg
	}
	if effortCount > 0 {
		avg := effortSum / float64(effortCount)
		result.AverageEffort = &avg
	}

	logged, completed := windowCounts(habitLogs, today)
	result.CompletionRate = completionRate(logged, completed)

	expected := habit.Frequency.ExpectedOccurrences()
	result.MissedDays = max(0, expected-completed)
	result.Consistency = consistencyScore(habitLogs, today, expected)

	result.WeeklyCompletions = weeklyCompletions(habitLogs, today)
	result.MonthlyCompletions = monthlyCompletions(habitLogs, today)
	result.BestDay = bestDay(weekdayCounts)

	return result
}

// logsOf filters logs to the habit and resolves same-day duplicates.
func (e *analyticsEngine) logsOf(habit entity.Habit, logs []entity.HabitLog) []entity.HabitLog {
	own := make([]entity.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.HabitID != habit.ID {
			e.log.Debug("skipping log of another habit", "habit_id", habit.ID, "log_habit_id", l.HabitID, "log_id", l.ID)
			continue
		}
		own = append(own, l)
	}
	return dedupeLogs(own)
}

// windowCounts counts logged and completed entries inside the trailing window.
func windowCounts(logs []entity.HabitLog, today dates.Day) (logged, completed int) {
	from, to := window(today)
	for _, l := range logs {
		if l.Date < from || l.Date > to {
			continue
		}
		logged++
		if l.Completed {
			completed++
		}
	}
	return logged, completed
}

func completionRate(logged, completed int) float64 {
	if logged == 0 {
		return 0
	}
	return roundTo(float64(completed)/float64(logged)*100, 2)
}

func consistencyScore(logs []entity.HabitLog, today dates.Day, expected int) int {
	from, to := window(today)

	var (
		logged int
		days   []dates.Day
	)
	for _, l := range logs {
		if l.Date < from || l.Date > to {
			continue
		}
		logged++
		if l.Completed {
			days = append(days, l.Date)
		}
	}
	if logged == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	gapDays := 0
	for i := 1; i < len(days); i++ {
		if gap := days[i].Sub(days[i-1]); gap > 1 {
			gapDays += gap - 1
		}
	}

	base := math.Min(100, float64(len(days))/float64(expected)*100)
	penalty := math.Min(50, float64(gapDays*2))
	return max(0, int(math.Round(base-penalty)))
}

func weeklyCompletions(logs []entity.HabitLog, today dates.Day) [entity.WeeklyBuckets]int {
	var out [entity.WeeklyBuckets]int
	first := today.StartOfWeek().AddDays(-7 * (entity.WeeklyBuckets - 1))
	last := today.EndOfWeek()
	for _, l := range logs {
		if !l.Completed || l.Date < first || l.Date > last {
			continue
		}
		out[l.Date.Sub(first)/7]++
	}
	return out
}

func monthlyCompletions(logs []entity.HabitLog, today dates.Day) [entity.MonthlyBuckets]int {
	var out [entity.MonthlyBuckets]int
	year, month, _ := today.Date()
	current := year*12 + int(month-time.January)
	for _, l := range logs {
		if !l.Completed {
			continue
		}
		y, m, _ := l.Date.Date()
		offset := current - (y*12 + int(m-time.January))
		if offset < 0 || offset >= entity.MonthlyBuckets {
			continue
		}
		out[entity.MonthlyBuckets-1-offset]++
	}
	return out
}

func bestDay(counts [7]int) string {
	best := -1
	for wd, c := range counts {
		if c > 0 && (best < 0 || c > counts[best]) {
			best = wd
		}
	}
	if best < 0 {
		return ""
	}
	return time.Weekday(best).String()
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
