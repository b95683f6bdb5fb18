package service

import (
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

type calendarProjector struct {
	clock dates.Clock
	log   *logger.Logger
}

// NewCalendarProjector creates a calendar projector reading "today" from clock
func NewCalendarProjector(clock dates.Clock, log *logger.Logger) service.CalendarProjector {
	if log == nil {
		log = logger.Nop()
	}
	return &calendarProjector{clock: clock, log: log}
}

// dayIndex resolves the log of a habit on a day after duplicate resolution.
type dayIndex map[logKey]entity.HabitLog

func (p *calendarProjector) newDayIndex(habits []entity.Habit, logs []entity.HabitLog) dayIndex {
	known := make(map[uuid.UUID]struct{}, len(habits))
	for _, h := range habits {
		known[h.ID] = struct{}{}
	}

	idx := make(dayIndex, len(logs))
	for _, l := range logs {
		if _, ok := known[l.HabitID]; !ok {
			p.log.Debug("skipping log of unknown habit", "log_habit_id", l.HabitID, "log_id", l.ID)
			continue
		}
		idx[logKey{habitID: l.HabitID, day: l.Date}] = l
	}
	return idx
}

func (idx dayIndex) habitData(day dates.Day, habits []entity.Habit) ([]entity.CalendarHabitData, int) {
	out := make([]entity.CalendarHabitData, 0, len(habits))
	completed := 0
	for _, h := range habits {
		data := entity.CalendarHabitData{
			HabitID:    h.ID,
			HabitName:  h.Name,
			HabitColor: entity.ClonePtr(h.Color),
		}
		if l, ok := idx[logKey{habitID: h.ID, day: day}]; ok {
			c := l.Clone()
			data.Log = &c
			data.Completed = l.Completed
		}
		if data.Completed {
			completed++
		}
		out = append(out, data)
	}
	return out, completed
}

func (idx dayIndex) completedOn(day dates.Day, habits []entity.Habit) int {
	n := 0
	for _, h := range habits {
		if l, ok := idx[logKey{habitID: h.ID, day: day}]; ok && l.Completed {
			n++
		}
	}
	return n
}

func ratio(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func (p *calendarProjector) GenerateCalendarMonth(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) entity.CalendarMonth {
	first := dates.New(year, month, 1)
	last := first.EndOfMonth()
	today := p.clock.Today()
	idx := p.newDayIndex(habits, logs)

	cal := entity.CalendarMonth{
		Year:      first.Year(),
		Month:     first.Month(),
		MonthName: first.Month().String(),
		Weeks:     make([]entity.CalendarWeek, 0, 6),
	}

	for weekStart := first.StartOfWeek(); weekStart <= last; weekStart = weekStart.AddDays(7) {
		week := entity.CalendarWeek{
			WeekNumber: len(cal.Weeks) + 1,
			Days:       make([]entity.CalendarDay, 0, 7),
		}
		for d := weekStart; d < weekStart.AddDays(7); d++ {
			data, completed := idx.habitData(d, habits)
			day := entity.CalendarDay{
				Date:           d,
				IsCurrentMonth: d.SameMonth(first),
				IsToday:        d == today,
				Habits:         data,
				CompletionRate: ratio(completed, len(habits)),
			}
			if day.IsCurrentMonth {
				cal.TotalDays++
				if day.CompletionRate > 0 {
					cal.CompletedDays++
				}
			}
			week.Days = append(week.Days, day)
		}
		cal.Weeks = append(cal.Weeks, week)
	}

	p.log.Debug("calendar month generated", "year", cal.Year, "month", cal.Month, "weeks", len(cal.Weeks))
	return cal
}

func (p *calendarProjector) GenerateHeatmap(habits []entity.Habit, logs []entity.HabitLog, from, to dates.Day) []entity.HeatmapCell {
	cells := make([]entity.HeatmapCell, 0, max(0, to.Sub(from)+1))
	idx := p.newDayIndex(habits, logs)
	for _, d := range dates.Range(from, to) {
		count := idx.completedOn(d, habits)
		cells = append(cells, entity.HeatmapCell{
			Date:  d,
			Count: count,
			Level: heatmapLevel(count, len(habits)),
		})
	}
	return cells
}

func heatmapLevel(completed, total int) int {
	r := ratio(completed, total)
	switch {
	case r <= 0:
		return 0
	case r <= 0.25:
		return 1
	case r <= 0.5:
		return 2
	case r <= 0.75:
		return 3
	default:
		return 4
	}
}

func (p *calendarProjector) GetWeeklyOverview(start dates.Day, habits []entity.Habit, logs []entity.HabitLog) entity.WeeklyOverview {
	idx := p.newDayIndex(habits, logs)
	overview := entity.WeeklyOverview{Days: make([]entity.DayTally, 0, 7)}
	for d := start; d < start.AddDays(7); d++ {
		tally := entity.DayTally{Date: d, Completed: idx.completedOn(d, habits), Total: len(habits)}
		overview.Days = append(overview.Days, tally)
		overview.TotalCompleted += tally.Completed
		overview.TotalPossible += tally.Total
	}
	return overview
}

func (p *calendarProjector) GetMonthlyStats(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) entity.MonthlyStats {
	first := dates.New(year, month, 1)
	counts := p.GetCompletionCountsForMonth(year, month, habits, logs)

	stats := entity.MonthlyStats{
		Year:      first.Year(),
		Month:     first.Month(),
		TotalDays: len(counts),
	}

	total := 0
	best, worst := -1, -1
	for i, c := range counts {
		total += c
		if c > 0 {
			stats.ActiveDays++
		}
		if best < 0 || c > counts[best] {
			best = i
		}
		if worst < 0 || c < counts[worst] {
			worst = i
		}
	}
	stats.CompletionRate = ratio(total, len(counts)*len(habits))

	if best >= 0 && counts[best] > 0 {
		stats.BestDay = &entity.DayTally{Date: first.AddDays(best), Completed: counts[best], Total: len(habits)}
	}
	if worst >= 0 && counts[worst] < len(habits) {
		stats.WorstDay = &entity.DayTally{Date: first.AddDays(worst), Completed: counts[worst], Total: len(habits)}
	}

	for i := len(counts) - 1; i >= 0 && counts[i] > 0; i-- {
		stats.Streak++
	}
	return stats
}

func (p *calendarProjector) GetHabitsForDate(day dates.Day, habits []entity.Habit, logs []entity.HabitLog) []entity.CalendarHabitData {
	data, _ := p.newDayIndex(habits, logs).habitData(day, habits)
	return data
}

func (p *calendarProjector) GetCompletionCountsForMonth(year int, month time.Month, habits []entity.Habit, logs []entity.HabitLog) []int {
	first := dates.New(year, month, 1)
	idx := p.newDayIndex(habits, logs)
	counts := make([]int, 0, 31)
	for _, d := range dates.Range(first, first.EndOfMonth()) {
		counts = append(counts, idx.completedOn(d, habits))
	}
	return counts
}

// PreviousMonth returns the month before the given one. Out-of-range months
// are normalized first, as in GenerateCalendarMonth.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	prev := dates.New(year, month, 1).AddDays(-1)
	return prev.Year(), prev.Month()
}

// NextMonth returns the month after the given one, rolling the year over.
func NextMonth(year int, month time.Month) (int, time.Month) {
	next := dates.New(year, month, 1).EndOfMonth().AddDays(1)
	return next.Year(), next.Month()
}
