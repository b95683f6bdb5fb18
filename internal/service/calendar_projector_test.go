package service

import (
	"testing"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"
)

func newTestProjector(today string) *calendarProjector {
	return NewCalendarProjector(clockAt(today), logger.Nop()).(*calendarProjector)
}

func findDay(cal entity.CalendarMonth, raw string) (entity.CalendarDay, bool) {
	target := day(raw)
	for _, w := range cal.Weeks {
		for _, d := range w.Days {
			if d.Date == target {
				return d, true
			}
		}
	}
	return entity.CalendarDay{}, false
}

func TestGenerateCalendarMonthLeapFebruaryWithoutHabits(t *testing.T) {
	p := newTestProjector("2024-06-15")

	cal := p.GenerateCalendarMonth(2024, time.February, nil, nil)

	if cal.Year != 2024 || cal.Month != time.February || cal.MonthName != "February" {
		t.Fatalf("unexpected header %d %s %s", cal.Year, cal.Month, cal.MonthName)
	}
	if len(cal.Weeks) != 5 {
		t.Fatalf("weeks = %d, want 5", len(cal.Weeks))
	}
	if cal.TotalDays != 29 || cal.CompletedDays != 0 {
		t.Fatalf("totals = %d/%d, want 29/0", cal.TotalDays, cal.CompletedDays)
	}

	seen := make(map[dates.Day]int)
	for i, w := range cal.Weeks {
		if w.WeekNumber != i+1 || len(w.Days) != 7 {
			t.Fatalf("week %d malformed: %+v", i, w)
		}
		if w.Days[0].Date.Weekday() != time.Sunday {
			t.Fatalf("week %d starts on %s", i, w.Days[0].Date.Weekday())
		}
		for _, d := range w.Days {
			seen[d.Date]++
			if d.CompletionRate != 0 {
				t.Fatalf("%s rate = %v, want 0", d.Date, d.CompletionRate)
			}
			if d.Habits == nil {
				t.Fatalf("%s habits must be an empty slice", d.Date)
			}
		}
	}

	for _, d := range dates.Range(day("2024-02-01"), day("2024-02-29")) {
		if seen[d] != 1 {
			t.Fatalf("%s appears %d times", d, seen[d])
		}
		cd, _ := findDay(cal, d.String())
		if !cd.IsCurrentMonth {
			t.Fatalf("%s not marked current month", d)
		}
	}

	if first := cal.Weeks[0].Days[0]; first.Date != day("2024-01-28") || first.IsCurrentMonth {
		t.Fatalf("unexpected grid start %+v", first)
	}
}

func TestGenerateCalendarMonthStopsAfterLastWeek(t *testing.T) {
	p := newTestProjector("2024-06-15")

	cal := p.GenerateCalendarMonth(2024, time.June, nil, nil)
	if len(cal.Weeks) != 6 {
		t.Fatalf("weeks = %d, want 6", len(cal.Weeks))
	}
	last := cal.Weeks[5].Days
	if last[0].Date != day("2024-06-30") || last[6].Date != day("2024-07-06") {
		t.Fatalf("unexpected last week %s..%s", last[0].Date, last[6].Date)
	}

	cal = p.GenerateCalendarMonth(2026, time.February, nil, nil)
	if len(cal.Weeks) != 4 || cal.TotalDays != 28 {
		t.Fatalf("February 2026 should fill exactly 4 weeks, got %d weeks %d days", len(cal.Weeks), cal.TotalDays)
	}
}

func TestGenerateCalendarMonthNormalizesMonth(t *testing.T) {
	p := newTestProjector("2024-06-15")

	cal := p.GenerateCalendarMonth(2024, time.Month(13), nil, nil)
	if cal.Year != 2025 || cal.Month != time.January || cal.TotalDays != 31 {
		t.Fatalf("unexpected normalized month %d %s %d", cal.Year, cal.Month, cal.TotalDays)
	}
}

func TestGenerateCalendarMonthWithHabits(t *testing.T) {
	p := newTestProjector("2024-06-15")
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	read := testHabit("Read", "Learning", entity.FrequencyDaily)

	mood := completedLog(run.ID, "2024-06-03")
	mood.Mood = int32Ptr(4)
	logs := []entity.HabitLog{
		mood,
		completedLog(read.ID, "2024-06-03"),
		completedLog(run.ID, "2024-06-04"),
		missedLog(read.ID, "2024-06-04"),
		completedLog(read.ID, "2024-06-05"),
		missedLog(read.ID, "2024-06-05"),
	}

	cal := p.GenerateCalendarMonth(2024, time.June, []entity.Habit{run, read}, logs)

	tests := []struct {
		date string
		rate float64
	}{
		{"2024-06-03", 1},
		{"2024-06-04", 0.5},
		{"2024-06-05", 0},
		{"2024-06-06", 0},
	}
	for _, tt := range tests {
		d, ok := findDay(cal, tt.date)
		if !ok {
			t.Fatalf("%s missing from grid", tt.date)
		}
		if d.CompletionRate != tt.rate {
			t.Fatalf("%s rate = %v, want %v", tt.date, d.CompletionRate, tt.rate)
		}
		if len(d.Habits) != 2 {
			t.Fatalf("%s habits = %d, want 2", tt.date, len(d.Habits))
		}
	}
	if cal.CompletedDays != 2 || cal.TotalDays != 30 {
		t.Fatalf("totals = %d/%d, want 2/30", cal.CompletedDays, cal.TotalDays)
	}

	today, _ := findDay(cal, "2024-06-15")
	if !today.IsToday {
		t.Fatalf("2024-06-15 must be today")
	}
	notToday, _ := findDay(cal, "2024-06-14")
	if notToday.IsToday {
		t.Fatalf("2024-06-14 must not be today")
	}

	d, _ := findDay(cal, "2024-06-03")
	if d.Habits[0].Log == nil || d.Habits[0].Log.Mood == nil {
		t.Fatalf("expected attached log with mood")
	}
	*d.Habits[0].Log.Mood = 1
	if *mood.Mood != 4 {
		t.Fatalf("returned log aliases caller data")
	}
}

func TestGenerateHeatmapLevels(t *testing.T) {
	p := newTestProjector("2024-06-15")
	habits := []entity.Habit{
		testHabit("A", "x", entity.FrequencyDaily),
		testHabit("B", "x", entity.FrequencyDaily),
		testHabit("C", "x", entity.FrequencyDaily),
		testHabit("D", "x", entity.FrequencyDaily),
	}

	var logs []entity.HabitLog
	start := day("2024-06-01")
	for offset := 0; offset < 5; offset++ {
		for i := 0; i < offset; i++ {
			logs = append(logs, completedLog(habits[i].ID, start.AddDays(offset).String()))
		}
	}

	cells := p.GenerateHeatmap(habits, logs, start, start.AddDays(4))
	if len(cells) != 5 {
		t.Fatalf("cells = %d, want 5", len(cells))
	}
	for i, c := range cells {
		if c.Level != i || c.Count != i {
			t.Fatalf("cell %d = %+v, want level and count %d", i, c, i)
		}
	}

	for _, c := range p.GenerateHeatmap(nil, logs, start, start.AddDays(4)) {
		if c.Level != 0 {
			t.Fatalf("no habits must yield level 0, got %+v", c)
		}
	}

	if got := p.GenerateHeatmap(habits, logs, start, start.AddDays(-1)); got == nil || len(got) != 0 {
		t.Fatalf("reversed range must yield an empty slice, got %v", got)
	}
}

func TestHeatmapLevelThresholds(t *testing.T) {
	tests := []struct {
		completed, total, want int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 4, 1},
		{1, 3, 2},
		{2, 4, 2},
		{3, 4, 3},
		{4, 5, 4},
		{5, 5, 4},
	}
	for _, tt := range tests {
		if got := heatmapLevel(tt.completed, tt.total); got != tt.want {
			t.Fatalf("heatmapLevel(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestGetWeeklyOverview(t *testing.T) {
	p := newTestProjector("2024-06-15")
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	read := testHabit("Read", "Learning", entity.FrequencyDaily)

	logs := []entity.HabitLog{
		completedLog(run.ID, "2024-06-09"),
		completedLog(read.ID, "2024-06-09"),
		completedLog(run.ID, "2024-06-12"),
		completedLog(run.ID, "2024-06-16"),
	}

	overview := p.GetWeeklyOverview(day("2024-06-09"), []entity.Habit{run, read}, logs)
	if len(overview.Days) != 7 {
		t.Fatalf("days = %d, want 7", len(overview.Days))
	}
	if overview.TotalCompleted != 3 || overview.TotalPossible != 14 {
		t.Fatalf("totals = %d/%d, want 3/14", overview.TotalCompleted, overview.TotalPossible)
	}
	if overview.Days[0].Completed != 2 || overview.Days[3].Completed != 1 {
		t.Fatalf("unexpected tallies %+v", overview.Days)
	}
}

func TestGetMonthlyStats(t *testing.T) {
	p := newTestProjector("2024-06-15")
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	read := testHabit("Read", "Learning", entity.FrequencyDaily)
	habits := []entity.Habit{run, read}

	logs := []entity.HabitLog{
		completedLog(run.ID, "2024-02-01"),
		completedLog(read.ID, "2024-02-01"),
		completedLog(run.ID, "2024-02-02"),
		completedLog(run.ID, "2024-02-28"),
		completedLog(run.ID, "2024-02-29"),
		completedLog(read.ID, "2024-02-29"),
		completedLog(read.ID, "2024-03-01"),
	}

	stats := p.GetMonthlyStats(2024, time.February, habits, logs)

	if stats.TotalDays != 29 || stats.ActiveDays != 4 {
		t.Fatalf("days = %d/%d, want 29/4", stats.TotalDays, stats.ActiveDays)
	}
	if want := 6.0 / 58.0; stats.CompletionRate != want {
		t.Fatalf("CompletionRate = %v, want %v", stats.CompletionRate, want)
	}
	if stats.BestDay == nil || stats.BestDay.Date != day("2024-02-01") || stats.BestDay.Completed != 2 {
		t.Fatalf("unexpected best day %+v", stats.BestDay)
	}
	if stats.WorstDay == nil || stats.WorstDay.Date != day("2024-02-03") || stats.WorstDay.Completed != 0 {
		t.Fatalf("unexpected worst day %+v", stats.WorstDay)
	}
	if stats.Streak != 2 {
		t.Fatalf("Streak = %d, want 2", stats.Streak)
	}

	counts := p.GetCompletionCountsForMonth(2024, time.February, habits, logs)
	if len(counts) != 29 || counts[0] != 2 || counts[1] != 1 || counts[28] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestGetMonthlyStatsWithoutHabits(t *testing.T) {
	p := newTestProjector("2024-06-15")

	stats := p.GetMonthlyStats(2024, time.April, nil, nil)
	if stats.TotalDays != 30 || stats.CompletionRate != 0 || stats.Streak != 0 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.BestDay != nil || stats.WorstDay != nil {
		t.Fatalf("best and worst must be absent, got %+v %+v", stats.BestDay, stats.WorstDay)
	}
}

func TestGetHabitsForDate(t *testing.T) {
	p := newTestProjector("2024-06-15")
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	read := testHabit("Read", "Learning", entity.FrequencyDaily)

	data := p.GetHabitsForDate(day("2024-06-10"), []entity.Habit{run, read}, []entity.HabitLog{completedLog(read.ID, "2024-06-10")})
	if len(data) != 2 {
		t.Fatalf("entries = %d, want 2", len(data))
	}
	if data[0].Completed || data[0].Log != nil {
		t.Fatalf("run must be absent on that day: %+v", data[0])
	}
	if !data[1].Completed || data[1].HabitName != "Read" {
		t.Fatalf("read must be completed: %+v", data[1])
	}
}

func TestMonthNavigation(t *testing.T) {
	if y, m := PreviousMonth(2024, time.January); y != 2023 || m != time.December {
		t.Fatalf("PreviousMonth = %d %s", y, m)
	}
	if y, m := PreviousMonth(2024, time.June); y != 2024 || m != time.May {
		t.Fatalf("PreviousMonth = %d %s", y, m)
	}
	if y, m := NextMonth(2024, time.December); y != 2025 || m != time.January {
		t.Fatalf("NextMonth = %d %s", y, m)
	}
	if y, m := NextMonth(2024, time.June); y != 2024 || m != time.July {
		t.Fatalf("NextMonth = %d %s", y, m)
	}
}

func TestMonthNavigationNormalizesMonth(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		prevYear  int
		prevMonth time.Month
		nextYear  int
		nextMonth time.Month
	}{
		{"month zero is december of previous year", 2024, 0, 2023, time.November, 2024, time.January},
		{"month thirteen is january of next year", 2024, 13, 2024, time.December, 2025, time.February},
		{"month twenty is august of next year", 2024, 20, 2025, time.July, 2025, time.September},
		{"negative month", 2024, -1, 2023, time.October, 2023, time.December},
	}

	p := newTestProjector("2024-06-15")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := p.GenerateCalendarMonth(tt.year, tt.month, nil, nil)
			current := dates.New(cal.Year, cal.Month, 1)

			y, m := PreviousMonth(tt.year, tt.month)
			if y != tt.prevYear || m != tt.prevMonth {
				t.Fatalf("PreviousMonth(%d, %d) = %d %s, want %d %s", tt.year, tt.month, y, m, tt.prevYear, tt.prevMonth)
			}
			if dates.New(y, m, 1).EndOfMonth().AddDays(1) != current {
				t.Fatalf("PreviousMonth must precede the projected month %d %s", cal.Year, cal.Month)
			}

			y, m = NextMonth(tt.year, tt.month)
			if y != tt.nextYear || m != tt.nextMonth {
				t.Fatalf("NextMonth(%d, %d) = %d %s, want %d %s", tt.year, tt.month, y, m, tt.nextYear, tt.nextMonth)
			}
			if current.EndOfMonth().AddDays(1) != dates.New(y, m, 1) {
				t.Fatalf("NextMonth must follow the projected month %d %s", cal.Year, cal.Month)
			}
		})
	}
}

func TestCalendarResultsDoNotAliasHabitColor(t *testing.T) {
	p := newTestProjector("2024-06-15")
	color := "#fff"
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	run.Color = &color
	habits := []entity.Habit{run}

	cal := p.GenerateCalendarMonth(2024, time.June, habits, nil)
	forDate := p.GetHabitsForDate(day("2024-06-10"), habits, nil)

	color = "#000"

	d, _ := findDay(cal, "2024-06-10")
	if got := d.Habits[0].HabitColor; got == nil || *got != "#fff" {
		t.Fatalf("calendar colour = %v, want #fff", got)
	}
	if got := forDate[0].HabitColor; got == nil || *got != "#fff" {
		t.Fatalf("day colour = %v, want #fff", got)
	}

	*d.Habits[0].HabitColor = "#123"
	if color != "#000" {
		t.Fatalf("writing the result changed the caller's colour to %s", color)
	}
}

func TestCalendarSkipsLogsOfUnknownHabits(t *testing.T) {
	log, observed := observedLogger()
	p := NewCalendarProjector(clockAt("2024-06-15"), log).(*calendarProjector)
	run := testHabit("Run", "Health", entity.FrequencyDaily)
	stranger := completedLog(testHabit("Other", "Health", entity.FrequencyDaily).ID, "2024-06-10")

	counts := p.GetCompletionCountsForMonth(2024, time.June, []entity.Habit{run}, []entity.HabitLog{stranger})
	if counts[9] != 0 {
		t.Fatalf("count on 2024-06-10 = %d, want 0", counts[9])
	}

	if n := observed.FilterMessage("skipping log of unknown habit").Len(); n != 1 {
		t.Fatalf("diagnostics = %d, want 1", n)
	}
}
