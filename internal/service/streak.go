package service

import (
	"sort"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

type logKey struct {
	habitID uuid.UUID
	day     dates.Day
}

// dedupeLogs keeps one log per habit and day. A later entry replaces an
// earlier one, and the survivor takes the position of the first occurrence.
func dedupeLogs(logs []entity.HabitLog) []entity.HabitLog {
	index := make(map[logKey]int, len(logs))
	out := make([]entity.HabitLog, 0, len(logs))
	for _, l := range logs {
		key := logKey{habitID: l.HabitID, day: l.Date}
		if i, ok := index[key]; ok {
			out[i] = l
			continue
		}
		index[key] = len(out)
		out = append(out, l)
	}
	return out
}

// completedDays returns the distinct completed days in ascending order.
func completedDays(logs []entity.HabitLog) []dates.Day {
	var days []dates.Day
	seen := make(map[dates.Day]struct{})
	for _, l := range dedupeLogs(logs) {
		if !l.Completed {
			continue
		}
		if _, ok := seen[l.Date]; ok {
			continue
		}
		seen[l.Date] = struct{}{}
		days = append(days, l.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// CurrentStreak counts the consecutive completed days ending at the most
// recent completed day on or before today. Days after today are ignored.
func CurrentStreak(logs []entity.HabitLog, today dates.Day) int {
	days := completedDays(logs)

	end := len(days) - 1
	for end >= 0 && days[end] > today {
		end--
	}
	if end < 0 {
		return 0
	}

	streak := 1
	for i := end; i > 0 && days[i]-days[i-1] == 1; i-- {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days.
func LongestStreak(logs []entity.HabitLog) int {
	days := completedDays(logs)
	if len(days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i]-days[i-1] == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// lastCompletedDay returns the most recent completed day on or before today.
func lastCompletedDay(logs []entity.HabitLog, today dates.Day) (dates.Day, bool) {
	days := completedDays(logs)
	for i := len(days) - 1; i >= 0; i-- {
		if days[i] <= today {
			return days[i], true
		}
	}
	return 0, false
}

// groupLogs splits deduplicated logs by habit.
func groupLogs(logs []entity.HabitLog) map[uuid.UUID][]entity.HabitLog {
	out := make(map[uuid.UUID][]entity.HabitLog)
	for _, l := range dedupeLogs(logs) {
		out[l.HabitID] = append(out[l.HabitID], l)
	}
	return out
}
