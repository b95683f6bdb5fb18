package service

import (
	"testing"

	"habit-analytics/internal/domain/entity"

	"github.com/google/uuid"
)

func TestStreaksWithoutCompletions(t *testing.T) {
	id := uuid.New()
	logs := []entity.HabitLog{missedLog(id, "2024-01-01"), missedLog(id, "2024-01-02")}

	if got := CurrentStreak(logs, day("2024-01-02")); got != 0 {
		t.Fatalf("CurrentStreak() = %d, want 0", got)
	}
	if got := LongestStreak(logs); got != 0 {
		t.Fatalf("LongestStreak() = %d, want 0", got)
	}
	if got := LongestStreak(nil); got != 0 {
		t.Fatalf("LongestStreak(nil) = %d, want 0", got)
	}
}

func TestCurrentStreakSingleCompletion(t *testing.T) {
	id := uuid.New()
	logs := []entity.HabitLog{completedLog(id, "2024-03-10")}

	tests := []struct {
		name  string
		today string
		want  int
	}{
		{name: "completed today", today: "2024-03-10", want: 1},
		{name: "completed yesterday", today: "2024-03-11", want: 1},
		{name: "completed a week ago", today: "2024-03-17", want: 1},
		{name: "completed in the future", today: "2024-03-09", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStreak(logs, day(tt.today)); got != tt.want {
				t.Fatalf("CurrentStreak() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStreakScenarios(t *testing.T) {
	id := uuid.New()
	logs := completedRun(id, "2024-01-01", 5)

	if got := CurrentStreak(logs, day("2024-01-05")); got != 5 {
		t.Fatalf("CurrentStreak() = %d, want 5", got)
	}
	if got := LongestStreak(logs); got != 5 {
		t.Fatalf("LongestStreak() = %d, want 5", got)
	}

	logs = append(logs, completedLog(id, "2024-01-07"))
	if got := CurrentStreak(logs, day("2024-01-07")); got != 1 {
		t.Fatalf("CurrentStreak() after gap = %d, want 1", got)
	}
	if got := LongestStreak(logs); got != 5 {
		t.Fatalf("LongestStreak() after gap = %d, want 5", got)
	}
}

func TestStreaksIgnoreOrderAndDuplicates(t *testing.T) {
	id := uuid.New()
	logs := []entity.HabitLog{
		completedLog(id, "2024-05-03"),
		completedLog(id, "2024-05-01"),
		completedLog(id, "2024-05-02"),
		completedLog(id, "2024-05-02"),
	}

	if got := CurrentStreak(logs, day("2024-05-03")); got != 3 {
		t.Fatalf("CurrentStreak() = %d, want 3", got)
	}
	if got := LongestStreak(logs); got != 3 {
		t.Fatalf("LongestStreak() = %d, want 3", got)
	}
}

func TestDuplicateDayLastWriteWins(t *testing.T) {
	id := uuid.New()
	logs := []entity.HabitLog{
		completedLog(id, "2024-05-01"),
		completedLog(id, "2024-05-02"),
		missedLog(id, "2024-05-02"),
	}

	if got := LongestStreak(logs); got != 1 {
		t.Fatalf("LongestStreak() = %d, want 1", got)
	}

	logs = append(logs, completedLog(id, "2024-05-02"))
	if got := LongestStreak(logs); got != 2 {
		t.Fatalf("LongestStreak() = %d, want 2", got)
	}
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	id := uuid.New()
	sets := [][]entity.HabitLog{
		completedRun(id, "2024-01-01", 3),
		append(completedRun(id, "2024-01-01", 2), completedRun(id, "2024-01-10", 4)...),
		append(completedRun(id, "2024-01-01", 6), completedLog(id, "2024-01-09")),
		append(completedRun(id, "2024-01-08", 2), completedRun(id, "2024-01-11", 3)...),
	}

	for i, logs := range sets {
		for _, today := range []string{"2024-01-03", "2024-01-09", "2024-01-12", "2024-02-01"} {
			current := CurrentStreak(logs, day(today))
			longest := LongestStreak(logs)
			if longest < current {
				t.Fatalf("set %d today %s: longest %d < current %d", i, today, longest, current)
			}
		}
	}
}
