package service

import (
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func day(raw string) dates.Day {
	return dates.MustParse(raw)
}

func clockAt(raw string) dates.Clock {
	d := day(raw)
	return dates.FixedClock(d.Time().Add(15 * time.Hour))
}

func testHabit(name, category string, frequency entity.Frequency) entity.Habit {
	return entity.Habit{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      name,
		Category:  category,
		Frequency: frequency,
		IsActive:  true,
	}
}

func completedLog(habitID uuid.UUID, raw string) entity.HabitLog {
	return entity.HabitLog{ID: uuid.New(), HabitID: habitID, Date: day(raw), Completed: true}
}

func missedLog(habitID uuid.UUID, raw string) entity.HabitLog {
	return entity.HabitLog{ID: uuid.New(), HabitID: habitID, Date: day(raw), Completed: false}
}

func completedRun(habitID uuid.UUID, from string, n int) []entity.HabitLog {
	start := day(from)
	logs := make([]entity.HabitLog, 0, n)
	for i := 0; i < n; i++ {
		logs = append(logs, completedLog(habitID, start.AddDays(i).String()))
	}
	return logs
}

func int32Ptr(v int32) *int32 {
	return &v
}

func findInsight(insights []entity.HabitInsight, title string) (entity.HabitInsight, bool) {
	for _, in := range insights {
		if in.Title == title {
			return in, true
		}
	}
	return entity.HabitInsight{}, false
}

// observedLogger records entries at debug level and above.
func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}
