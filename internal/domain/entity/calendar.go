package entity

import (
	"time"

	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

// CalendarHabitData is the state of one habit on one calendar day
type CalendarHabitData struct {
	HabitID    uuid.UUID `json:"habit_id"`
	HabitName  string    `json:"habit_name"`
	HabitColor *string   `json:"habit_color,omitempty"`
	Completed  bool      `json:"completed"`
	Log        *HabitLog `json:"log,omitempty"`
}

// CalendarDay is one cell of the month grid
type CalendarDay struct {
	Date           dates.Day           `json:"date"`
	IsCurrentMonth bool                `json:"is_current_month"`
	IsToday        bool                `json:"is_today"`
	Habits         []CalendarHabitData `json:"habits"`
	CompletionRate float64             `json:"completion_rate"` // 0..1
}

// CalendarWeek is a Sunday-start row of the grid
type CalendarWeek struct {
	WeekNumber int           `json:"week_number"`
	Days       []CalendarDay `json:"days"`
}

// CalendarMonth is the grid projection of a month
type CalendarMonth struct {
	Year          int            `json:"year"`
	Month         time.Month     `json:"month"`
	MonthName     string         `json:"month_name"`
	Weeks         []CalendarWeek `json:"weeks"`
	TotalDays     int            `json:"total_days"`
	CompletedDays int            `json:"completed_days"`
}

// HeatmapCell is the intensity of one day
type HeatmapCell struct {
	Date  dates.Day `json:"date"`
	Count int       `json:"count"`
	Level int       `json:"level"` // 0..4
}

// DayTally counts completions on one day
type DayTally struct {
	Date      dates.Day `json:"date"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
}

// WeeklyOverview summarizes seven consecutive days
type WeeklyOverview struct {
	Days           []DayTally `json:"days"`
	TotalCompleted int        `json:"total_completed"`
	TotalPossible  int        `json:"total_possible"`
}

// MonthlyStats summarizes a calendar month
type MonthlyStats struct {
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	TotalDays      int        `json:"total_days"`
	ActiveDays     int        `json:"active_days"`
	CompletionRate float64    `json:"completion_rate"` // 0..1
	BestDay        *DayTally  `json:"best_day,omitempty"`
	WorstDay       *DayTally  `json:"worst_day,omitempty"`
	Streak         int        `json:"streak"`
}
