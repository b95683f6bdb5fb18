package entity

import "errors"

var (
	ErrHabitNotFound    = errors.New("habit not found")
	ErrHabitLogNotFound = errors.New("habit log not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrInvalidFrequency = errors.New("frequency must be daily, weekly or monthly")
	ErrInvalidRating    = errors.New("mood and effort must be between 1 and 5")
	ErrInvalidHabitName = errors.New("habit name is required")
	ErrInvalidDateRange = errors.New("invalid date range")

	ErrInvalidCategoryName = errors.New("category name is required")
)
