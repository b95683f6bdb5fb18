package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/domain/repository"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

type habitService struct {
	habitRepo    repository.HabitRepository
	logRepo      repository.HabitLogRepository
	categoryRepo repository.CategoryRepository
	publisher    service.EventPublisher
	clock        dates.Clock
	log          *logger.Logger
}

// NewHabitService creates a new habit service. publisher may be nil.
func NewHabitService(
	habitRepo repository.HabitRepository,
	logRepo repository.HabitLogRepository,
	categoryRepo repository.CategoryRepository,
	publisher service.EventPublisher,
	clock dates.Clock,
	log *logger.Logger,
) service.HabitService {
	if log == nil {
		log = logger.Nop()
	}
	return &habitService{
		habitRepo:    habitRepo,
		logRepo:      logRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		clock:        clock,
		log:          log,
	}
}

func (s *habitService) now() time.Time {
	if s.clock.Now != nil {
		return s.clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *habitService) CreateHabit(ctx context.Context, userID uuid.UUID, in service.CreateHabitInput) (*entity.Habit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, entity.ErrInvalidHabitName
	}

	frequency := in.Frequency
	if frequency == "" {
		frequency = entity.FrequencyDaily
	}
	if !frequency.Valid() {
		return nil, entity.ErrInvalidFrequency
	}

	now := s.now()
	habit := &entity.Habit{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: in.Description,
		Frequency:   frequency,
		Category:    strings.TrimSpace(in.Category),
		Goal:        in.Goal,
		Color:       in.Color,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}

	s.log.Info("habit created", "habit_id", habit.ID, "user_id", userID)
	return habit, nil
}

func (s *habitService) GetHabit(ctx context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	return s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
}

func (s *habitService) ListHabits(ctx context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, int32, error) {
	habits, err := s.habitRepo.GetByUserID(ctx, userID, activeOnly)
	if err != nil {
		return nil, 0, err
	}

	return habits, int32(len(habits)), nil
}

func (s *habitService) UpdateHabit(ctx context.Context, habitID, userID uuid.UUID, in service.UpdateHabitInput) (*entity.Habit, error) {
	habit, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, entity.ErrInvalidHabitName
		}
		habit.Name = name
	}
	if in.Description != nil {
		habit.Description = in.Description
	}
	if in.Frequency != nil {
		if !in.Frequency.Valid() {
			return nil, entity.ErrInvalidFrequency
		}
		habit.Frequency = *in.Frequency
	}
	if in.Category != nil {
		habit.Category = strings.TrimSpace(*in.Category)
	}
	if in.Goal != nil {
		habit.Goal = in.Goal
	}
	if in.Color != nil {
		habit.Color = in.Color
	}
	if in.IsActive != nil {
		habit.IsActive = *in.IsActive
	}

	habit.UpdatedAt = s.now()

	if err := s.habitRepo.Update(ctx, habit); err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}

	return habit, nil
}

func (s *habitService) DeleteHabit(ctx context.Context, habitID, userID uuid.UUID) error {
	// Verify ownership
	if _, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID); err != nil {
		return err
	}

	return s.habitRepo.Delete(ctx, habitID)
}

func (s *habitService) ToggleCompletion(ctx context.Context, habitID, userID uuid.UUID, day dates.Day) (*entity.Habit, *entity.HabitLog, error) {
	habit, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	log, err := s.logRepo.GetByHabitAndDate(ctx, habitID, day)
	switch {
	case errors.Is(err, entity.ErrHabitLogNotFound):
		log = &entity.HabitLog{
			ID:        uuid.New(),
			HabitID:   habitID,
			UserID:    userID,
			Date:      day,
			Completed: true,
			CreatedAt: now,
		}
	case err != nil:
		return nil, nil, fmt.Errorf("failed to load habit log: %w", err)
	default:
		log.Completed = !log.Completed
	}
	log.UpdatedAt = now

	if err := s.logRepo.Upsert(ctx, log); err != nil {
		return nil, nil, fmt.Errorf("failed to save habit log: %w", err)
	}

	if err := s.afterLogWrite(ctx, habit, log); err != nil {
		return nil, nil, err
	}
	return habit, log, nil
}

func (s *habitService) LogCompletion(ctx context.Context, habitID, userID uuid.UUID, in service.LogInput) (*entity.Habit, *entity.HabitLog, error) {
	if !entity.ValidRating(in.Mood) || !entity.ValidRating(in.Effort) {
		return nil, nil, entity.ErrInvalidRating
	}

	habit, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID)
	if err != nil {
		return nil, nil, err
	}

	now := s.now()
	log := &entity.HabitLog{
		ID:        uuid.New(),
		HabitID:   habitID,
		UserID:    userID,
		Date:      in.Date,
		Completed: in.Completed,
		Notes:     in.Notes,
		Mood:      in.Mood,
		Effort:    in.Effort,
		CreatedAt: now,
		UpdatedAt: now,
	}

	existing, err := s.logRepo.GetByHabitAndDate(ctx, habitID, in.Date)
	switch {
	case err == nil:
		log.ID = existing.ID
		log.CreatedAt = existing.CreatedAt
	case !errors.Is(err, entity.ErrHabitLogNotFound):
		return nil, nil, fmt.Errorf("failed to load habit log: %w", err)
	}

	if err := s.logRepo.Upsert(ctx, log); err != nil {
		return nil, nil, fmt.Errorf("failed to save habit log: %w", err)
	}

	if err := s.afterLogWrite(ctx, habit, log); err != nil {
		return nil, nil, err
	}
	return habit, log, nil
}

// afterLogWrite recomputes the derived streak fields from the stored logs and
// publishes the resulting events.
func (s *habitService) afterLogWrite(ctx context.Context, habit *entity.Habit, log *entity.HabitLog) error {
	previous := habit.Streak
	if _, err := s.recomputeStreak(ctx, habit); err != nil {
		return err
	}

	s.publish(ctx, habit, log, entity.EventLogRecorded)
	if habit.GoalReached(habit.Streak) && !habit.GoalReached(previous) {
		s.publish(ctx, habit, log, entity.EventStreakGoalReached)
	}
	return nil
}

// recomputeStreak rewrites habit.Streak and habit.LastCompleted and reports
// whether they changed.
func (s *habitService) recomputeStreak(ctx context.Context, habit *entity.Habit) (bool, error) {
	logs, err := s.logRepo.ListByHabitID(ctx, habit.ID)
	if err != nil {
		return false, fmt.Errorf("failed to list habit logs: %w", err)
	}

	today := s.clock.Today()
	streak := int32(CurrentStreak(logs, today))

	var lastCompleted *time.Time
	if day, ok := lastCompletedDay(logs, today); ok {
		t := day.Time()
		lastCompleted = &t
	}

	if streak == habit.Streak && sameDay(lastCompleted, habit.LastCompleted) {
		return false, nil
	}

	if err := s.habitRepo.UpdateStreak(ctx, habit.ID, streak, lastCompleted); err != nil {
		return false, fmt.Errorf("failed to update streak: %w", err)
	}
	habit.Streak = streak
	habit.LastCompleted = lastCompleted
	return true, nil
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return dates.FromTime(a.UTC()) == dates.FromTime(b.UTC())
}

func (s *habitService) publish(ctx context.Context, habit *entity.Habit, log *entity.HabitLog, eventType entity.EventType) {
	if s.publisher == nil {
		return
	}

	event := &entity.HabitEvent{
		ID:         uuid.New(),
		Type:       eventType,
		HabitID:    habit.ID,
		UserID:     habit.UserID,
		Date:       log.Date,
		Completed:  log.Completed,
		Streak:     habit.Streak,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish habit event", "type", eventType, "habit_id", habit.ID, "error", err)
	}
}

func (s *habitService) GetHabitHistory(ctx context.Context, habitID, userID uuid.UUID) ([]entity.HabitLog, error) {
	// Verify ownership
	if _, err := s.habitRepo.GetByIDAndUserID(ctx, habitID, userID); err != nil {
		return nil, err
	}

	return s.logRepo.ListByHabitID(ctx, habitID)
}

func (s *habitService) ReconcileStreaks(ctx context.Context) (int, error) {
	habits, err := s.habitRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active habits: %w", err)
	}

	updated := 0
	for _, habit := range habits {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		changed, err := s.recomputeStreak(ctx, habit)
		if err != nil {
			s.log.Error("failed to reconcile streak", "habit_id", habit.ID, "error", err)
			continue
		}
		if changed {
			updated++
			s.log.Debug("streak reconciled", "habit_id", habit.ID, "streak", habit.Streak)
		}
	}

	return updated, nil
}

func (s *habitService) CreateCategory(ctx context.Context, userID uuid.UUID, in service.CreateCategoryInput) (*entity.HabitCategory, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, entity.ErrInvalidCategoryName
	}

	category := &entity.HabitCategory{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		CreatedAt:   s.now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *habitService) ListCategories(ctx context.Context, userID uuid.UUID) ([]*entity.HabitCategory, error) {
	return s.categoryRepo.ListByUserID(ctx, userID)
}

func (s *habitService) DeleteCategory(ctx context.Context, categoryID, userID uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, categoryID, userID)
}
