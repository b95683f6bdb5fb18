package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "habits.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newHabit(userID uuid.UUID, name string) *entity.Habit {
	now := time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
	goal := int32(7)
	return &entity.Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Frequency: entity.FrequencyDaily,
		Category:  "health",
		Goal:      &goal,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestHabitRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := NewHabitRepository(store)

	userID := uuid.New()
	run := newHabit(userID, "Run")
	read := newHabit(userID, "Read")
	read.CreatedAt = read.CreatedAt.Add(time.Hour)
	read.IsActive = false

	for _, h := range []*entity.Habit{run, read} {
		if err := repo.Create(ctx, h); err != nil {
			t.Fatalf("Create(%s) error = %v", h.Name, err)
		}
	}

	got, err := repo.GetByIDAndUserID(ctx, run.ID, userID)
	if err != nil {
		t.Fatalf("GetByIDAndUserID() error = %v", err)
	}
	if got.Name != "Run" || got.Goal == nil || *got.Goal != 7 || !got.CreatedAt.Equal(run.CreatedAt) {
		t.Fatalf("unexpected habit %+v", got)
	}
	if got.Description != nil || got.LastCompleted != nil {
		t.Fatalf("nullable fields must stay nil: %+v", got)
	}

	if _, err := repo.GetByIDAndUserID(ctx, run.ID, uuid.New()); !errors.Is(err, entity.ErrHabitNotFound) {
		t.Fatalf("foreign user must not see habit, got %v", err)
	}

	all, err := repo.GetByUserID(ctx, userID, false)
	if err != nil || len(all) != 2 || all[0].Name != "Run" {
		t.Fatalf("GetByUserID(all) = %v, %v", all, err)
	}
	active, err := repo.ListActive(ctx)
	if err != nil || len(active) != 1 || active[0].ID != run.ID {
		t.Fatalf("ListActive() = %v, %v", active, err)
	}

	last := dates.MustParse("2024-06-14").Time()
	if err := repo.UpdateStreak(ctx, run.ID, 5, &last); err != nil {
		t.Fatalf("UpdateStreak() error = %v", err)
	}
	got, _ = repo.GetByIDAndUserID(ctx, run.ID, userID)
	if got.Streak != 5 || got.LastCompleted == nil || !got.LastCompleted.Equal(last) {
		t.Fatalf("streak fields = %d, %v", got.Streak, got.LastCompleted)
	}

	got.Name = "Morning run"
	got.Frequency = entity.FrequencyWeekly
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ = repo.GetByIDAndUserID(ctx, run.ID, userID)
	if got.Name != "Morning run" || got.Frequency != entity.FrequencyWeekly || got.Streak != 5 {
		t.Fatalf("Update() stored %+v", got)
	}

	if err := repo.Delete(ctx, uuid.New()); !errors.Is(err, entity.ErrHabitNotFound) {
		t.Fatalf("Delete(missing) = %v", err)
	}
}

func TestHabitLogRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	habits := NewHabitRepository(store)
	logs := NewHabitLogRepository(store)

	userID := uuid.New()
	habit := newHabit(userID, "Meditate")
	if err := habits.Create(ctx, habit); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	now := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)
	mood := int32(3)
	note := "felt calm"
	for i, raw := range []string{"2024-06-13", "2024-06-15", "2024-06-14"} {
		log := &entity.HabitLog{
			ID:        uuid.New(),
			HabitID:   habit.ID,
			UserID:    userID,
			Date:      dates.MustParse(raw),
			Completed: i != 2,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if i == 0 {
			log.Mood = &mood
			log.Notes = &note
		}
		if err := logs.Upsert(ctx, log); err != nil {
			t.Fatalf("Upsert(%s) error = %v", raw, err)
		}
	}

	listed, err := logs.ListByHabitID(ctx, habit.ID)
	if err != nil || len(listed) != 3 {
		t.Fatalf("ListByHabitID() = %v, %v", listed, err)
	}
	if listed[0].Date.String() != "2024-06-13" || listed[2].Date.String() != "2024-06-15" {
		t.Fatalf("logs not ordered by date: %v", listed)
	}
	if listed[0].Mood == nil || *listed[0].Mood != 3 || listed[0].Notes == nil || *listed[0].Notes != note {
		t.Fatalf("optional fields lost: %+v", listed[0])
	}

	replacement := &entity.HabitLog{
		ID:        uuid.New(),
		HabitID:   habit.ID,
		UserID:    userID,
		Date:      dates.MustParse("2024-06-14"),
		Completed: true,
		CreatedAt: now,
		UpdatedAt: now.Add(time.Hour),
	}
	if err := logs.Upsert(ctx, replacement); err != nil {
		t.Fatalf("Upsert(replacement) error = %v", err)
	}
	got, err := logs.GetByHabitAndDate(ctx, habit.ID, replacement.Date)
	if err != nil {
		t.Fatalf("GetByHabitAndDate() error = %v", err)
	}
	if !got.Completed || got.ID == replacement.ID {
		t.Fatalf("upsert must update the stored row in place: %+v", got)
	}

	ranged, err := logs.ListByUserRange(ctx, userID, dates.MustParse("2024-06-14"), dates.MustParse("2024-06-15"))
	if err != nil || len(ranged) != 2 {
		t.Fatalf("ListByUserRange() = %v, %v", ranged, err)
	}
	if _, err := logs.ListByUserRange(ctx, userID, dates.MustParse("2024-06-15"), dates.MustParse("2024-06-14")); !errors.Is(err, entity.ErrInvalidDateRange) {
		t.Fatalf("reversed range = %v", err)
	}

	if err := habits.Delete(ctx, habit.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	remaining, err := logs.ListByUserID(ctx, userID)
	if err != nil || len(remaining) != 0 {
		t.Fatalf("logs must cascade with their habit: %v, %v", remaining, err)
	}
	if _, err := logs.GetByHabitAndDate(ctx, habit.ID, replacement.Date); !errors.Is(err, entity.ErrHabitLogNotFound) {
		t.Fatalf("expected ErrHabitLogNotFound, got %v", err)
	}
}

func TestCategoryRepository(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	repo := NewCategoryRepository(store)

	userID := uuid.New()
	created := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for _, name := range []string{"mind", "body"} {
		c := &entity.HabitCategory{ID: uuid.New(), UserID: userID, Name: name, Color: "#123456", CreatedAt: created}
		if err := repo.Create(ctx, c); err != nil {
			t.Fatalf("Create(%s) error = %v", name, err)
		}
	}

	dup := &entity.HabitCategory{ID: uuid.New(), UserID: userID, Name: "mind", CreatedAt: created}
	if err := repo.Create(ctx, dup); !errors.Is(err, entity.ErrCategoryExists) {
		t.Fatalf("duplicate name = %v", err)
	}

	listed, err := repo.ListByUserID(ctx, userID)
	if err != nil || len(listed) != 2 || listed[0].Name != "body" {
		t.Fatalf("ListByUserID() = %v, %v", listed, err)
	}

	if err := repo.Delete(ctx, listed[0].ID, uuid.New()); !errors.Is(err, entity.ErrCategoryNotFound) {
		t.Fatalf("foreign delete = %v", err)
	}
	if err := repo.Delete(ctx, listed[0].ID, userID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
