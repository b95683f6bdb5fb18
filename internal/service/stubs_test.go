package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"habit-analytics/internal/domain/entity"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
)

type memHabitRepo struct {
	mu          sync.Mutex
	habits      map[uuid.UUID]*entity.Habit
	streakCalls int
}

func newMemHabitRepo(habits ...entity.Habit) *memHabitRepo {
	r := &memHabitRepo{habits: make(map[uuid.UUID]*entity.Habit)}
	for _, h := range habits {
		h := h
		r.habits[h.ID] = &h
	}
	return r
}

func (r *memHabitRepo) Create(_ context.Context, habit *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := *habit
	r.habits[h.ID] = &h
	return nil
}

func (r *memHabitRepo) GetByIDAndUserID(_ context.Context, habitID, userID uuid.UUID) (*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[habitID]
	if !ok || h.UserID != userID {
		return nil, entity.ErrHabitNotFound
	}
	out := *h
	return &out, nil
}

func (r *memHabitRepo) GetByUserID(_ context.Context, userID uuid.UUID, activeOnly bool) ([]*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Habit
	for _, h := range r.habits {
		if h.UserID != userID || (activeOnly && !h.IsActive) {
			continue
		}
		c := *h
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memHabitRepo) ListActive(_ context.Context) ([]*entity.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Habit
	for _, h := range r.habits {
		if h.IsActive {
			c := *h
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memHabitRepo) Update(_ context.Context, habit *entity.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.habits[habit.ID]; !ok {
		return entity.ErrHabitNotFound
	}
	h := *habit
	r.habits[h.ID] = &h
	return nil
}

func (r *memHabitRepo) Delete(_ context.Context, habitID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.habits, habitID)
	return nil
}

func (r *memHabitRepo) UpdateStreak(_ context.Context, habitID uuid.UUID, streak int32, lastCompleted *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.habits[habitID]
	if !ok {
		return entity.ErrHabitNotFound
	}
	r.streakCalls++
	h.Streak = streak
	h.LastCompleted = lastCompleted
	return nil
}

func (r *memHabitRepo) get(id uuid.UUID) entity.Habit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.habits[id]
}

type memLogRepo struct {
	mu   sync.Mutex
	logs []entity.HabitLog
}

func (r *memLogRepo) Upsert(_ context.Context, log *entity.HabitLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.logs {
		if l.HabitID == log.HabitID && l.Date == log.Date {
			r.logs[i] = log.Clone()
			return nil
		}
	}
	r.logs = append(r.logs, log.Clone())
	return nil
}

func (r *memLogRepo) GetByHabitAndDate(_ context.Context, habitID uuid.UUID, d dates.Day) (*entity.HabitLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.HabitID == habitID && l.Date == d {
			c := l.Clone()
			return &c, nil
		}
	}
	return nil, entity.ErrHabitLogNotFound
}

func (r *memLogRepo) filter(keep func(entity.HabitLog) bool) []entity.HabitLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.HabitLog
	for _, l := range r.logs {
		if keep(l) {
			out = append(out, l.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func (r *memLogRepo) ListByHabitID(_ context.Context, habitID uuid.UUID) ([]entity.HabitLog, error) {
	return r.filter(func(l entity.HabitLog) bool { return l.HabitID == habitID }), nil
}

func (r *memLogRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]entity.HabitLog, error) {
	return r.filter(func(l entity.HabitLog) bool { return l.UserID == userID }), nil
}

func (r *memLogRepo) ListByUserRange(_ context.Context, userID uuid.UUID, from, to dates.Day) ([]entity.HabitLog, error) {
	return r.filter(func(l entity.HabitLog) bool {
		return l.UserID == userID && l.Date >= from && l.Date <= to
	}), nil
}

type memCategoryRepo struct {
	categories []*entity.HabitCategory
}

func (r *memCategoryRepo) Create(_ context.Context, category *entity.HabitCategory) error {
	for _, c := range r.categories {
		if c.UserID == category.UserID && c.Name == category.Name {
			return entity.ErrCategoryExists
		}
	}
	c := *category
	r.categories = append(r.categories, &c)
	return nil
}

func (r *memCategoryRepo) ListByUserID(_ context.Context, userID uuid.UUID) ([]*entity.HabitCategory, error) {
	var out []*entity.HabitCategory
	for _, c := range r.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) Delete(_ context.Context, categoryID, userID uuid.UUID) error {
	for i, c := range r.categories {
		if c.ID == categoryID && c.UserID == userID {
			r.categories = append(r.categories[:i], r.categories[i+1:]...)
			return nil
		}
	}
	return entity.ErrCategoryNotFound
}

type recordingPublisher struct {
	events []entity.HabitEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *entity.HabitEvent) error {
	p.events = append(p.events, *event)
	return p.err
}

func (p *recordingPublisher) types() []entity.EventType {
	out := make([]entity.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
