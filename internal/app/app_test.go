package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"habit-analytics/internal/config"
	"habit-analytics/internal/domain/service"
	"habit-analytics/internal/pkg/logger"

	"github.com/google/uuid"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Service:   config.ServiceConfig{Name: "habit-analytics"},
		HTTP:      config.HTTPConfig{Port: 0},
		Storage:   config.StorageConfig{Driver: config.DriverSQLite},
		SQLite:    config.SQLiteConfig{Path: filepath.Join(t.TempDir(), "habits.db")},
		Scheduler: config.SchedulerConfig{Enabled: true, ReconcileInterval: time.Hour},
		Analytics: config.AnalyticsConfig{Timezone: "UTC"},
		JWT:       config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Minute, Issuer: "habit-analytics"},
	}
}

func TestNewWiresSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	a, err := New(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer a.Close()

	if a.MigrationsApplied() == 0 {
		t.Fatalf("fresh database must apply migrations")
	}
	if a.streakJob == nil {
		t.Fatalf("scheduler enabled but no streak job")
	}

	userID := uuid.New()
	habit, err := a.Habits().CreateHabit(ctx, userID, service.CreateHabitInput{Name: "Stretch"})
	if err != nil {
		t.Fatalf("CreateHabit() error = %v", err)
	}
	if _, _, err := a.Habits().ToggleCompletion(ctx, habit.ID, userID, a.clock.Today()); err != nil {
		t.Fatalf("ToggleCompletion() error = %v", err)
	}

	analytics, err := a.Reports().GetHabitAnalytics(ctx, habit.ID, userID)
	if err != nil {
		t.Fatalf("GetHabitAnalytics() error = %v", err)
	}
	if analytics.CurrentStreak != 1 {
		t.Fatalf("CurrentStreak = %d, want 1", analytics.CurrentStreak)
	}

	if _, err := a.ReconcileStreaks(ctx); err != nil {
		t.Fatalf("ReconcileStreaks() error = %v", err)
	}
}

func TestNewReopensWithoutMigrating(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	first, err := New(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	first.Close()

	second, err := New(ctx, cfg, logger.Nop())
	if err != nil {
		t.Fatalf("second New() error = %v", err)
	}
	defer second.Close()

	if second.MigrationsApplied() != 0 {
		t.Fatalf("MigrationsApplied() = %d on reopen, want 0", second.MigrationsApplied())
	}
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Storage.Driver = "mongo"

	if _, err := New(context.Background(), cfg, logger.Nop()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
