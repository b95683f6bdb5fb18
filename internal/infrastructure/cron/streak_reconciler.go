package cron

import (
	"context"
	"fmt"
	"time"

	"habit-analytics/internal/pkg/logger"

	"github.com/robfig/cron/v3"
)

const reconcileTimeout = 5 * time.Minute

// StreakReconciler is the part of the habit service the job drives
type StreakReconciler interface {
	ReconcileStreaks(ctx context.Context) (int, error)
}

// Locker grants a lease to one replica at a time. A nil release means the
// lease is held elsewhere.
type Locker interface {
	TryAcquire(ctx context.Context) (func(context.Context) error, error)
}

// StreakJob periodically recomputes stored streaks so that habits nobody
// logged recently stop advertising a stale count
type StreakJob struct {
	service  StreakReconciler
	locker   Locker
	cron     *cron.Cron
	interval time.Duration
	log      *logger.Logger
}

// NewStreakJob creates the job. locker may be nil for single-replica setups.
func NewStreakJob(svc StreakReconciler, locker Locker, interval time.Duration, log *logger.Logger) *StreakJob {
	return &StreakJob{
		service:  svc,
		locker:   locker,
		cron:     cron.New(),
		interval: interval,
		log:      log,
	}
}

// Start starts the scheduler
func (j *StreakJob) Start() error {
	cronExpr := fmt.Sprintf("@every %s", j.interval.String())

	j.log.Info("Starting streak reconciler", "interval", j.interval.String())

	_, err := j.cron.AddFunc(cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()
		j.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	j.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish
func (j *StreakJob) Stop() {
	j.log.Info("Stopping streak reconciler")
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info("Streak reconciler stopped")
}

// RunOnce performs a single reconcile pass. It returns the number of
// habits whose streak changed, or -1 when another replica holds the lease.
func (j *StreakJob) RunOnce(ctx context.Context) int {
	if j.locker != nil {
		release, err := j.locker.TryAcquire(ctx)
		if err != nil {
			j.log.Error("Failed to acquire reconcile lock", "error", err)
			return -1
		}
		if release == nil {
			j.log.Debug("Reconcile lock held by another instance, skipping")
			return -1
		}
		defer func() {
			if err := release(context.Background()); err != nil {
				j.log.Warn("Failed to release reconcile lock", "error", err)
			}
		}()
	}

	started := time.Now()
	changed, err := j.service.ReconcileStreaks(ctx)
	if err != nil {
		j.log.Error("Streak reconcile failed", "error", err, "changed", changed)
		return changed
	}

	j.log.Info("Streak reconcile completed", "changed", changed, "took", time.Since(started).String())
	return changed
}
