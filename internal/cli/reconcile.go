package cli

import (
	"context"
	"fmt"
	"time"
)

const defaultReconcileTimeout = 5 * time.Minute

// ReconcileCmd recomputes stored streaks once, outside the scheduler
type ReconcileCmd struct {
	Timeout time.Duration `help:"Abort the pass after this long." default:"5m"`
}

func (c *ReconcileCmd) Run(ctx *Context) error {
	runCtx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	a, _, log, err := ctx.app(runCtx)
	if err != nil {
		return err
	}
	defer log.Sync()
	defer a.Close()

	updated, err := a.ReconcileStreaks(runCtx)
	if err != nil {
		return fmt.Errorf("reconcile failed after %d update(s): %w", updated, err)
	}

	fmt.Printf("Reconciled streaks: %d habit(s) updated\n", updated)
	return nil
}
