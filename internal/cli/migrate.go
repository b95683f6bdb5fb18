package cli

import (
	"context"
	"fmt"
)

// MigrateCmd applies pending schema migrations and exits
type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *Context) error {
	a, cfg, log, err := ctx.app(context.Background())
	if err != nil {
		return err
	}
	defer log.Sync()
	defer a.Close()

	fmt.Printf("Applied %d migration(s) to %s storage\n", a.MigrationsApplied(), cfg.Storage.Driver)
	return nil
}
