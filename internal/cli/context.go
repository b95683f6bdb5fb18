// Package cli holds the kong subcommands of the habit-analytics binary.
package cli

import (
	"context"
	"fmt"

	"habit-analytics/internal/app"
	"habit-analytics/internal/config"
	"habit-analytics/internal/pkg/logger"
)

// Context is shared by every subcommand. An empty ConfigPath falls back to
// CONFIG_PATH.
type Context struct {
	ConfigPath string
}

func (c *Context) load() (*config.Config, *logger.Logger, error) {
	load := config.Load
	if c.ConfigPath != "" {
		load = func() (*config.Config, error) { return config.LoadFile(c.ConfigPath) }
	}

	cfg, err := load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.OutputPath,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return cfg, log, nil
}

func (c *Context) app(ctx context.Context) (*app.App, *config.Config, *logger.Logger, error) {
	cfg, log, err := c.load()
	if err != nil {
		return nil, nil, nil, err
	}

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Sync()
		return nil, nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	return a, cfg, log, nil
}
