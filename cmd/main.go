package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	_ "habit-analytics/docs" // swagger docs
	"habit-analytics/internal/cli"
)

// @title Habit Analytics API
// @version 1.0
// @description Habit tracking with streaks, insights and calendar projections

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"./config/base.yaml" env:"CONFIG_PATH"`

	Serve     cli.ServeCmd     `cmd:"" help:"Run the HTTP and gRPC servers." default:"1"`
	Migrate   cli.MigrateCmd   `cmd:"" help:"Apply pending database migrations."`
	Reconcile cli.ReconcileCmd `cmd:"" help:"Recompute stored streaks once."`
	Token     cli.TokenCmd     `cmd:"" help:"Mint an access token for a user."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habit-analytics"),
		kong.Description("Habit tracking service with streak analytics"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := ctx.Run(&cli.Context{ConfigPath: CLI.Config}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
