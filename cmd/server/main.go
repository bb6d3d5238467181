package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err := app.Close(); err != nil {
		logger.Error(ctx, "closing database", "error", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
