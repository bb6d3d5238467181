// Command todoctl registers users and issues access tokens against the todo
// database, using the server configuration (.env, JSON file and flags).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/todoapi/internal/cli"
	"github.com/dmitrijs2005/todoapi/internal/logging"
	"github.com/dmitrijs2005/todoapi/internal/server/auth"
	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todoapi/internal/server/services"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "todoctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.NewJSONLogger(os.Stderr, cfg.LogLevel)

	hasher, err := auth.NewBcryptHasher(cfg.BcryptCost, logger)
	if err != nil {
		return err
	}
	issuer, err := auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenTTL)
	if err != nil {
		return err
	}

	db, err := repomanager.OpenDB(ctx, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return err
	}

	users := services.NewUserService(db, rm, hasher, issuer, logger)
	return cli.NewApp(users, os.Stdin, int(os.Stdin.Fd()), os.Stdout).Run(ctx, os.Args[1:])
}
