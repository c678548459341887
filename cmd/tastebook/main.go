package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matt-dz/tastebook/internal/api"
	"github.com/matt-dz/tastebook/internal/config"
	"github.com/matt-dz/tastebook/internal/env"
	"github.com/matt-dz/tastebook/internal/log"
	"github.com/matt-dz/tastebook/internal/setup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	const setupTime = 30 * time.Second
	setupCtx, cancel := context.WithTimeout(ctx, setupTime)
	defer cancel()

	logger := log.New(nil)

	conf, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger = log.New(&slog.HandlerOptions{Level: log.LevelFor(conf.Env)})

	db, err := setup.Database(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup database", slog.Any("error", err))
		os.Exit(1)
	}

	recipeCache, err := setup.Cache(setupCtx, conf)
	if err != nil {
		logger.Error("failed to setup cache", slog.Any("error", err))
		_ = db.Close(context.Background())
		os.Exit(1)
	}

	env := env.New(logger, db, recipeCache, conf)

	logger.DebugContext(ctx, "setting up admin")
	if err := setup.Admin(setupCtx, env); err != nil {
		logger.Error("failed to setup admin", slog.Any("error", err))
		_ = recipeCache.Close()
		_ = db.Close(context.Background())
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Start(gctx, env)
	})
	err = g.Wait()

	closeCtx, cancelClose := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelClose()
	if cerr := recipeCache.Close(); cerr != nil {
		logger.Error("failed to close cache", slog.Any("error", cerr))
	}
	if cerr := db.Close(closeCtx); cerr != nil {
		logger.Error("failed to close database", slog.Any("error", cerr))
	}

	if err != nil {
		logger.Error("API Failed", slog.Any("error", err))
		os.Exit(1)
	}
}
