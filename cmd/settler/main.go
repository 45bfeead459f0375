package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cassiomorais/corebank/internal/bootstrap"
	infraRedis "github.com/cassiomorais/corebank/internal/infrastructure/redis"
	"github.com/cassiomorais/corebank/internal/repository/postgres"
	"github.com/cassiomorais/corebank/internal/settlement"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := bootstrap.New(ctx, "corebank-settler", "corebank_settler")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	accountRepo := postgres.NewAccountRepository(app.Pool)
	transferRepo := postgres.NewTransferRepository(app.Pool)
	txManager := postgres.NewTxManager(app.Pool)

	settlementCfg := app.Config.Settlement
	settler := settlement.NewSettler(
		accountRepo,
		transferRepo,
		txManager,
		settlementCfg.MaturityWindow,
		app.Metrics,
		app.Logger,
	)

	tickLock := infraRedis.NewDistributedLock(app.Redis, "settlement:tick", settlementCfg.LockTTL)
	scheduler := settlement.NewScheduler(settler, tickLock, settlementCfg.Interval, app.Logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := scheduler.Start(gCtx); err != nil {
			return err
		}
		<-gCtx.Done()
		scheduler.Stop()
		return nil
	})

	g.Go(func() error {
		select {
		case <-gCtx.Done():
			return gCtx.Err()
		case <-quit:
			app.Logger.Info().Msg("Shutting down settler...")
			cancel()
			return nil
		}
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		app.Logger.Error().Err(err).Msg("Settler error")
	}
	app.Logger.Info().Msg("Settler exited")
}
