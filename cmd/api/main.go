package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	accountApp "github.com/cassiomorais/corebank/internal/application/account"
	beneficiaryApp "github.com/cassiomorais/corebank/internal/application/beneficiary"
	historyApp "github.com/cassiomorais/corebank/internal/application/history"
	transferApp "github.com/cassiomorais/corebank/internal/application/transfer"
	userApp "github.com/cassiomorais/corebank/internal/application/user"
	"github.com/cassiomorais/corebank/internal/bootstrap"
	"github.com/cassiomorais/corebank/internal/controller"
	"github.com/cassiomorais/corebank/internal/iban"
	"github.com/cassiomorais/corebank/internal/repository/postgres"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.New(ctx, "corebank-api", "corebank")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}
	defer app.Close()

	// --- Repositories ---
	userRepo := postgres.NewUserRepository(app.Pool)
	accountRepo := postgres.NewAccountRepository(app.Pool)
	transferRepo := postgres.NewTransferRepository(app.Pool)
	beneficiaryRepo := postgres.NewBeneficiaryRepository(app.Pool)
	txManager := postgres.NewTxManager(app.Pool)

	// --- Application services ---
	allocator := iban.NewAllocator(iban.NewGenerator(), accountRepo)
	createAccountUC := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, allocator, app.Config.Ledger.SignupBonusCents)
	getAccountUC := accountApp.NewGetAccountUseCase(accountRepo)
	depositUC := accountApp.NewDepositUseCase(accountRepo, txManager)
	closeAccountUC := accountApp.NewCloseAccountUseCase(accountRepo, transferRepo, txManager)
	historyUC := historyApp.NewGetHistoryUseCase(accountRepo, transferRepo)
	registerUC := userApp.NewRegisterUseCase(userRepo, createAccountUC, txManager)
	authenticateUC := userApp.NewAuthenticateUseCase(userRepo)
	initiateUC := transferApp.NewInitiateTransferUseCase(accountRepo, transferRepo)
	cancelUC := transferApp.NewCancelTransferUseCase(transferRepo)
	infoUC := transferApp.NewGetTransferInfoUseCase(accountRepo, transferRepo)
	addBeneficiaryUC := beneficiaryApp.NewAddBeneficiaryUseCase(beneficiaryRepo, accountRepo)
	listBeneficiariesUC := beneficiaryApp.NewListBeneficiariesUseCase(beneficiaryRepo)

	// --- Build router ---
	router := controller.NewRouter(controller.RouterDeps{
		Pool:           app.Pool,
		RedisClient:    app.Redis,
		Metrics:        app.Metrics,
		AuthConfig:     app.Config.Auth,
		CORSConfig:     app.Config.Server.CORS,
		RegisterUC:     registerUC,
		AuthenticateUC: authenticateUC,
		CreateAccount:  createAccountUC,
		GetAccount:     getAccountUC,
		Deposit:        depositUC,
		CloseAccount:   closeAccountUC,
		History:        historyUC,
		Initiate:       initiateUC,
		Cancel:         cancelUC,
		TransferInfo:   infoUC,
		AddBeneficiary: addBeneficiaryUC,
		ListBenefs:     listBeneficiariesUC,
	})

	// --- HTTP server ---
	addr := fmt.Sprintf(":%d", app.Config.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  app.Config.Server.ReadTimeout,
		WriteTimeout: app.Config.Server.WriteTimeout,
		IdleTimeout:  app.Config.Server.IdleTimeout,
	}

	go func() {
		app.Logger.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	app.Logger.Info().Msg("Server exited")
}
