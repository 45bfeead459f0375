package controller

import (
	"time"

	accountApp "github.com/cassiomorais/corebank/internal/application/account"
	beneficiaryApp "github.com/cassiomorais/corebank/internal/application/beneficiary"
	historyApp "github.com/cassiomorais/corebank/internal/application/history"
	transferApp "github.com/cassiomorais/corebank/internal/application/transfer"
	userApp "github.com/cassiomorais/corebank/internal/application/user"
	"github.com/cassiomorais/corebank/internal/infrastructure/config"
	"github.com/cassiomorais/corebank/internal/infrastructure/observability"
	customMW "github.com/cassiomorais/corebank/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	Pool        *pgxpool.Pool
	RedisClient *redis.Client
	Metrics     *observability.Metrics
	AuthConfig  config.AuthConfig
	CORSConfig  config.CORSConfig

	RegisterUC     *userApp.RegisterUseCase
	AuthenticateUC *userApp.AuthenticateUseCase
	CreateAccount  *accountApp.CreateAccountUseCase
	GetAccount     *accountApp.GetAccountUseCase
	Deposit        *accountApp.DepositUseCase
	CloseAccount   *accountApp.CloseAccountUseCase
	History        *historyApp.GetHistoryUseCase
	Initiate       *transferApp.InitiateTransferUseCase
	Cancel         *transferApp.CancelTransferUseCase
	TransferInfo   *transferApp.GetTransferInfoUseCase
	AddBeneficiary *beneficiaryApp.AddBeneficiaryUseCase
	ListBenefs     *beneficiaryApp.ListBeneficiariesUseCase
}

func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(customMW.Tracing())
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSConfig.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: deps.CORSConfig.AllowCredentials,
		MaxAge:           300,
	}))
	r.Use(customMW.Metrics(deps.Metrics))

	healthC := NewHealthController(deps.Pool, deps.RedisClient)
	authC := NewAuthController(deps.RegisterUC, deps.AuthenticateUC, deps.AuthConfig)
	accountC := NewAccountController(deps.CreateAccount, deps.GetAccount, deps.Deposit, deps.CloseAccount, deps.History, deps.Metrics)
	transferC := NewTransferController(deps.Initiate, deps.Cancel, deps.TransferInfo, deps.Metrics)
	beneficiaryC := NewBeneficiaryController(deps.AddBeneficiary, deps.ListBenefs)

	r.Get("/health", healthC.Health)
	r.Get("/health/live", healthC.Liveness)
	r.Get("/health/ready", healthC.Readiness)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", authC.Register)
		r.Post("/auth/login", authC.Login)

		r.Group(func(r chi.Router) {
			r.Use(customMW.RequireAuth(deps.AuthConfig.JWTSecret))

			// Accounts
			r.Post("/accounts", accountC.Create)
			r.Get("/accounts", accountC.List)
			r.Get("/accounts/{name}", accountC.Get)
			r.Post("/accounts/{name}/close", accountC.Close)
			r.Post("/accounts/{name}/deposits", accountC.Deposit)
			r.Get("/accounts/{name}/deposits", accountC.ListDeposits)
			r.Get("/accounts/{name}/history", accountC.History)

			// Transfers
			r.Post("/transfers", transferC.Initiate)
			r.Get("/transfers/{id}", transferC.Get)
			r.Post("/transfers/{id}/cancel", transferC.Cancel)

			// Beneficiaries
			r.Post("/beneficiaries", beneficiaryC.Add)
			r.Get("/beneficiaries", beneficiaryC.List)
		})
	})

	return r
}
