package controller

import (
	"net/http"

	accountApp "github.com/cassiomorais/corebank/internal/application/account"
	historyApp "github.com/cassiomorais/corebank/internal/application/history"
	"github.com/cassiomorais/corebank/internal/infrastructure/observability"
	"github.com/cassiomorais/corebank/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// AccountController handles account-related HTTP requests. Accounts are
// addressed by their per-user name, which routes carry as {name}.
type AccountController struct {
	createUC  *accountApp.CreateAccountUseCase
	getUC     *accountApp.GetAccountUseCase
	depositUC *accountApp.DepositUseCase
	closeUC   *accountApp.CloseAccountUseCase
	historyUC *historyApp.GetHistoryUseCase
	metrics   *observability.Metrics
}

func NewAccountController(
	createUC *accountApp.CreateAccountUseCase,
	getUC *accountApp.GetAccountUseCase,
	depositUC *accountApp.DepositUseCase,
	closeUC *accountApp.CloseAccountUseCase,
	historyUC *historyApp.GetHistoryUseCase,
	metrics *observability.Metrics,
) *AccountController {
	return &AccountController{
		createUC:  createUC,
		getUC:     getUC,
		depositUC: depositUC,
		closeUC:   closeUC,
		historyUC: historyUC,
		metrics:   metrics,
	}
}

// Create handles POST /api/v1/accounts
func (c *AccountController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	var req CreateAccountRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	acc, err := c.createUC.Execute(r.Context(), userID, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	c.metrics.AccountsTotal.WithLabelValues("secondary").Inc()
	writeJSON(w, http.StatusCreated, FromAccount(acc))
}

// List handles GET /api/v1/accounts
func (c *AccountController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	accounts, err := c.getUC.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		resp = append(resp, FromAccount(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/accounts/{name}
func (c *AccountController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	acc, err := c.getUC.Execute(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromAccount(acc))
}

// Close handles POST /api/v1/accounts/{name}/close
func (c *AccountController) Close(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	sweep, err := c.closeUC.Execute(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	c.metrics.AccountsClosed.Inc()

	// No balance to sweep means no transfer row to report.
	if sweep == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, FromTransfer(sweep))
}

// Deposit handles POST /api/v1/accounts/{name}/deposits
func (c *AccountController) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	var req DepositRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	d, err := c.depositUC.Execute(r.Context(), userID, chi.URLParam(r, "name"), floatToCents(req.Amount))
	if err != nil {
		writeError(w, err)
		return
	}

	c.metrics.DepositsTotal.Inc()
	writeJSON(w, http.StatusCreated, FromDeposit(d))
}

// ListDeposits handles GET /api/v1/accounts/{name}/deposits
func (c *AccountController) ListDeposits(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	deposits, err := c.depositUC.History(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		resp = append(resp, FromDeposit(d))
	}
	writeJSON(w, http.StatusOK, resp)
}

// History handles GET /api/v1/accounts/{name}/history
func (c *AccountController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	// Resolved directly so history stays readable after closure.
	acc, err := c.getUC.ExecuteAny(r.Context(), userID, chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := c.historyUC.Execute(r.Context(), userID, acc.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, &HistoryEntryResponse{
			Type:       e.Type,
			Amount:     centsToFloat(e.Amount),
			Status:     e.Status,
			Source:     e.Source,
			Target:     e.Target,
			OccurredAt: e.OccurredAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
