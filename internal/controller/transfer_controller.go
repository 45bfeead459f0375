package controller

import (
	"net/http"

	transferApp "github.com/cassiomorais/corebank/internal/application/transfer"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/infrastructure/observability"
	"github.com/cassiomorais/corebank/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// TransferController handles transfer-related HTTP requests.
type TransferController struct {
	initiateUC *transferApp.InitiateTransferUseCase
	cancelUC   *transferApp.CancelTransferUseCase
	infoUC     *transferApp.GetTransferInfoUseCase
	metrics    *observability.Metrics
}

func NewTransferController(
	initiateUC *transferApp.InitiateTransferUseCase,
	cancelUC *transferApp.CancelTransferUseCase,
	infoUC *transferApp.GetTransferInfoUseCase,
	metrics *observability.Metrics,
) *TransferController {
	return &TransferController{
		initiateUC: initiateUC,
		cancelUC:   cancelUC,
		infoUC:     infoUC,
		metrics:    metrics,
	}
}

// Initiate handles POST /api/v1/transfers
func (c *TransferController) Initiate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	var req TransferRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	t, err := c.initiateUC.Execute(r.Context(), transferApp.InitiateRequest{
		UserID:      userID,
		SourceName:  req.SourceAccount,
		TargetIBAN:  req.TargetIBAN,
		AmountCents: floatToCents(req.Amount),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	c.metrics.TransfersTotal.WithLabelValues(string(transfer.StatusPending)).Inc()
	c.metrics.TransferAmount.WithLabelValues(string(transfer.StatusPending)).Observe(float64(t.Amount))
	writeJSON(w, http.StatusCreated, FromTransfer(t))
}

// Cancel handles POST /api/v1/transfers/{id}/cancel
func (c *TransferController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transfer id", Code: "invalid_id"})
		return
	}

	t, err := c.cancelUC.Execute(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	c.metrics.TransfersTotal.WithLabelValues(string(transfer.StatusCancelled)).Inc()
	writeJSON(w, http.StatusOK, FromTransfer(t))
}

// Get handles GET /api/v1/transfers/{id}
func (c *TransferController) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid transfer id", Code: "invalid_id"})
		return
	}

	info, err := c.infoUC.Execute(r.Context(), userID, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, FromTransferInfo(info))
}
