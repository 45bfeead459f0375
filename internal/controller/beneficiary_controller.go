package controller

import (
	"net/http"

	beneficiaryApp "github.com/cassiomorais/corebank/internal/application/beneficiary"
	"github.com/cassiomorais/corebank/internal/middleware"
)

// BeneficiaryController handles saved-payee HTTP requests.
type BeneficiaryController struct {
	addUC  *beneficiaryApp.AddBeneficiaryUseCase
	listUC *beneficiaryApp.ListBeneficiariesUseCase
}

func NewBeneficiaryController(addUC *beneficiaryApp.AddBeneficiaryUseCase, listUC *beneficiaryApp.ListBeneficiariesUseCase) *BeneficiaryController {
	return &BeneficiaryController{addUC: addUC, listUC: listUC}
}

// Add handles POST /api/v1/beneficiaries
func (c *BeneficiaryController) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	var req AddBeneficiaryRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	b, err := c.addUC.Execute(r.Context(), userID, req.Name, req.IBAN)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, FromBeneficiary(b))
}

// List handles GET /api/v1/beneficiaries
func (c *BeneficiaryController) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "unauthorized", Code: "unauthorized"})
		return
	}

	beneficiaries, err := c.listUC.Execute(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]*BeneficiaryResponse, 0, len(beneficiaries))
	for _, b := range beneficiaries {
		resp = append(resp, FromBeneficiary(b))
	}
	writeJSON(w, http.StatusOK, resp)
}
