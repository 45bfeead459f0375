package controller

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"

	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrUserNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrAccountNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrTransferNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrBeneficiaryNotFound, http.StatusNotFound, "not_found"},
	{domainErrors.ErrDuplicateEmail, http.StatusConflict, "duplicate_email"},
	{domainErrors.ErrDuplicateAccountName, http.StatusConflict, "duplicate_account_name"},
	{domainErrors.ErrDuplicateBeneficiary, http.StatusConflict, "duplicate_beneficiary"},
	{domainErrors.ErrOwnAccountBeneficiary, http.StatusForbidden, "own_account"},
	{domainErrors.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domainErrors.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},
	{domainErrors.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domainErrors.ErrSameAccount, http.StatusUnprocessableEntity, "same_account"},
	{domainErrors.ErrAccountClosed, http.StatusUnprocessableEntity, "account_closed"},
	{domainErrors.ErrMainAccountClose, http.StatusUnprocessableEntity, "main_account"},
	{domainErrors.ErrPendingTransfers, http.StatusConflict, "pending_transfers"},
	{domainErrors.ErrTransferSettled, http.StatusConflict, "already_settled"},
	{domainErrors.ErrTransferCancelled, http.StatusConflict, "already_cancelled"},
	{domainErrors.ErrInvalidStateTransition, http.StatusConflict, "invalid_state_transition"},
	{domainErrors.ErrCommitConflict, http.StatusConflict, "conflict"},
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var validationErr *domainErrors.ValidationError
	if errors.As(err, &validationErr) {
		resp.Code = "validation_error"
		writeJSON(w, http.StatusBadRequest, resp)
		return
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			resp.Code = m.code
			if m.err == domainErrors.ErrCommitConflict {
				resp.Error = "concurrent modification, please retry"
			}
			writeJSON(w, m.status, resp)
			return
		}
	}

	var domainErr *domainErrors.DomainError
	if errors.As(err, &domainErr) {
		resp.Code = domainErr.Code
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}

	log.Error().Err(err).Msg("unhandled error in handler")
	resp.Code = "internal_error"
	resp.Error = "internal server error"
	writeJSON(w, http.StatusInternalServerError, resp)
}

func decodeAndValidate(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domainErrors.NewValidationError("body", "invalid JSON: "+err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return domainErrors.NewValidationError(ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return domainErrors.NewValidationError("body", err.Error())
	}
	return nil
}

// floatToCents converts a float64 amount to int64 cents.
func floatToCents(f float64) int64 {
	return int64(math.Round(f * 100))
}

// centsToFloat converts int64 cents to float64 for JSON output.
func centsToFloat(cents int64) float64 {
	return float64(cents) / 100.0
}
