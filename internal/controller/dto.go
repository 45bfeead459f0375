package controller

import (
	"time"

	transferApp "github.com/cassiomorais/corebank/internal/application/transfer"
	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/beneficiary"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/domain/user"
	"github.com/google/uuid"
)

// RegisterRequest is the HTTP request body for signup.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateAccountRequest is the HTTP request body for opening an account.
type CreateAccountRequest struct {
	Name string `json:"name" validate:"required"`
}

// DepositRequest is the HTTP request body for a cash deposit.
type DepositRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest is the HTTP request body for initiating a transfer.
type TransferRequest struct {
	SourceAccount string  `json:"source_account" validate:"required"`
	TargetIBAN    string  `json:"target_iban" validate:"required,len=34"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// AddBeneficiaryRequest is the HTTP request body for saving a payee.
type AddBeneficiaryRequest struct {
	Name string `json:"name" validate:"required"`
	IBAN string `json:"iban" validate:"required,len=34"`
}

// UserResponse is the HTTP response for a user.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromUser maps a domain User to a UserResponse.
func FromUser(u *user.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// TokenResponse is the HTTP response for a successful login or signup.
type TokenResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse is the HTTP response for an account.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IBAN      string    `json:"iban"`
	Balance   float64   `json:"balance"`
	IsMain    bool      `json:"is_main"`
	IsClosed  bool      `json:"is_closed"`
	CreatedAt time.Time `json:"created_at"`
}

// FromAccount maps a domain Account to an AccountResponse.
func FromAccount(a *account.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		IBAN:      a.IBAN,
		Balance:   centsToFloat(a.Balance),
		IsMain:    a.IsMain,
		IsClosed:  a.IsClosed,
		CreatedAt: a.CreatedAt,
	}
}

// DepositResponse is the HTTP response for a recorded deposit.
type DepositResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// FromDeposit maps a domain Deposit to a DepositResponse.
func FromDeposit(d *account.Deposit) *DepositResponse {
	return &DepositResponse{
		ID:        d.ID,
		AccountID: d.AccountID,
		Amount:    centsToFloat(d.Amount),
		CreatedAt: d.CreatedAt,
	}
}

// TransferResponse is the HTTP response for a transfer.
type TransferResponse struct {
	ID              uuid.UUID  `json:"id"`
	SourceAccountID uuid.UUID  `json:"source_account_id"`
	TargetAccountID uuid.UUID  `json:"target_account_id"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	FailureReason   *string    `json:"failure_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	SettledAt       *time.Time `json:"settled_at,omitempty"`
}

// FromTransfer maps a domain Transfer to a TransferResponse.
func FromTransfer(t *transfer.Transfer) *TransferResponse {
	return &TransferResponse{
		ID:              t.ID,
		SourceAccountID: t.SourceAccountID,
		TargetAccountID: t.TargetAccountID,
		Amount:          centsToFloat(t.Amount),
		Status:          string(t.Status),
		FailureReason:   t.FailureReason,
		CreatedAt:       t.CreatedAt,
		SettledAt:       t.SettledAt,
	}
}

// TransferInfoResponse is the HTTP response for a transfer with its account
// labels resolved.
type TransferInfoResponse struct {
	ID        uuid.UUID  `json:"id"`
	Source    string     `json:"source"`
	Target    string     `json:"target"`
	Amount    float64    `json:"amount"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// FromTransferInfo maps a transfer Info to a TransferInfoResponse.
func FromTransferInfo(i *transferApp.Info) *TransferInfoResponse {
	return &TransferInfoResponse{
		ID:        i.ID,
		Source:    i.SourceName,
		Target:    i.TargetName,
		Amount:    centsToFloat(i.AmountCents),
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
		SettledAt: i.SettledAt,
	}
}

// HistoryEntryResponse is one event in an account history feed.
type HistoryEntryResponse struct {
	Type       string    `json:"type"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status,omitempty"`
	Source     string    `json:"source"`
	Target     string    `json:"target,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BeneficiaryResponse is the HTTP response for a saved payee.
type BeneficiaryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IBAN      string    `json:"iban"`
	CreatedAt time.Time `json:"created_at"`
}

// FromBeneficiary maps a domain Beneficiary to a BeneficiaryResponse.
func FromBeneficiary(b *beneficiary.Beneficiary) *BeneficiaryResponse {
	return &BeneficiaryResponse{
		ID:        b.ID,
		Name:      b.Name,
		IBAN:      b.IBAN,
		CreatedAt: b.CreatedAt,
	}
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}
