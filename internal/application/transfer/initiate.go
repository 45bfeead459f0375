package transfer

import (
	"context"
	"errors"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/google/uuid"
)

// InitiateRequest holds the input for initiating a transfer.
type InitiateRequest struct {
	UserID      uuid.UUID
	SourceName  string
	TargetIBAN  string
	AmountCents int64
}

// InitiateTransferUseCase validates and records transfer intents. Balances
// are untouched here: the transfer is written as pending and its balance
// effect is deferred to the settlement pass, which models the clearing delay
// and lets cancellation reverse a transfer with no balance side effects.
type InitiateTransferUseCase struct {
	accountRepo  account.Repository
	transferRepo transfer.Repository
}

// NewInitiateTransferUseCase creates a new InitiateTransferUseCase.
func NewInitiateTransferUseCase(accountRepo account.Repository, transferRepo transfer.Repository) *InitiateTransferUseCase {
	return &InitiateTransferUseCase{accountRepo: accountRepo, transferRepo: transferRepo}
}

// Execute validates the request and records a pending transfer. The checks
// run in a fixed order and the first failure is the one reported.
func (uc *InitiateTransferUseCase) Execute(ctx context.Context, req InitiateRequest) (*transfer.Transfer, error) {
	src, err := uc.accountRepo.GetByUserAndName(ctx, req.UserID, req.SourceName)
	if err != nil {
		return nil, err
	}

	// 1. Transfers to the originating account are meaningless.
	if req.TargetIBAN == src.IBAN {
		return nil, domainErrors.ErrSameAccount
	}

	// 2. Amount must be positive.
	if req.AmountCents <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	// 3. Target must exist.
	target, err := uc.accountRepo.GetByIBAN(ctx, req.TargetIBAN)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAccountNotFound) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}

	// 4. Both ends must be open.
	if src.IsClosed || target.IsClosed {
		return nil, domainErrors.ErrAccountClosed
	}

	// 5. The source must cover the amount at initiation time. Settlement
	// re-checks, since the balance may move before the transfer matures.
	if req.AmountCents > src.Balance {
		return nil, domainErrors.ErrInsufficientFunds
	}

	t, err := transfer.New(req.UserID, src.ID, target.ID, req.AmountCents)
	if err != nil {
		return nil, err
	}
	if err := uc.transferRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
