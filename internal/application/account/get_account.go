package account

import (
	"context"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// GetAccountUseCase orchestrates account lookups for the public surface.
type GetAccountUseCase struct {
	accountRepo account.Repository
}

// NewGetAccountUseCase creates a new GetAccountUseCase.
func NewGetAccountUseCase(accountRepo account.Repository) *GetAccountUseCase {
	return &GetAccountUseCase{accountRepo: accountRepo}
}

// Execute returns the account with the given name. Closed accounts are hidden
// from the public surface and reported as closed.
func (uc *GetAccountUseCase) Execute(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error) {
	acct, err := uc.accountRepo.GetByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if acct.IsClosed {
		return nil, domainErrors.ErrAccountClosed
	}
	return acct, nil
}

// ExecuteAny returns the account with the given name, closed or not. History
// views use it so a closed account's past stays readable.
func (uc *GetAccountUseCase) ExecuteAny(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error) {
	return uc.accountRepo.GetByUserAndName(ctx, userID, name)
}

// List returns the user's open accounts, newest first.
func (uc *GetAccountUseCase) List(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	return uc.accountRepo.ListOpen(ctx, userID)
}
