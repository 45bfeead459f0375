package account

import (
	"context"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// DepositUseCase credits an account from an external source and records the
// deposit as an append-only fact.
type DepositUseCase struct {
	accountRepo account.Repository
	txManager   TransactionManager
}

// NewDepositUseCase creates a new DepositUseCase.
func NewDepositUseCase(accountRepo account.Repository, txManager TransactionManager) *DepositUseCase {
	return &DepositUseCase{accountRepo: accountRepo, txManager: txManager}
}

// Execute deposits amountCents into the named account. The balance credit and
// the deposit record commit together or not at all.
func (uc *DepositUseCase) Execute(ctx context.Context, userID uuid.UUID, name string, amountCents int64) (*account.Deposit, error) {
	acct, err := uc.accountRepo.GetByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if acct.IsClosed {
		return nil, domainErrors.ErrAccountClosed
	}
	if amountCents <= 0 {
		return nil, domainErrors.ErrInvalidAmount
	}

	deposit := &account.Deposit{
		ID:        uuid.New(),
		UserID:    userID,
		AccountID: acct.ID,
		Amount:    amountCents,
		CreatedAt: time.Now(),
	}

	err = uc.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.accountRepo.Lock(txCtx, acct.ID)
		if err != nil {
			return err
		}
		if err := locked.Credit(amountCents); err != nil {
			return err
		}
		if err := uc.accountRepo.Update(txCtx, locked); err != nil {
			return err
		}
		return uc.accountRepo.AddDeposit(txCtx, deposit)
	})
	if err != nil {
		return nil, err
	}
	return deposit, nil
}

// History returns deposits credited to the named account, newest first.
func (uc *DepositUseCase) History(ctx context.Context, userID uuid.UUID, name string) ([]*account.Deposit, error) {
	acct, err := uc.accountRepo.GetByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	return uc.accountRepo.ListDeposits(ctx, acct.ID)
}
