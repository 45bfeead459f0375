package account

import (
	"context"
	"errors"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/pkg/retry"
	"github.com/google/uuid"
)

// CloseAccountUseCase coordinates account closure. The residual balance is
// swept to the user's main account synchronously: the sweep transfer, both
// balance changes, and the closed flag commit together, so a closed account
// is observed with a zero balance from the first moment closure is visible.
type CloseAccountUseCase struct {
	accountRepo  account.Repository
	transferRepo transfer.Repository
	txManager    TransactionManager
}

// NewCloseAccountUseCase creates a new CloseAccountUseCase.
func NewCloseAccountUseCase(accountRepo account.Repository, transferRepo transfer.Repository, txManager TransactionManager) *CloseAccountUseCase {
	return &CloseAccountUseCase{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		txManager:    txManager,
	}
}

// Execute closes the named account. Returns the sweep transfer, if the
// account still had a balance to move.
func (uc *CloseAccountUseCase) Execute(ctx context.Context, userID uuid.UUID, name string) (*transfer.Transfer, error) {
	acct, err := uc.accountRepo.GetByUserAndName(ctx, userID, name)
	if err != nil {
		return nil, err
	}
	if acct.IsMain {
		return nil, domainErrors.ErrMainAccountClose
	}
	if acct.IsClosed {
		return nil, domainErrors.ErrAccountClosed
	}

	pending, err := uc.transferRepo.HasPendingForAccount(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domainErrors.ErrPendingTransfers
	}

	mainAcct, err := uc.accountRepo.GetMain(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A lost optimistic-lock race gets one more attempt; the transaction body
	// re-locks and re-validates, so the retry runs against fresh state.
	isConflict := func(err error) bool { return errors.Is(err, domainErrors.ErrCommitConflict) }

	var sweep *transfer.Transfer
	err = retry.DoIf(ctx, retry.ConflictConfig(), isConflict, func() error {
		sweep = nil
		return uc.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			// Lock both rows in deterministic order to prevent deadlocks, then
			// re-validate inside the commit boundary; the checks above are
			// advisory and must still hold at commit time.
			locked := make(map[uuid.UUID]*account.Account, 2)
			for _, id := range sortIDs(acct.ID, mainAcct.ID) {
				a, err := uc.accountRepo.Lock(txCtx, id)
				if err != nil {
					return err
				}
				locked[id] = a
			}
			src, main := locked[acct.ID], locked[mainAcct.ID]

			if src.IsClosed {
				return domainErrors.ErrAccountClosed
			}

			stillPending, err := uc.transferRepo.HasPendingForAccount(txCtx, src.ID)
			if err != nil {
				return err
			}
			if stillPending {
				return domainErrors.ErrPendingTransfers
			}

			if src.Balance > 0 {
				sweep, err = transfer.New(userID, src.ID, main.ID, src.Balance)
				if err != nil {
					return err
				}
				if err := sweep.MarkCompleted(); err != nil {
					return err
				}

				if err := src.Debit(sweep.Amount); err != nil {
					return err
				}
				if err := main.Credit(sweep.Amount); err != nil {
					return err
				}
				if err := uc.accountRepo.Update(txCtx, main); err != nil {
					return err
				}
				if err := uc.transferRepo.Create(txCtx, sweep); err != nil {
					return err
				}
			}

			if err := src.Close(); err != nil {
				return err
			}
			return uc.accountRepo.Update(txCtx, src)
		})
	})
	if err != nil {
		return nil, err
	}
	return sweep, nil
}

// sortIDs returns two UUIDs in deterministic order (by string comparison).
func sortIDs(a, b uuid.UUID) [2]uuid.UUID {
	if a.String() < b.String() {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}
