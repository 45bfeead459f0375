package transfer

import (
	"context"
	"errors"

	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/google/uuid"
)

// CancelTransferUseCase cancels a pending transfer. Cancellation only changes
// future settlement eligibility; it never races an in-flight commit, and the
// status-guarded update guarantees that a concurrent settlement and a cancel
// produce exactly one terminal state.
type CancelTransferUseCase struct {
	transferRepo transfer.Repository
}

// NewCancelTransferUseCase creates a new CancelTransferUseCase.
func NewCancelTransferUseCase(transferRepo transfer.Repository) *CancelTransferUseCase {
	return &CancelTransferUseCase{transferRepo: transferRepo}
}

// Execute cancels the transfer if it is still pending.
func (uc *CancelTransferUseCase) Execute(ctx context.Context, userID, transferID uuid.UUID) (*transfer.Transfer, error) {
	t, err := uc.transferRepo.GetByIDForUser(ctx, transferID, userID)
	if err != nil {
		return nil, err
	}

	if err := terminalStateError(t); err != nil {
		return nil, err
	}

	if err := t.MarkCancelled(); err != nil {
		return nil, err
	}
	if err := uc.transferRepo.UpdateStatus(ctx, t); err != nil {
		if errors.Is(err, domainErrors.ErrCommitConflict) {
			// Lost the race against settlement (or another cancel).
			// Re-read and report the actual terminal state.
			current, rerr := uc.transferRepo.GetByIDForUser(ctx, transferID, userID)
			if rerr != nil {
				return nil, rerr
			}
			if terr := terminalStateError(current); terr != nil {
				return nil, terr
			}
		}
		return nil, err
	}
	return t, nil
}

// terminalStateError maps an already-terminal transfer to the error the
// caller should see: settled outcomes report AlreadySettled, a repeated
// cancel reports AlreadyCancelled.
func terminalStateError(t *transfer.Transfer) error {
	switch t.Status {
	case transfer.StatusCompleted, transfer.StatusFailed:
		return domainErrors.ErrTransferSettled
	case transfer.StatusCancelled:
		return domainErrors.ErrTransferCancelled
	default:
		return nil
	}
}
