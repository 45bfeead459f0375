package transfer

import (
	"context"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/google/uuid"
)

// Info is a transfer enriched with account labels for display.
type Info struct {
	ID          uuid.UUID
	AmountCents int64
	SourceName  string
	TargetName  string
	Status      transfer.Status
	CreatedAt   time.Time
	SettledAt   *time.Time
}

// GetTransferInfoUseCase resolves a transfer with its account labels.
type GetTransferInfoUseCase struct {
	accountRepo  account.Repository
	transferRepo transfer.Repository
}

// NewGetTransferInfoUseCase creates a new GetTransferInfoUseCase.
func NewGetTransferInfoUseCase(accountRepo account.Repository, transferRepo transfer.Repository) *GetTransferInfoUseCase {
	return &GetTransferInfoUseCase{accountRepo: accountRepo, transferRepo: transferRepo}
}

// Execute returns transfer details for the initiating user.
func (uc *GetTransferInfoUseCase) Execute(ctx context.Context, userID, transferID uuid.UUID) (*Info, error) {
	t, err := uc.transferRepo.GetByIDForUser(ctx, transferID, userID)
	if err != nil {
		return nil, err
	}

	info := &Info{
		ID:          t.ID,
		AmountCents: t.Amount,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		SettledAt:   t.SettledAt,
	}

	if src, err := uc.accountRepo.GetByID(ctx, t.SourceAccountID); err == nil {
		info.SourceName = src.Name
	}
	if dst, err := uc.accountRepo.GetByID(ctx, t.TargetAccountID); err == nil {
		info.TargetName = dst.Name
	}
	return info, nil
}
