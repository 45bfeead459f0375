// Package history projects an account's deposits and transfers into a single
// chronological feed.
package history

import (
	"context"
	"sort"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/google/uuid"
)

const (
	EntryTypeDeposit  = "deposit"
	EntryTypeTransfer = "transfer"
)

// Entry is one event in an account's history. Source and Target carry account
// names when resolvable, the raw ID otherwise. A deposit originates at the
// account itself: it is the source of the entry, with no target and no
// status, since deposits credit immediately and never move through the
// transfer state machine.
type Entry struct {
	Type       string
	Amount     int64
	Status     string
	Source     string
	Target     string
	OccurredAt time.Time
}

// GetHistoryUseCase handles listing an account's combined event history.
type GetHistoryUseCase struct {
	accountRepo  account.Repository
	transferRepo transfer.Repository
}

func NewGetHistoryUseCase(accountRepo account.Repository, transferRepo transfer.Repository) *GetHistoryUseCase {
	return &GetHistoryUseCase{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
	}
}

// Execute returns deposits and transfers touching the account, most recent
// first. Closed accounts still expose their history.
func (uc *GetHistoryUseCase) Execute(ctx context.Context, userID, accountID uuid.UUID) ([]Entry, error) {
	acc, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acc.UserID != userID {
		return nil, domainErrors.ErrAccountNotFound
	}

	deposits, err := uc.accountRepo.ListDeposits(ctx, accountID)
	if err != nil {
		return nil, err
	}
	transfers, err := uc.transferRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	names := map[uuid.UUID]string{acc.ID: acc.Name}
	entries := make([]Entry, 0, len(deposits)+len(transfers))

	for _, d := range deposits {
		entries = append(entries, Entry{
			Type:       EntryTypeDeposit,
			Amount:     d.Amount,
			Source:     acc.Name,
			OccurredAt: d.CreatedAt,
		})
	}
	for _, t := range transfers {
		entries = append(entries, Entry{
			Type:       EntryTypeTransfer,
			Amount:     t.Amount,
			Status:     string(t.Status),
			Source:     uc.resolveName(ctx, names, t.SourceAccountID),
			Target:     uc.resolveName(ctx, names, t.TargetAccountID),
			OccurredAt: t.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	return entries, nil
}

// resolveName caches lookups so a busy counterpart account is fetched once
// per call, not once per entry.
func (uc *GetHistoryUseCase) resolveName(ctx context.Context, cache map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := cache[id]; ok {
		return name
	}

	name := id.String()
	if a, err := uc.accountRepo.GetByID(ctx, id); err == nil {
		name = a.Name
	}
	cache[id] = name
	return name
}
