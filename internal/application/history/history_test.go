package history_test

import (
	"context"
	"testing"
	"time"

	historyApp "github.com/cassiomorais/corebank/internal/application/history"
	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_MergesDepositsAndTransfers(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	other := uuid.New()
	main := testutil.NewTestMainAccount(userID, 10000)
	checking := testutil.NewTestAccount(other, "checking", 0)
	accountRepo.AddAccount(main)
	accountRepo.AddAccount(checking)

	now := time.Now()
	require.NoError(t, accountRepo.AddDeposit(context.Background(), &account.Deposit{
		ID: uuid.New(), UserID: userID, AccountID: main.ID, Amount: 10000, CreatedAt: now.Add(-3 * time.Hour),
	}))
	tr := testutil.NewTestTransfer(userID, main.ID, checking.ID, 2500)
	tr.CreatedAt = now.Add(-2 * time.Hour)
	transferRepo.AddTransfer(tr)
	require.NoError(t, accountRepo.AddDeposit(context.Background(), &account.Deposit{
		ID: uuid.New(), UserID: userID, AccountID: main.ID, Amount: 500, CreatedAt: now.Add(-time.Hour),
	}))

	uc := historyApp.NewGetHistoryUseCase(accountRepo, transferRepo)

	entries, err := uc.Execute(context.Background(), userID, main.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first.
	assert.Equal(t, historyApp.EntryTypeDeposit, entries[0].Type)
	assert.Equal(t, int64(500), entries[0].Amount)
	assert.Equal(t, historyApp.EntryTypeTransfer, entries[1].Type)
	assert.Equal(t, int64(2500), entries[1].Amount)
	assert.Equal(t, "main", entries[1].Source)
	assert.Equal(t, "checking", entries[1].Target)
	assert.Equal(t, historyApp.EntryTypeDeposit, entries[2].Type)
	assert.Equal(t, int64(10000), entries[2].Amount)
}

// A deposit shows the credited account as the entry's source; it has no
// counterpart and no state machine, so target and status stay empty.
func TestHistory_DepositEntryShape(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	userID := uuid.New()
	main := testutil.NewTestMainAccount(userID, 10000)
	accountRepo.AddAccount(main)

	require.NoError(t, accountRepo.AddDeposit(context.Background(), &account.Deposit{
		ID: uuid.New(), UserID: userID, AccountID: main.ID, Amount: 10000, CreatedAt: time.Now(),
	}))

	uc := historyApp.NewGetHistoryUseCase(accountRepo, testutil.NewMockTransferRepository())

	entries, err := uc.Execute(context.Background(), userID, main.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, historyApp.EntryTypeDeposit, entries[0].Type)
	assert.Equal(t, "main", entries[0].Source)
	assert.Empty(t, entries[0].Target)
	assert.Empty(t, entries[0].Status)
}

func TestHistory_IncludesInboundTransfers(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	other := uuid.New()
	main := testutil.NewTestMainAccount(userID, 0)
	sender := testutil.NewTestAccount(other, "checking", 5000)
	accountRepo.AddAccount(main)
	accountRepo.AddAccount(sender)

	transferRepo.AddTransfer(testutil.NewTestTransfer(other, sender.ID, main.ID, 1000))

	uc := historyApp.NewGetHistoryUseCase(accountRepo, transferRepo)

	entries, err := uc.Execute(context.Background(), userID, main.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "checking", entries[0].Source)
	assert.Equal(t, "main", entries[0].Target)
}

func TestHistory_UnknownCounterpartFallsBackToID(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	main := testutil.NewTestMainAccount(userID, 0)
	accountRepo.AddAccount(main)

	ghost := uuid.New()
	transferRepo.AddTransfer(testutil.NewTestTransfer(userID, main.ID, ghost, 1000))

	uc := historyApp.NewGetHistoryUseCase(accountRepo, transferRepo)

	entries, err := uc.Execute(context.Background(), userID, main.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ghost.String(), entries[0].Target)
}

func TestHistory_OtherUsersAccount(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	owner := uuid.New()
	acct := testutil.NewTestMainAccount(owner, 0)
	accountRepo.AddAccount(acct)

	uc := historyApp.NewGetHistoryUseCase(accountRepo, testutil.NewMockTransferRepository())

	_, err := uc.Execute(context.Background(), uuid.New(), acct.ID)
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)
}
