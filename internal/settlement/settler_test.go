package settlement_test

import (
	"context"
	"io"
	"testing"
	"time"

	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/infrastructure/observability"
	"github.com/cassiomorais/corebank/internal/settlement"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettler(t *testing.T, accountRepo *testutil.MockAccountRepository, transferRepo *testutil.MockTransferRepository) *settlement.Settler {
	t.Helper()
	metrics := observability.NewMetrics("test", prometheus.NewRegistry())
	logger := zerolog.New(io.Discard)
	return settlement.NewSettler(accountRepo, transferRepo, &testutil.MockTransactionManager{}, 10*time.Second, metrics, logger)
}

func TestRunTick_SettlesMaturedTransfer(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	other := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(other, "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	tr := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 5000)
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	settled, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCompleted, settled.Status)
	assert.NotNil(t, settled.SettledAt)

	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	dstAfter, _ := accountRepo.GetByID(context.Background(), dst.ID)
	assert.Equal(t, int64(5000), srcAfter.Balance)
	assert.Equal(t, int64(5000), dstAfter.Balance)
}

func TestRunTick_LeavesYoungTransferAlone(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	tr := testutil.NewTestTransfer(userID, src.ID, dst.ID, 5000)
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	after, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, after.Status)

	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	assert.Equal(t, int64(10000), srcAfter.Balance)
}

func TestRunTick_InsufficientFundsAtMaturityFails(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 100)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	tr := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 5000)
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	failed, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusFailed, failed.Status)
	require.NotNil(t, failed.FailureReason)
	assert.Equal(t, "insufficient funds at maturity", *failed.FailureReason)

	// No partial moves.
	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	dstAfter, _ := accountRepo.GetByID(context.Background(), dst.ID)
	assert.Equal(t, int64(100), srcAfter.Balance)
	assert.Equal(t, int64(0), dstAfter.Balance)
}

// The listing is an unlocked snapshot; a transfer that is not actually past
// the maturity window at re-read time must be left alone.
func TestRunTick_StaleSnapshotEntryIsSkipped(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	young := testutil.NewTestTransfer(userID, src.ID, dst.ID, 5000)
	transferRepo.AddTransfer(young)
	transferRepo.ListMaturedFunc = func(ctx context.Context, cutoff time.Time) ([]*transfer.Transfer, error) {
		return []*transfer.Transfer{young}, nil
	}

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	after, err := transferRepo.GetByID(context.Background(), young.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusPending, after.Status)

	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	assert.Equal(t, int64(10000), srcAfter.Balance)
}

func TestRunTick_CancelledTransferNeverSettles(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	tr := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 5000)
	require.NoError(t, tr.MarkCancelled())
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	after, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCancelled, after.Status)

	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	assert.Equal(t, int64(10000), srcAfter.Balance)
}

func TestRunTick_ClosedAccountFailsTransfer(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	dst.IsClosed = true
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	tr := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 5000)
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	failed, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusFailed, failed.Status)
	require.NotNil(t, failed.FailureReason)
	assert.Equal(t, "account closed before settlement", *failed.FailureReason)
}

func TestRunTick_MissingAccountFailsTransfer(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	accountRepo.AddAccount(src)

	tr := testutil.NewMaturedTransfer(userID, src.ID, uuid.New(), 5000)
	transferRepo.AddTransfer(tr)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	failed, err := transferRepo.GetByID(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusFailed, failed.Status)
}

// First-come-first-served: two matured transfers against the same balance
// settle in creation order, and the one the balance no longer covers fails.
func TestRunTick_SequentialDrainFailsSecond(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 100)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	first := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 100)
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	second := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 100)
	transferRepo.AddTransfer(first)
	transferRepo.AddTransfer(second)

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	firstAfter, _ := transferRepo.GetByID(context.Background(), first.ID)
	secondAfter, _ := transferRepo.GetByID(context.Background(), second.ID)
	assert.Equal(t, transfer.StatusCompleted, firstAfter.Status)
	assert.Equal(t, transfer.StatusFailed, secondAfter.Status)

	srcAfter, _ := accountRepo.GetByID(context.Background(), src.ID)
	dstAfter, _ := accountRepo.GetByID(context.Background(), dst.ID)
	assert.Equal(t, int64(0), srcAfter.Balance)
	assert.Equal(t, int64(100), dstAfter.Balance)
}

// One transfer's failure must not abort the rest of the pass.
func TestRunTick_IsolatesPerTransferErrors(t *testing.T) {
	accountRepo := testutil.NewMockAccountRepository()
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	src := testutil.NewTestMainAccount(userID, 10000)
	dst := testutil.NewTestAccount(uuid.New(), "checking", 0)
	accountRepo.AddAccount(src)
	accountRepo.AddAccount(dst)

	broken := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 100)
	broken.CreatedAt = time.Now().Add(-2 * time.Hour)
	healthy := testutil.NewMaturedTransfer(userID, src.ID, dst.ID, 200)
	transferRepo.AddTransfer(broken)
	transferRepo.AddTransfer(healthy)

	transferRepo.UpdateStatusFunc = func(ctx context.Context, tr *transfer.Transfer) error {
		if tr.ID == broken.ID {
			return domainErrors.ErrCommitConflict
		}
		transferRepo.AddTransfer(tr)
		return nil
	}

	s := newSettler(t, accountRepo, transferRepo)
	require.NoError(t, s.RunTick(context.Background()))

	healthyAfter, err := transferRepo.GetByID(context.Background(), healthy.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCompleted, healthyAfter.Status)
}
