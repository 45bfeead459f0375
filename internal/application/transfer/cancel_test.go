package transfer_test

import (
	"context"
	"testing"

	transferApp "github.com/cassiomorais/corebank/internal/application/transfer"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancel(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	tr := testutil.NewTestTransfer(userID, uuid.New(), uuid.New(), 100)
	transferRepo.AddTransfer(tr)

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	cancelled, err := uc.Execute(context.Background(), userID, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, transfer.StatusCancelled, cancelled.Status)
}

func TestCancel_NotFound(t *testing.T) {
	uc := transferApp.NewCancelTransferUseCase(testutil.NewMockTransferRepository())

	_, err := uc.Execute(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, domainErrors.ErrTransferNotFound)
}

func TestCancel_OtherUsersTransfer(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	owner := uuid.New()
	tr := testutil.NewTestTransfer(owner, uuid.New(), uuid.New(), 100)
	transferRepo.AddTransfer(tr)

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	_, err := uc.Execute(context.Background(), uuid.New(), tr.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTransferNotFound)
}

func TestCancel_AlreadyCompleted(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	tr := testutil.NewTestTransfer(userID, uuid.New(), uuid.New(), 100)
	require.NoError(t, tr.MarkCompleted())
	transferRepo.AddTransfer(tr)

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	_, err := uc.Execute(context.Background(), userID, tr.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTransferSettled)
}

func TestCancel_AlreadyFailed(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	tr := testutil.NewTestTransfer(userID, uuid.New(), uuid.New(), 100)
	require.NoError(t, tr.MarkFailed("insufficient funds at maturity"))
	transferRepo.AddTransfer(tr)

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	_, err := uc.Execute(context.Background(), userID, tr.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTransferSettled)
}

func TestCancel_Twice(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	tr := testutil.NewTestTransfer(userID, uuid.New(), uuid.New(), 100)
	transferRepo.AddTransfer(tr)

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	_, err := uc.Execute(context.Background(), userID, tr.ID)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), userID, tr.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTransferCancelled)
}

// A cancel that loses the commit race against settlement reports the state
// that actually won, not a bare conflict.
func TestCancel_LosesRaceToSettlement(t *testing.T) {
	transferRepo := testutil.NewMockTransferRepository()
	userID := uuid.New()
	tr := testutil.NewTestTransfer(userID, uuid.New(), uuid.New(), 100)
	transferRepo.AddTransfer(tr)

	settled := testutil.NewTestTransfer(userID, tr.SourceAccountID, tr.TargetAccountID, 100)
	settled.ID = tr.ID
	require.NoError(t, settled.MarkCompleted())

	transferRepo.GetByIDForUserFunc = func(ctx context.Context, id, uid uuid.UUID) (*transfer.Transfer, error) {
		if transferRepo.UpdateStatusFunc == nil {
			return settled, nil
		}
		// First read sees the pending row.
		clone := *tr
		return &clone, nil
	}
	transferRepo.UpdateStatusFunc = func(ctx context.Context, t *transfer.Transfer) error {
		// Settlement committed in between; drop to the default read path.
		transferRepo.UpdateStatusFunc = nil
		return domainErrors.ErrCommitConflict
	}

	uc := transferApp.NewCancelTransferUseCase(transferRepo)

	_, err := uc.Execute(context.Background(), userID, tr.ID)
	assert.ErrorIs(t, err, domainErrors.ErrTransferSettled)
}
