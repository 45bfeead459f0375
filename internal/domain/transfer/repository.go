package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for transfer persistence
type Repository interface {
	// Create inserts a new transfer
	Create(ctx context.Context, t *Transfer) error

	// GetByID retrieves a transfer by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Transfer, error)

	// GetByIDForUser retrieves a transfer by ID scoped to its initiating user
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*Transfer, error)

	// ListMatured retrieves pending transfers created before the cutoff. The
	// listing is a snapshot, not a claim: callers must re-validate each
	// transfer before settling it.
	ListMatured(ctx context.Context, cutoff time.Time) ([]*Transfer, error)

	// ListByAccount retrieves transfers where the account is source or target,
	// newest first.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Transfer, error)

	// HasPendingForAccount reports whether any pending transfer references
	// the account as source or target.
	HasPendingForAccount(ctx context.Context, accountID uuid.UUID) (bool, error)

	// UpdateStatus transitions the transfer out of pending with a
	// compare-and-commit on the current status. Returns ErrCommitConflict if
	// the transfer is no longer pending.
	UpdateStatus(ctx context.Context, t *Transfer) error
}
