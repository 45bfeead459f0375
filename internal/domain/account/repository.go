package account

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for account persistence
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, account *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByUserAndName retrieves an account by owner and per-user unique name.
	// Closed accounts are returned; callers decide whether they are visible.
	GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*Account, error)

	// GetByIBAN retrieves an account by its IBAN
	GetByIBAN(ctx context.Context, iban string) (*Account, error)

	// GetMain retrieves the user's main account
	GetMain(ctx context.Context, userID uuid.UUID) (*Account, error)

	// ListOpen retrieves the user's non-closed accounts, newest first
	ListOpen(ctx context.Context, userID uuid.UUID) ([]*Account, error)

	// Update updates an existing account with optimistic locking
	Update(ctx context.Context, account *Account) error

	// Lock locks an account row for update (SELECT FOR UPDATE)
	Lock(ctx context.Context, id uuid.UUID) (*Account, error)

	// AddDeposit appends a deposit record
	AddDeposit(ctx context.Context, d *Deposit) error

	// ListDeposits retrieves deposits credited to an account, newest first
	ListDeposits(ctx context.Context, accountID uuid.UUID) ([]*Deposit, error)
}

// Deposit is an append-only record of an external credit. Once written it is
// never mutated or deleted.
type Deposit struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	AccountID uuid.UUID
	Amount    int64 // in cents
	CreatedAt time.Time
}
