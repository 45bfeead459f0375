package account

import "context"

// TransactionManager defines the interface for transaction management.
// This is an application-layer port, not a domain concern.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IBANAllocator supplies collision-checked account identifiers.
type IBANAllocator interface {
	Allocate(ctx context.Context) (string, error)
}
