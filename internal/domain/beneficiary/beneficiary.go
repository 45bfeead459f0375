package beneficiary

import (
	"context"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// Beneficiary is a saved {name, IBAN} pair in a user's address book. It is a
// convenience reference to someone else's account and plays no part in the
// money-movement invariants.
type Beneficiary struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IBAN      string
	CreatedAt time.Time
}

func New(userID uuid.UUID, name, iban string) (*Beneficiary, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(iban) != account.IBANLength {
		return nil, errors.NewValidationError("iban", "must be 34 characters")
	}

	return &Beneficiary{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		IBAN:      iban,
		CreatedAt: time.Now(),
	}, nil
}

// Repository defines the interface for beneficiary persistence
type Repository interface {
	Create(ctx context.Context, b *Beneficiary) error
	GetByUserAndIBAN(ctx context.Context, userID uuid.UUID, iban string) (*Beneficiary, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Beneficiary, error)
}
