package account

import (
	"time"

	"github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// IBANLength is the fixed length of account identifiers.
const IBANLength = 34

// Account holds a single balance for a user. Balances are stored in cents
// and never go negative. Exactly one account per user is the main account;
// it is created at registration and can never be closed.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	IBAN      string
	Balance   int64 // in cents
	IsMain    bool
	IsClosed  bool
	Version   int // version of the persisted row; repositories bump it on write
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAccount(userID uuid.UUID, name, iban string, initialBalance int64, isMain bool) (*Account, error) {
	if userID == uuid.Nil {
		return nil, errors.NewValidationError("user_id", "cannot be empty")
	}
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(iban) != IBANLength {
		return nil, errors.NewValidationError("iban", "must be 34 characters")
	}
	if initialBalance < 0 {
		return nil, errors.NewValidationError("initial_balance", "cannot be negative")
	}

	now := time.Now()
	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		IBAN:      iban,
		Balance:   initialBalance,
		IsMain:    isMain,
		IsClosed:  false,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (a *Account) Debit(amount int64) error {
	if a.IsClosed {
		return errors.ErrAccountClosed
	}
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}
	if a.Balance < amount {
		return errors.ErrInsufficientFunds
	}

	a.Balance -= amount
	a.UpdatedAt = time.Now()
	return nil
}

func (a *Account) Credit(amount int64) error {
	if a.IsClosed {
		return errors.ErrAccountClosed
	}
	if amount <= 0 {
		return errors.ErrInvalidAmount
	}

	a.Balance += amount
	a.UpdatedAt = time.Now()
	return nil
}

// Close marks the account closed. The caller is responsible for sweeping the
// balance first; a closed account always carries a zero balance.
func (a *Account) Close() error {
	if a.IsMain {
		return errors.ErrMainAccountClose
	}
	if a.IsClosed {
		return errors.ErrAccountClosed
	}
	if a.Balance != 0 {
		return errors.NewDomainError("unswept_balance", "account balance must be swept before closing", nil)
	}

	a.IsClosed = true
	a.UpdatedAt = time.Now()
	return nil
}
