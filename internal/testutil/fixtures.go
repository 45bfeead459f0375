package testutil

import (
	"strings"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/domain/user"
	"github.com/google/uuid"
)

// TestIBAN builds a deterministic 34-digit IBAN from a seed.
func TestIBAN(seed string) string {
	padded := seed + strings.Repeat("0", account.IBANLength)
	digits := make([]byte, 0, account.IBANLength)
	for i := 0; len(digits) < account.IBANLength; i++ {
		c := padded[i%len(padded)]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
		} else {
			digits = append(digits, byte('0'+c%10))
		}
	}
	return string(digits)
}

func NewTestUser(name, email string) *user.User {
	u, err := user.New(name, email, "correct horse battery staple")
	if err != nil {
		panic(err)
	}
	return u
}

func NewTestAccount(userID uuid.UUID, name string, balanceCents int64) *account.Account {
	now := time.Now()
	return &account.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		IBAN:      TestIBAN(name),
		Balance:   balanceCents,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func NewTestMainAccount(userID uuid.UUID, balanceCents int64) *account.Account {
	a := NewTestAccount(userID, "main", balanceCents)
	a.IsMain = true
	return a
}

func NewTestTransfer(userID, sourceID, targetID uuid.UUID, amountCents int64) *transfer.Transfer {
	return &transfer.Transfer{
		ID:              uuid.New(),
		UserID:          userID,
		SourceAccountID: sourceID,
		TargetAccountID: targetID,
		Amount:          amountCents,
		Status:          transfer.StatusPending,
		CreatedAt:       time.Now(),
	}
}

// NewMaturedTransfer backdates the transfer so it is already past any
// reasonable maturity window.
func NewMaturedTransfer(userID, sourceID, targetID uuid.UUID, amountCents int64) *transfer.Transfer {
	t := NewTestTransfer(userID, sourceID, targetID, amountCents)
	t.CreatedAt = time.Now().Add(-time.Hour)
	return t
}
