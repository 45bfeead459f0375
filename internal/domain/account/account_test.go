package account_test

import (
	"strings"
	"testing"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIBAN() string {
	return strings.Repeat("7", account.IBANLength)
}

func TestNewAccount_Valid(t *testing.T) {
	userID := uuid.New()
	a, err := account.NewAccount(userID, "savings", testIBAN(), 0, false)
	require.NoError(t, err)
	assert.Equal(t, userID, a.UserID)
	assert.Equal(t, "savings", a.Name)
	assert.Equal(t, int64(0), a.Balance)
	assert.False(t, a.IsMain)
	assert.False(t, a.IsClosed)
	assert.Equal(t, 1, a.Version)
}

func TestNewAccount_MainWithBonus(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 10000, true)
	require.NoError(t, err)
	assert.True(t, a.IsMain)
	assert.Equal(t, int64(10000), a.Balance)
}

func TestNewAccount_EmptyName(t *testing.T) {
	_, err := account.NewAccount(uuid.New(), "", testIBAN(), 0, false)
	assert.Error(t, err)
}

func TestNewAccount_BadIBANLength(t *testing.T) {
	_, err := account.NewAccount(uuid.New(), "savings", "12345", 0, false)
	assert.Error(t, err)
}

func TestNewAccount_NegativeBalance(t *testing.T) {
	_, err := account.NewAccount(uuid.New(), "savings", testIBAN(), -1, false)
	assert.Error(t, err)
}

func TestAccount_Debit(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 10000, true)
	require.NoError(t, err)

	require.NoError(t, a.Debit(2500))
	assert.Equal(t, int64(7500), a.Balance)
	// The version tracks persisted writes, not in-memory mutations.
	assert.Equal(t, 1, a.Version)
}

func TestAccount_Debit_InsufficientFunds(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 100, true)
	require.NoError(t, err)

	err = a.Debit(101)
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)
	assert.Equal(t, int64(100), a.Balance)
}

func TestAccount_Debit_ExactBalance(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 100, true)
	require.NoError(t, err)

	require.NoError(t, a.Debit(100))
	assert.Equal(t, int64(0), a.Balance)
}

func TestAccount_Debit_NonPositiveAmount(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 100, true)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Debit(0), errors.ErrInvalidAmount)
	assert.ErrorIs(t, a.Debit(-5), errors.ErrInvalidAmount)
}

func TestAccount_Debit_Closed(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 0, false)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Debit(10), errors.ErrAccountClosed)
}

func TestAccount_Credit(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 0, false)
	require.NoError(t, err)

	require.NoError(t, a.Credit(5000))
	assert.Equal(t, int64(5000), a.Balance)
	assert.Equal(t, 1, a.Version)
}

func TestAccount_Credit_Closed(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 0, false)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Credit(10), errors.ErrAccountClosed)
}

func TestAccount_Close(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 0, false)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	assert.True(t, a.IsClosed)
}

func TestAccount_Close_Main(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "main", testIBAN(), 0, true)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Close(), errors.ErrMainAccountClose)
}

func TestAccount_Close_AlreadyClosed(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 0, false)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	assert.ErrorIs(t, a.Close(), errors.ErrAccountClosed)
}

func TestAccount_Close_NonZeroBalance(t *testing.T) {
	a, err := account.NewAccount(uuid.New(), "savings", testIBAN(), 100, false)
	require.NoError(t, err)

	assert.Error(t, a.Close())
	assert.False(t, a.IsClosed)
}
