package account_test

import (
	"context"
	"strings"
	"testing"

	accountApp "github.com/cassiomorais/corebank/internal/application/account"
	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAllocator struct {
	next int
}

func (s *stubAllocator) Allocate(ctx context.Context) (string, error) {
	s.next++
	iban := testutil.TestIBAN(strings.Repeat("1", s.next))
	return iban, nil
}

func TestCreateAccount(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	u := testutil.NewTestUser("Ada", "ada@example.com")
	userRepo.AddUser(u)

	uc := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, &stubAllocator{}, 10000)

	acct, err := uc.Execute(context.Background(), u.ID, "savings")
	require.NoError(t, err)
	assert.Equal(t, "savings", acct.Name)
	assert.Equal(t, int64(0), acct.Balance)
	assert.False(t, acct.IsMain)
	assert.Len(t, acct.IBAN, account.IBANLength)
}

func TestCreateAccount_UnknownUser(t *testing.T) {
	uc := accountApp.NewCreateAccountUseCase(testutil.NewMockUserRepository(), testutil.NewMockAccountRepository(), &stubAllocator{}, 10000)

	_, err := uc.Execute(context.Background(), uuid.New(), "savings")
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestCreateAccount_DuplicateName(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	u := testutil.NewTestUser("Ada", "ada@example.com")
	userRepo.AddUser(u)

	uc := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, &stubAllocator{}, 10000)

	_, err := uc.Execute(context.Background(), u.ID, "savings")
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), u.ID, "savings")
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateAccountName)
}

func TestCreateAccount_SameNameDifferentUsers(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	ada := testutil.NewTestUser("Ada", "ada@example.com")
	bob := testutil.NewTestUser("Bob", "bob@example.com")
	userRepo.AddUser(ada)
	userRepo.AddUser(bob)

	uc := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, &stubAllocator{}, 10000)

	_, err := uc.Execute(context.Background(), ada.ID, "savings")
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), bob.ID, "savings")
	assert.NoError(t, err)
}

func TestCreateAccount_Main(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	u := testutil.NewTestUser("Ada", "ada@example.com")
	userRepo.AddUser(u)

	uc := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, &stubAllocator{}, 10000)

	acct, err := uc.ExecuteMain(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, acct.IsMain)
	assert.Equal(t, accountApp.MainAccountName, acct.Name)
	assert.Equal(t, int64(10000), acct.Balance)
}
