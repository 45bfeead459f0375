package user_test

import (
	"context"
	"strings"
	"testing"

	accountApp "github.com/cassiomorais/corebank/internal/application/account"
	userApp "github.com/cassiomorais/corebank/internal/application/user"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seqAllocator struct {
	next int
}

func (s *seqAllocator) Allocate(ctx context.Context) (string, error) {
	s.next++
	return testutil.TestIBAN(strings.Repeat("9", s.next)), nil
}

func newRegisterUseCase(userRepo *testutil.MockUserRepository, accountRepo *testutil.MockAccountRepository) *userApp.RegisterUseCase {
	createAccount := accountApp.NewCreateAccountUseCase(userRepo, accountRepo, &seqAllocator{}, 10000)
	return userApp.NewRegisterUseCase(userRepo, createAccount, &testutil.MockTransactionManager{})
}

func TestRegister(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	uc := newRegisterUseCase(userRepo, accountRepo)

	result, err := uc.Execute(context.Background(), userApp.RegisterRequest{
		Name:     "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "analytical-engine",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", result.User.Email)

	require.NotNil(t, result.MainAccount)
	assert.True(t, result.MainAccount.IsMain)
	assert.Equal(t, accountApp.MainAccountName, result.MainAccount.Name)
	assert.Equal(t, int64(10000), result.MainAccount.Balance)
	assert.Equal(t, result.User.ID, result.MainAccount.UserID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	accountRepo := testutil.NewMockAccountRepository()
	uc := newRegisterUseCase(userRepo, accountRepo)

	req := userApp.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "analytical-engine"}
	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateEmail)
}

func TestRegister_InvalidInput(t *testing.T) {
	uc := newRegisterUseCase(testutil.NewMockUserRepository(), testutil.NewMockAccountRepository())

	_, err := uc.Execute(context.Background(), userApp.RegisterRequest{Name: "", Email: "ada@example.com", Password: "analytical-engine"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), userApp.RegisterRequest{Name: "Ada", Email: "nope", Password: "analytical-engine"})
	assert.Error(t, err)

	_, err = uc.Execute(context.Background(), userApp.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "short"})
	assert.Error(t, err)
}
