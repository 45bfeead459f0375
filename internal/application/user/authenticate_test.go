package user_test

import (
	"context"
	"testing"

	userApp "github.com/cassiomorais/corebank/internal/application/user"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/user"
	"github.com/cassiomorais/corebank/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	u, err := user.New("Ada", "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	userRepo.AddUser(u)

	uc := userApp.NewAuthenticateUseCase(userRepo)

	got, err := uc.Execute(context.Background(), "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	userRepo := testutil.NewMockUserRepository()
	u, err := user.New("Ada", "ada@example.com", "analytical-engine")
	require.NoError(t, err)
	userRepo.AddUser(u)

	uc := userApp.NewAuthenticateUseCase(userRepo)

	_, err = uc.Execute(context.Background(), "ada@example.com", "difference-engine")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	uc := userApp.NewAuthenticateUseCase(testutil.NewMockUserRepository())

	_, err := uc.Execute(context.Background(), "nobody@example.com", "whatever1")
	assert.ErrorIs(t, err, domainErrors.ErrUnauthorized)
}
