package account

import (
	"context"
	"errors"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/user"
	"github.com/google/uuid"
)

// MainAccountName is the name given to the account opened at registration.
const MainAccountName = "main"

// CreateAccountUseCase orchestrates account creation.
type CreateAccountUseCase struct {
	userRepo    user.Repository
	accountRepo account.Repository
	ibans       IBANAllocator
	bonusCents  int64
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase. bonusCents is
// the opening balance seeded into main accounts at registration.
func NewCreateAccountUseCase(userRepo user.Repository, accountRepo account.Repository, ibans IBANAllocator, bonusCents int64) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		ibans:       ibans,
		bonusCents:  bonusCents,
	}
}

// Execute opens an additional account for an existing user. The account
// starts empty and is never the main account.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error) {
	if _, err := uc.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := uc.accountRepo.GetByUserAndName(ctx, userID, name)
	if err != nil && !errors.Is(err, domainErrors.ErrAccountNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainErrors.ErrDuplicateAccountName
	}

	return uc.create(ctx, userID, name, 0, false)
}

// ExecuteMain opens the user's main account. Called exactly once per user,
// at registration, with the signup bonus as the opening balance.
func (uc *CreateAccountUseCase) ExecuteMain(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	return uc.create(ctx, userID, MainAccountName, uc.bonusCents, true)
}

func (uc *CreateAccountUseCase) create(ctx context.Context, userID uuid.UUID, name string, balance int64, isMain bool) (*account.Account, error) {
	iban, err := uc.ibans.Allocate(ctx)
	if err != nil {
		return nil, err
	}

	acct, err := account.NewAccount(userID, name, iban, balance, isMain)
	if err != nil {
		return nil, err
	}
	if err := uc.accountRepo.Create(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}
