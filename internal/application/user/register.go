// Package user implements registration and authentication use cases.
package user

import (
	"context"

	appAccount "github.com/cassiomorais/corebank/internal/application/account"
	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/user"
)

// TransactionManager defines the interface for transaction management.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterRequest carries the signup input.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
}

// RegisterResult is the newly created user together with their main account.
type RegisterResult struct {
	User        *user.User
	MainAccount *account.Account
}

// RegisterUseCase handles user signup. A user and their main account are
// created in the same commit; a user never exists without a main account.
type RegisterUseCase struct {
	userRepo      user.Repository
	createAccount *appAccount.CreateAccountUseCase
	txManager     TransactionManager
}

func NewRegisterUseCase(userRepo user.Repository, createAccount *appAccount.CreateAccountUseCase, txManager TransactionManager) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:      userRepo,
		createAccount: createAccount,
		txManager:     txManager,
	}
}

func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	u, err := user.New(req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	var result RegisterResult
	err = uc.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		main, err := uc.createAccount.ExecuteMain(txCtx, u.ID)
		if err != nil {
			return err
		}
		result = RegisterResult{User: u, MainAccount: main}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
