package user

import (
	"context"
	"errors"

	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/user"
)

// AuthenticateUseCase handles credential verification at login.
type AuthenticateUseCase struct {
	userRepo user.Repository
}

func NewAuthenticateUseCase(userRepo user.Repository) *AuthenticateUseCase {
	return &AuthenticateUseCase{userRepo: userRepo}
}

// Execute returns the user when the email and password match. Unknown emails
// and wrong passwords are indistinguishable to the caller.
func (uc *AuthenticateUseCase) Execute(ctx context.Context, email, password string) (*user.User, error) {
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUserNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}

	if !u.CheckPassword(password) {
		return nil, domainErrors.ErrUnauthorized
	}
	return u, nil
}
