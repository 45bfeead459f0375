// Package beneficiary implements the saved-payee use cases.
package beneficiary

import (
	"context"
	"errors"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/beneficiary"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// AddBeneficiaryUseCase handles saving a payee for later transfers.
type AddBeneficiaryUseCase struct {
	beneficiaryRepo beneficiary.Repository
	accountRepo     account.Repository
}

func NewAddBeneficiaryUseCase(beneficiaryRepo beneficiary.Repository, accountRepo account.Repository) *AddBeneficiaryUseCase {
	return &AddBeneficiaryUseCase{
		beneficiaryRepo: beneficiaryRepo,
		accountRepo:     accountRepo,
	}
}

// Execute saves the IBAN as a payee for the user. The IBAN must belong to an
// existing account that is not the user's own.
func (uc *AddBeneficiaryUseCase) Execute(ctx context.Context, userID uuid.UUID, name, iban string) (*beneficiary.Beneficiary, error) {
	target, err := uc.accountRepo.GetByIBAN(ctx, iban)
	if err != nil {
		return nil, err
	}
	if target.UserID == userID {
		return nil, domainErrors.ErrOwnAccountBeneficiary
	}

	if _, err := uc.beneficiaryRepo.GetByUserAndIBAN(ctx, userID, iban); err == nil {
		return nil, domainErrors.ErrDuplicateBeneficiary
	} else if !errors.Is(err, domainErrors.ErrBeneficiaryNotFound) {
		return nil, err
	}

	b, err := beneficiary.New(userID, name, iban)
	if err != nil {
		return nil, err
	}
	if err := uc.beneficiaryRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}
