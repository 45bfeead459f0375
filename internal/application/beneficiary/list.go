package beneficiary

import (
	"context"

	"github.com/cassiomorais/corebank/internal/domain/beneficiary"
	"github.com/google/uuid"
)

// ListBeneficiariesUseCase handles listing a user's saved payees.
type ListBeneficiariesUseCase struct {
	beneficiaryRepo beneficiary.Repository
}

func NewListBeneficiariesUseCase(beneficiaryRepo beneficiary.Repository) *ListBeneficiariesUseCase {
	return &ListBeneficiariesUseCase{beneficiaryRepo: beneficiaryRepo}
}

func (uc *ListBeneficiariesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*beneficiary.Beneficiary, error) {
	return uc.beneficiaryRepo.ListByUser(ctx, userID)
}
