// Package iban allocates fixed-length account identifiers. Generation is
// probabilistic; callers must verify uniqueness against the store and retry
// on collision.
package iban

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
)

const digits = "0123456789"

// Generator produces candidate IBANs.
type Generator interface {
	Generate() (string, error)
}

// RandomGenerator draws 34 decimal digits from crypto/rand.
type RandomGenerator struct{}

func NewGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

func (g *RandomGenerator) Generate() (string, error) {
	buf := make([]byte, account.IBANLength)
	max := big.NewInt(int64(len(digits)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate iban: %w", err)
		}
		buf[i] = digits[n.Int64()]
	}
	return string(buf), nil
}

// Allocator combines a generator with a uniqueness check against the store.
type Allocator struct {
	gen      Generator
	accounts account.Repository
}

func NewAllocator(gen Generator, accounts account.Repository) *Allocator {
	return &Allocator{gen: gen, accounts: accounts}
}

// maxAttempts bounds the collision retry loop. With 10^34 candidates a single
// retry is already vanishingly unlikely; the bound guards against a broken
// generator, not against expected collisions.
const maxAttempts = 10

// Allocate returns an IBAN that does not exist in the store at the time of
// the check. The final uniqueness guarantee comes from the store's unique
// constraint on insert.
func (a *Allocator) Allocate(ctx context.Context) (string, error) {
	for i := 0; i < maxAttempts; i++ {
		candidate, err := a.gen.Generate()
		if err != nil {
			return "", err
		}
		existing, err := a.accounts.GetByIBAN(ctx, candidate)
		switch {
		case err == nil && existing != nil:
			continue // collision, try again
		case err != nil && !errors.Is(err, domainErrors.ErrAccountNotFound):
			return "", err
		default:
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to allocate unique iban after %d attempts", maxAttempts)
}
