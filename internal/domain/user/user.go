package user

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/mail"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// User is a registered customer. Immutable after registration except for
// credential rotation, which is out of scope here.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

func New(name, email, password string) (*User, error) {
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, errors.NewValidationError("email", "must be a valid address")
	}
	if len(password) < 8 {
		return nil, errors.NewValidationError("password", "must be at least 8 characters")
	}

	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: HashPassword(password),
		CreatedAt:    time.Now(),
	}, nil
}

// HashPassword derives the stored credential hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return HashPassword(password) == u.PasswordHash
}

// Repository defines the interface for user persistence
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}
