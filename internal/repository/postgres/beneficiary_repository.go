package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cassiomorais/corebank/internal/domain/beneficiary"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BeneficiaryRepository implements beneficiary.Repository using PostgreSQL.
type BeneficiaryRepository struct {
	pool *pgxpool.Pool
}

// NewBeneficiaryRepository creates a new BeneficiaryRepository.
func NewBeneficiaryRepository(pool *pgxpool.Pool) *BeneficiaryRepository {
	return &BeneficiaryRepository{pool: pool}
}

func (r *BeneficiaryRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// Create inserts a new beneficiary.
func (r *BeneficiaryRepository) Create(ctx context.Context, b *beneficiary.Beneficiary) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO beneficiaries (id, user_id, name, iban, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		b.ID, b.UserID, b.Name, b.IBAN, b.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domainErrors.ErrDuplicateBeneficiary
		}
		return fmt.Errorf("insert beneficiary: %w", err)
	}
	return nil
}

// GetByUserAndIBAN retrieves a beneficiary by owner and IBAN.
func (r *BeneficiaryRepository) GetByUserAndIBAN(ctx context.Context, userID uuid.UUID, iban string) (*beneficiary.Beneficiary, error) {
	b := &beneficiary.Beneficiary{}
	err := r.db(ctx).QueryRow(ctx,
		`SELECT id, user_id, name, iban, created_at
		 FROM beneficiaries WHERE user_id = $1 AND iban = $2`, userID, iban,
	).Scan(&b.ID, &b.UserID, &b.Name, &b.IBAN, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrBeneficiaryNotFound
		}
		return nil, fmt.Errorf("scan beneficiary: %w", err)
	}
	return b, nil
}

// ListByUser retrieves all beneficiaries saved by a user.
func (r *BeneficiaryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*beneficiary.Beneficiary, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT id, user_id, name, iban, created_at
		 FROM beneficiaries WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries: %w", err)
	}
	defer rows.Close()

	var list []*beneficiary.Beneficiary
	for rows.Next() {
		b := &beneficiary.Beneficiary{}
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.IBAN, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan beneficiary: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}
