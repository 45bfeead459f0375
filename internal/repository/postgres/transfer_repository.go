package postgres

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transferColumns = `id, user_id, source_account_id, target_account_id, amount, status, failure_reason, created_at, settled_at`

// TransferRepository implements transfer.Repository using PostgreSQL.
type TransferRepository struct {
	pool *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return &TransferRepository{pool: pool}
}

func (r *TransferRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *TransferRepository) scanTransfer(s scanner) (*transfer.Transfer, error) {
	t := &transfer.Transfer{}
	var (
		status    string
		amountStr string
	)
	err := s.Scan(&t.ID, &t.UserID, &t.SourceAccountID, &t.TargetAccountID, &amountStr, &status, &t.FailureReason, &t.CreatedAt, &t.SettledAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrTransferNotFound
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}

	cents, err := numericStringToCents(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse transfer amount: %w", err)
	}
	t.Amount = cents
	t.Status = transfer.Status(status)
	return t, nil
}

// Create inserts a new transfer.
func (r *TransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	amountStr := centsToNumericString(t.Amount)
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO transfers (id, user_id, source_account_id, target_account_id, amount, status, failure_reason, created_at, settled_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.SourceAccountID, t.TargetAccountID, amountStr, string(t.Status), t.FailureReason, t.CreatedAt, t.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}
	return nil
}

// GetByID retrieves a transfer by its ID.
func (r *TransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	return r.scanTransfer(r.db(ctx).QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE id = $1`, id))
}

// GetByIDForUser retrieves a transfer scoped to its initiating user.
func (r *TransferRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*transfer.Transfer, error) {
	return r.scanTransfer(r.db(ctx).QueryRow(ctx,
		`SELECT `+transferColumns+` FROM transfers WHERE id = $1 AND user_id = $2`, id, userID))
}

// ListMatured retrieves pending transfers created before the cutoff. The read
// takes no locks: each transfer is re-read and settled in its own transaction,
// and the status-guarded UpdateStatus rejects a transfer another pass already
// moved out of pending.
func (r *TransferRepository) ListMatured(ctx context.Context, cutoff time.Time) ([]*transfer.Transfer, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+transferColumns+` FROM transfers
		 WHERE status = 'pending' AND created_at <= $1
		 ORDER BY created_at ASC`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("list matured transfers: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// ListByAccount retrieves transfers where the account is source or target.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+transferColumns+` FROM transfers
		 WHERE source_account_id = $1 OR target_account_id = $1
		 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list transfers by account: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// HasPendingForAccount reports whether any pending transfer references the account.
func (r *TransferRepository) HasPendingForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM transfers
		   WHERE (source_account_id = $1 OR target_account_id = $1) AND status = 'pending'
		 )`, accountID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check pending transfers: %w", err)
	}
	return exists, nil
}

// UpdateStatus transitions the transfer out of pending. The WHERE clause
// guards on the current status so two racing operations (cancel vs settle)
// can never both win; the loser sees ErrCommitConflict.
func (r *TransferRepository) UpdateStatus(ctx context.Context, t *transfer.Transfer) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE transfers SET status = $1, failure_reason = $2, settled_at = $3
		 WHERE id = $4 AND status = 'pending'`,
		string(t.Status), t.FailureReason, t.SettledAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCommitConflict
	}
	return nil
}

func (r *TransferRepository) collect(rows pgx.Rows) ([]*transfer.Transfer, error) {
	var transfers []*transfer.Transfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}
