package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const accountColumns = `id, user_id, name, iban, balance, is_main, is_closed, version, created_at, updated_at`

// AccountRepository implements account.Repository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// scanAccount scans an account from any source implementing the scanner interface.
func (r *AccountRepository) scanAccount(s scanner) (*account.Account, error) {
	a := &account.Account{}
	var balanceStr string
	err := s.Scan(&a.ID, &a.UserID, &a.Name, &a.IBAN, &balanceStr, &a.IsMain, &a.IsClosed, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	cents, err := numericStringToCents(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}
	a.Balance = cents
	return a, nil
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	balanceStr := centsToNumericString(a.Balance)
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO accounts (id, user_id, name, iban, balance, is_main, is_closed, version, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.UserID, a.Name, a.IBAN, balanceStr, a.IsMain, a.IsClosed, a.Version, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if pgErr.ConstraintName == "accounts_iban_key" {
				return domainErrors.ErrCommitConflict
			}
			return domainErrors.ErrDuplicateAccountName
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetByUserAndName retrieves an account by owner and name. Closed accounts
// are returned; visibility is the caller's decision.
func (r *AccountRepository) GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND name = $2`, userID, name))
}

// GetByIBAN retrieves an account by IBAN.
func (r *AccountRepository) GetByIBAN(ctx context.Context, iban string) (*account.Account, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE iban = $1`, iban))
}

// GetMain retrieves the user's main account.
func (r *AccountRepository) GetMain(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE user_id = $1 AND is_main`, userID))
}

// ListOpen retrieves the user's non-closed accounts, newest first.
func (r *AccountRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+accountColumns+` FROM accounts
		 WHERE user_id = $1 AND NOT is_closed
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := r.scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update writes the account back with optimistic locking. The guard is the
// version loaded with the entity: the row moves to version+1 only if nobody
// committed a write since the load, so any number of in-memory mutations
// still cost exactly one version step.
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	balanceStr := centsToNumericString(a.Balance)
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE accounts SET balance = $1, is_closed = $2, version = version + 1, updated_at = $3
		 WHERE id = $4 AND version = $5`,
		balanceStr, a.IsClosed, a.UpdatedAt, a.ID, a.Version,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrCommitConflict
	}
	a.Version++
	return nil
}

// Lock acquires a row-level lock on the account (SELECT FOR UPDATE).
func (r *AccountRepository) Lock(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.scanAccount(r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
}

// AddDeposit appends a deposit record.
func (r *AccountRepository) AddDeposit(ctx context.Context, d *account.Deposit) error {
	amountStr := centsToNumericString(d.Amount)
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO deposits (id, user_id, account_id, amount, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.UserID, d.AccountID, amountStr, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// ListDeposits retrieves deposits credited to an account, newest first.
func (r *AccountRepository) ListDeposits(ctx context.Context, accountID uuid.UUID) ([]*account.Deposit, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT id, user_id, account_id, amount, created_at
		 FROM deposits WHERE account_id = $1 ORDER BY created_at DESC`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()

	var deposits []*account.Deposit
	for rows.Next() {
		d := &account.Deposit{}
		var amountStr string
		if err := rows.Scan(&d.ID, &d.UserID, &d.AccountID, &amountStr, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		cents, err := numericStringToCents(amountStr)
		if err != nil {
			return nil, fmt.Errorf("parse deposit amount: %w", err)
		}
		d.Amount = cents
		deposits = append(deposits, d)
	}
	return deposits, rows.Err()
}
