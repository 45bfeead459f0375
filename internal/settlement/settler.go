// Package settlement reconciles pending transfers: once a transfer has aged
// past the maturity window it is settled (balances moved, marked completed)
// or failed (insufficient funds or a missing/closed account at maturity).
// A transfer is never completed without its balance effect.
package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/infrastructure/observability"
	"github.com/cassiomorais/corebank/pkg/retry"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TransactionManager defines the interface for transaction management.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Settler runs the settlement pass over matured pending transfers.
type Settler struct {
	accountRepo  account.Repository
	transferRepo transfer.Repository
	txManager    TransactionManager
	window       time.Duration
	metrics      *observability.Metrics
	logger       zerolog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewSettler creates a new Settler. window is the maturity window: pending
// transfers younger than it are left alone.
func NewSettler(
	accountRepo account.Repository,
	transferRepo transfer.Repository,
	txManager TransactionManager,
	window time.Duration,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *Settler {
	return &Settler{
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		txManager:    txManager,
		window:       window,
		metrics:      metrics,
		logger:       logger,
		now:          time.Now,
	}
}

// RunTick performs one settlement pass. Each matured transfer settles in its
// own commit: one transfer's failure never aborts the rest of the pass.
func (s *Settler) RunTick(ctx context.Context) error {
	start := s.now()
	cutoff := start.Add(-s.window)

	matured, err := s.transferRepo.ListMatured(ctx, cutoff)
	if err != nil {
		s.metrics.SettlementTicks.WithLabelValues("error").Inc()
		return err
	}

	for _, t := range matured {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.settleOne(ctx, t.ID); err != nil {
			s.logger.Error().Err(err).Str("transfer_id", t.ID.String()).Msg("Failed to settle transfer")
		}
	}

	s.metrics.SettlementTicks.WithLabelValues("ok").Inc()
	s.metrics.SettlementTickDuration.Observe(s.now().Sub(start).Seconds())
	return nil
}

// settleOne settles a single transfer in its own transaction. Commit
// conflicts are retried once; the transfer state is re-validated on retry.
func (s *Settler) settleOne(ctx context.Context, transferID uuid.UUID) error {
	isConflict := func(err error) bool { return errors.Is(err, domainErrors.ErrCommitConflict) }
	return retry.DoIf(ctx, retry.ConflictConfig(), isConflict, func() error {
		return s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
			// Re-read: the transfer may have been cancelled (or settled by a
			// concurrent pass) since it was listed, and must still be a
			// matured pending transfer here.
			t, err := s.transferRepo.GetByID(txCtx, transferID)
			if err != nil {
				return err
			}
			if !t.MaturedBy(s.now(), s.window) {
				return nil
			}

			src, dst, err := s.lockAccounts(txCtx, t.SourceAccountID, t.TargetAccountID)
			if err != nil {
				if errors.Is(err, domainErrors.ErrAccountNotFound) {
					return s.fail(txCtx, t, "account no longer exists")
				}
				return err
			}
			if src.IsClosed || dst.IsClosed {
				return s.fail(txCtx, t, "account closed before settlement")
			}
			if src.Balance < t.Amount {
				return s.fail(txCtx, t, "insufficient funds at maturity")
			}

			if err := src.Debit(t.Amount); err != nil {
				return err
			}
			if err := dst.Credit(t.Amount); err != nil {
				return err
			}
			if err := s.accountRepo.Update(txCtx, src); err != nil {
				return err
			}
			if err := s.accountRepo.Update(txCtx, dst); err != nil {
				return err
			}

			if err := t.MarkCompleted(); err != nil {
				return err
			}
			if err := s.transferRepo.UpdateStatus(txCtx, t); err != nil {
				return err
			}

			s.metrics.TransfersSettled.WithLabelValues(string(transfer.StatusCompleted)).Inc()
			s.logger.Info().
				Str("transfer_id", t.ID.String()).
				Int64("amount_cents", t.Amount).
				Msg("Transfer settled")
			return nil
		})
	})
}

// fail marks the transfer failed without touching balances. This replaces the
// silent-complete behavior: a transfer that cannot move funds at maturity is
// an honest terminal failure, never a completion.
func (s *Settler) fail(ctx context.Context, t *transfer.Transfer, reason string) error {
	if err := t.MarkFailed(reason); err != nil {
		return err
	}
	if err := s.transferRepo.UpdateStatus(ctx, t); err != nil {
		return err
	}

	s.metrics.TransfersSettled.WithLabelValues(string(transfer.StatusFailed)).Inc()
	s.logger.Warn().
		Str("transfer_id", t.ID.String()).
		Str("reason", reason).
		Msg("Transfer failed at settlement")
	return nil
}

// lockAccounts locks both rows in deterministic order to prevent deadlocks
// between concurrent settlements touching the same accounts.
func (s *Settler) lockAccounts(ctx context.Context, srcID, dstID uuid.UUID) (src, dst *account.Account, err error) {
	first, second := srcID, dstID
	if second.String() < first.String() {
		first, second = second, first
	}

	a, err := s.accountRepo.Lock(ctx, first)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.accountRepo.Lock(ctx, second)
	if err != nil {
		return nil, nil, err
	}

	if a.ID == srcID {
		return a, b, nil
	}
	return b, a, nil
}
