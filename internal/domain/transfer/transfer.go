package transfer

import (
	"time"

	"github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/google/uuid"
)

// Status represents the transfer status in the state machine
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// Transfer is an intent to move money between two accounts. It is created
// pending and settled by the background settlement pass; balances are never
// touched at creation time. The status field is the only mutable part and
// transitions exactly once out of pending.
type Transfer struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SourceAccountID uuid.UUID
	TargetAccountID uuid.UUID
	Amount          int64 // in cents
	Status          Status
	FailureReason   *string
	CreatedAt       time.Time
	SettledAt       *time.Time
}

func New(userID, sourceAccountID, targetAccountID uuid.UUID, amount int64) (*Transfer, error) {
	if amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}
	if sourceAccountID == targetAccountID {
		return nil, errors.ErrSameAccount
	}

	return &Transfer{
		ID:              uuid.New(),
		UserID:          userID,
		SourceAccountID: sourceAccountID,
		TargetAccountID: targetAccountID,
		Amount:          amount,
		Status:          StatusPending,
		CreatedAt:       time.Now(),
	}, nil
}

// CanTransitionTo checks if the transfer can transition to the given status
func (t *Transfer) CanTransitionTo(newStatus Status) bool {
	transitions := map[Status][]Status{
		StatusPending: {
			StatusCompleted,
			StatusCancelled,
			StatusFailed,
		},
		StatusCompleted: {}, // Terminal state
		StatusCancelled: {}, // Terminal state
		StatusFailed:    {}, // Terminal state
	}

	allowed, exists := transitions[t.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == newStatus {
			return true
		}
	}
	return false
}

// TransitionTo transitions the transfer to a new status
func (t *Transfer) TransitionTo(newStatus Status) error {
	if !t.CanTransitionTo(newStatus) {
		return errors.NewDomainError(
			"invalid_transition",
			"cannot transition from "+string(t.Status)+" to "+string(newStatus),
			errors.ErrInvalidStateTransition,
		)
	}

	t.Status = newStatus
	now := time.Now()
	t.SettledAt = &now
	return nil
}

// MarkCompleted transitions the transfer to completed status
func (t *Transfer) MarkCompleted() error {
	return t.TransitionTo(StatusCompleted)
}

// MarkCancelled transitions the transfer to cancelled status
func (t *Transfer) MarkCancelled() error {
	return t.TransitionTo(StatusCancelled)
}

// MarkFailed transitions the transfer to failed status and records the reason.
func (t *Transfer) MarkFailed(reason string) error {
	if err := t.TransitionTo(StatusFailed); err != nil {
		return err
	}
	t.FailureReason = &reason
	return nil
}

// IsTerminal checks if the transfer is in a terminal state
func (t *Transfer) IsTerminal() bool {
	return t.Status != StatusPending
}

// MaturedBy reports whether the transfer is old enough to settle: pending
// transfers only become eligible once they have aged past the maturity window.
func (t *Transfer) MaturedBy(now time.Time, window time.Duration) bool {
	return t.Status == StatusPending && now.Sub(t.CreatedAt) >= window
}
