package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cassiomorais/corebank/internal/domain/account"
	"github.com/cassiomorais/corebank/internal/domain/beneficiary"
	domainErrors "github.com/cassiomorais/corebank/internal/domain/errors"
	"github.com/cassiomorais/corebank/internal/domain/transfer"
	"github.com/cassiomorais/corebank/internal/domain/user"
	"github.com/google/uuid"
)

// --- User Repository Mock ---

// MockUserRepository is a mock implementation of user.Repository.
type MockUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*user.User

	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[uuid.UUID]*user.User)}
}

func (m *MockUserRepository) AddUser(u *user.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domainErrors.ErrDuplicateEmail
		}
	}
	m.users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domainErrors.ErrUserNotFound
	}
	return u, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

// --- Account Repository Mock ---

// MockAccountRepository is a mock implementation of account.Repository.
type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*account.Account
	versions map[uuid.UUID]int
	deposits map[uuid.UUID][]*account.Deposit

	CreateFunc           func(ctx context.Context, acct *account.Account) error
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*account.Account, error)
	GetByUserAndNameFunc func(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error)
	GetByIBANFunc        func(ctx context.Context, iban string) (*account.Account, error)
	GetMainFunc          func(ctx context.Context, userID uuid.UUID) (*account.Account, error)
	ListOpenFunc         func(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)
	UpdateFunc           func(ctx context.Context, acct *account.Account) error
	LockFunc             func(ctx context.Context, id uuid.UUID) (*account.Account, error)
	AddDepositFunc       func(ctx context.Context, d *account.Deposit) error
	ListDepositsFunc     func(ctx context.Context, accountID uuid.UUID) ([]*account.Deposit, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[uuid.UUID]*account.Account),
		versions: make(map[uuid.UUID]int),
		deposits: make(map[uuid.UUID][]*account.Deposit),
	}
}

// AddAccount pre-populates the mock with an account.
func (m *MockAccountRepository) AddAccount(acct *account.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[acct.ID] = acct
	m.versions[acct.ID] = acct.Version
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *account.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, acct)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.UserID == acct.UserID && existing.Name == acct.Name {
			return domainErrors.ErrDuplicateAccountName
		}
	}
	m.accounts[acct.ID] = acct
	m.versions[acct.ID] = acct.Version
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acct, ok := m.accounts[id]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	return acct, nil
}

func (m *MockAccountRepository) GetByUserAndName(ctx context.Context, userID uuid.UUID, name string) (*account.Account, error) {
	if m.GetByUserAndNameFunc != nil {
		return m.GetByUserAndNameFunc(ctx, userID, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.UserID == userID && acct.Name == name {
			return acct, nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIBAN(ctx context.Context, iban string) (*account.Account, error) {
	if m.GetByIBANFunc != nil {
		return m.GetByIBANFunc(ctx, iban)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.IBAN == iban {
			return acct, nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) GetMain(ctx context.Context, userID uuid.UUID) (*account.Account, error) {
	if m.GetMainFunc != nil {
		return m.GetMainFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, acct := range m.accounts {
		if acct.UserID == userID && acct.IsMain {
			return acct, nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) ListOpen(ctx context.Context, userID uuid.UUID) ([]*account.Account, error) {
	if m.ListOpenFunc != nil {
		return m.ListOpenFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*account.Account, 0)
	for _, acct := range m.accounts {
		if acct.UserID == userID && !acct.IsClosed {
			result = append(result, acct)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Update mirrors the SQL optimistic-lock guard: the write commits only if the
// caller still holds the stored version, which then advances by one.
func (m *MockAccountRepository) Update(ctx context.Context, acct *account.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, acct)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[acct.ID]; !ok {
		return domainErrors.ErrAccountNotFound
	}
	if m.versions[acct.ID] != acct.Version {
		return domainErrors.ErrCommitConflict
	}
	acct.Version++
	m.versions[acct.ID] = acct.Version
	m.accounts[acct.ID] = acct
	return nil
}

func (m *MockAccountRepository) Lock(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	if m.LockFunc != nil {
		return m.LockFunc(ctx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) AddDeposit(ctx context.Context, d *account.Deposit) error {
	if m.AddDepositFunc != nil {
		return m.AddDepositFunc(ctx, d)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deposits[d.AccountID] = append(m.deposits[d.AccountID], d)
	return nil
}

func (m *MockAccountRepository) ListDeposits(ctx context.Context, accountID uuid.UUID) ([]*account.Deposit, error) {
	if m.ListDepositsFunc != nil {
		return m.ListDepositsFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deposits[accountID], nil
}

// --- Transfer Repository Mock ---

// MockTransferRepository is a mock implementation of transfer.Repository.
type MockTransferRepository struct {
	mu        sync.Mutex
	transfers map[uuid.UUID]*transfer.Transfer

	CreateFunc               func(ctx context.Context, t *transfer.Transfer) error
	GetByIDFunc              func(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error)
	GetByIDForUserFunc       func(ctx context.Context, id, userID uuid.UUID) (*transfer.Transfer, error)
	ListMaturedFunc          func(ctx context.Context, cutoff time.Time) ([]*transfer.Transfer, error)
	ListByAccountFunc        func(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error)
	HasPendingForAccountFunc func(ctx context.Context, accountID uuid.UUID) (bool, error)
	UpdateStatusFunc         func(ctx context.Context, t *transfer.Transfer) error
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{transfers: make(map[uuid.UUID]*transfer.Transfer)}
}

// AddTransfer pre-populates the mock with a transfer.
func (m *MockTransferRepository) AddTransfer(t *transfer.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[t.ID] = t
}

func (m *MockTransferRepository) Create(ctx context.Context, t *transfer.Transfer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[t.ID] = t
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*transfer.Transfer, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok {
		return nil, domainErrors.ErrTransferNotFound
	}
	return t, nil
}

func (m *MockTransferRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*transfer.Transfer, error) {
	if m.GetByIDForUserFunc != nil {
		return m.GetByIDForUserFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.transfers[id]
	if !ok || t.UserID != userID {
		return nil, domainErrors.ErrTransferNotFound
	}
	return t, nil
}

func (m *MockTransferRepository) ListMatured(ctx context.Context, cutoff time.Time) ([]*transfer.Transfer, error) {
	if m.ListMaturedFunc != nil {
		return m.ListMaturedFunc(ctx, cutoff)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*transfer.Transfer, 0)
	for _, t := range m.transfers {
		if t.Status == transfer.StatusPending && !t.CreatedAt.After(cutoff) {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transfer.Transfer, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*transfer.Transfer, 0)
	for _, t := range m.transfers {
		if t.SourceAccountID == accountID || t.TargetAccountID == accountID {
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *MockTransferRepository) HasPendingForAccount(ctx context.Context, accountID uuid.UUID) (bool, error) {
	if m.HasPendingForAccountFunc != nil {
		return m.HasPendingForAccountFunc(ctx, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transfers {
		if t.Status == transfer.StatusPending && (t.SourceAccountID == accountID || t.TargetAccountID == accountID) {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockTransferRepository) UpdateStatus(ctx context.Context, t *transfer.Transfer) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.transfers[t.ID]
	if !ok {
		return domainErrors.ErrTransferNotFound
	}
	if existing != t && existing.Status != transfer.StatusPending {
		return domainErrors.ErrCommitConflict
	}
	m.transfers[t.ID] = t
	return nil
}

// --- Beneficiary Repository Mock ---

// MockBeneficiaryRepository is a mock implementation of beneficiary.Repository.
type MockBeneficiaryRepository struct {
	mu            sync.Mutex
	beneficiaries map[uuid.UUID]*beneficiary.Beneficiary

	CreateFunc           func(ctx context.Context, b *beneficiary.Beneficiary) error
	GetByUserAndIBANFunc func(ctx context.Context, userID uuid.UUID, iban string) (*beneficiary.Beneficiary, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]*beneficiary.Beneficiary, error)
}

func NewMockBeneficiaryRepository() *MockBeneficiaryRepository {
	return &MockBeneficiaryRepository{beneficiaries: make(map[uuid.UUID]*beneficiary.Beneficiary)}
}

func (m *MockBeneficiaryRepository) Create(ctx context.Context, b *beneficiary.Beneficiary) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.beneficiaries {
		if existing.UserID == b.UserID && existing.IBAN == b.IBAN {
			return domainErrors.ErrDuplicateBeneficiary
		}
	}
	m.beneficiaries[b.ID] = b
	return nil
}

func (m *MockBeneficiaryRepository) GetByUserAndIBAN(ctx context.Context, userID uuid.UUID, iban string) (*beneficiary.Beneficiary, error) {
	if m.GetByUserAndIBANFunc != nil {
		return m.GetByUserAndIBANFunc(ctx, userID, iban)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.beneficiaries {
		if b.UserID == userID && b.IBAN == iban {
			return b, nil
		}
	}
	return nil, domainErrors.ErrBeneficiaryNotFound
}

func (m *MockBeneficiaryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*beneficiary.Beneficiary, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*beneficiary.Beneficiary, 0)
	for _, b := range m.beneficiaries {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

// --- Transaction Manager Mock ---

// MockTransactionManager runs the function directly without a real
// transaction boundary.
type MockTransactionManager struct {
	WithTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
