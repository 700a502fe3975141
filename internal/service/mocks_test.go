package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rentledger-backend/internal/domain"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Rental, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rt *domain.Rental) error {
	args := m.Called(ctx, rt)
	return args.Error(0)
}
func (m *MockRentalRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRentalRepo) ListUnmigrated(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) AddPayment(ctx context.Context, rentalID string, p *domain.Payment) error {
	args := m.Called(ctx, rentalID, p)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetPayment(ctx context.Context, rentalID, id string) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockLedgerRepo) UpdatePayment(ctx context.Context, rentalID, id string, patch domain.PaymentPatch) (*domain.Payment, error) {
	args := m.Called(ctx, rentalID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockLedgerRepo) DeletePayment(ctx context.Context, rentalID, id string) error {
	args := m.Called(ctx, rentalID, id)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListPaymentsPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Payment, bool, error) {
	args := m.Called(ctx, rentalID, cursor)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payment), args.Bool(1), args.Error(2)
}
func (m *MockLedgerRepo) ListAllPayments(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockLedgerRepo) AddExpense(ctx context.Context, rentalID string, e *domain.Expense) error {
	args := m.Called(ctx, rentalID, e)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetExpense(ctx context.Context, rentalID, id string) (*domain.Expense, error) {
	args := m.Called(ctx, rentalID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockLedgerRepo) UpdateExpense(ctx context.Context, rentalID, id string, patch domain.ExpensePatch) (*domain.Expense, error) {
	args := m.Called(ctx, rentalID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}
func (m *MockLedgerRepo) DeleteExpense(ctx context.Context, rentalID, id string) error {
	args := m.Called(ctx, rentalID, id)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListExpensesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Expense, bool, error) {
	args := m.Called(ctx, rentalID, cursor)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Bool(1), args.Error(2)
}
func (m *MockLedgerRepo) ListAllExpenses(ctx context.Context, rentalID string) ([]domain.Expense, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Expense), args.Error(1)
}

func (m *MockLedgerRepo) AddDue(ctx context.Context, rentalID string, d *domain.Due) error {
	args := m.Called(ctx, rentalID, d)
	return args.Error(0)
}
func (m *MockLedgerRepo) GetDue(ctx context.Context, rentalID, id string) (*domain.Due, error) {
	args := m.Called(ctx, rentalID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}
func (m *MockLedgerRepo) UpdateDue(ctx context.Context, rentalID, id string, patch domain.DuePatch) (*domain.Due, error) {
	args := m.Called(ctx, rentalID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Due), args.Error(1)
}
func (m *MockLedgerRepo) DeleteDue(ctx context.Context, rentalID, id string) error {
	args := m.Called(ctx, rentalID, id)
	return args.Error(0)
}
func (m *MockLedgerRepo) ListDuesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Due, bool, error) {
	args := m.Called(ctx, rentalID, cursor)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Due), args.Bool(1), args.Error(2)
}
func (m *MockLedgerRepo) ListAllDues(ctx context.Context, rentalID string) ([]domain.Due, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Due), args.Error(1)
}

func (m *MockLedgerRepo) DeleteAllEntries(ctx context.Context, rentalID string) error {
	args := m.Called(ctx, rentalID)
	return args.Error(0)
}

// MockMigrationRepo
type MockMigrationRepo struct {
	mock.Mock
}

func (m *MockMigrationRepo) GetLegacyLedger(ctx context.Context, rentalID string) (*domain.LegacyLedger, error) {
	args := m.Called(ctx, rentalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegacyLedger), args.Error(1)
}
func (m *MockMigrationRepo) WriteChunk(ctx context.Context, rentalID string, items []domain.MigrationItem) error {
	args := m.Called(ctx, rentalID, items)
	return args.Error(0)
}
func (m *MockMigrationRepo) Finalize(ctx context.Context, rentalID string, totals domain.AggregateTotals) error {
	args := m.Called(ctx, rentalID, totals)
	return args.Error(0)
}

// MockAssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, a *domain.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAssetRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Asset, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) Update(ctx context.Context, a *domain.Asset) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}
func (m *MockAssetRepo) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContactRepo) GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contact), args.Error(1)
}
func (m *MockContactRepo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contact), args.Error(1)
}
func (m *MockContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockContactRepo) Delete(ctx context.Context, ownerID, id string) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}
