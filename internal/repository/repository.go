package repository

import (
	"context"

	"rentledger-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Asset, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Asset, error)
	Update(ctx context.Context, asset *domain.Asset) error
	Delete(ctx context.Context, ownerID, id string) error
}

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Contact, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) error
	Delete(ctx context.Context, ownerID, id string) error
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Rental, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	Delete(ctx context.Context, id string) error
	// ListUnmigrated returns the owner's rentals still carrying the
	// legacy embedded ledger (data_version absent or below 2).
	ListUnmigrated(ctx context.Context, ownerID string) ([]domain.Rental, error)
}

// LedgerRepository is the aggregate maintainer: every mutation commits
// the child row and the parent rental's cached totals in one
// transaction, so readers never observe one without the other.
type LedgerRepository interface {
	AddPayment(ctx context.Context, rentalID string, p *domain.Payment) error
	GetPayment(ctx context.Context, rentalID, id string) (*domain.Payment, error)
	UpdatePayment(ctx context.Context, rentalID, id string, patch domain.PaymentPatch) (*domain.Payment, error)
	DeletePayment(ctx context.Context, rentalID, id string) error
	ListPaymentsPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Payment, bool, error)
	ListAllPayments(ctx context.Context, rentalID string) ([]domain.Payment, error)

	AddExpense(ctx context.Context, rentalID string, e *domain.Expense) error
	GetExpense(ctx context.Context, rentalID, id string) (*domain.Expense, error)
	UpdateExpense(ctx context.Context, rentalID, id string, patch domain.ExpensePatch) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, rentalID, id string) error
	ListExpensesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Expense, bool, error)
	ListAllExpenses(ctx context.Context, rentalID string) ([]domain.Expense, error)

	AddDue(ctx context.Context, rentalID string, d *domain.Due) error
	GetDue(ctx context.Context, rentalID, id string) (*domain.Due, error)
	UpdateDue(ctx context.Context, rentalID, id string, patch domain.DuePatch) (*domain.Due, error)
	DeleteDue(ctx context.Context, rentalID, id string) error
	ListDuesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Due, bool, error)
	ListAllDues(ctx context.Context, rentalID string) ([]domain.Due, error)

	// DeleteAllEntries removes every child row of the rental across the
	// three tables, in batches no larger than domain.BatchLimit.
	DeleteAllEntries(ctx context.Context, rentalID string) error
}

// MigrationRepository provides the storage primitives of the one-time
// legacy conversion. Chunk writes are upserts so a retried migration
// cannot double-insert.
type MigrationRepository interface {
	GetLegacyLedger(ctx context.Context, rentalID string) (*domain.LegacyLedger, error)
	WriteChunk(ctx context.Context, rentalID string, items []domain.MigrationItem) error
	// Finalize writes the recomputed aggregates, stamps data_version 2
	// and drops the embedded legacy fields, all in one transaction.
	Finalize(ctx context.Context, rentalID string, totals domain.AggregateTotals) error
}
