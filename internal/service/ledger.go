package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository"
)

var (
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInvalidStatus     = errors.New("payment status must be paid or pending")
	ErrMissingDate       = errors.New("date is required")
	ErrRentalNotMigrated = errors.New("rental still uses the legacy ledger format; migrate it first")
	ErrBadCursor         = errors.New("invalid pagination cursor")
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	rentalRepo repository.RentalRepository
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, rentalRepo repository.RentalRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, rentalRepo: rentalRepo}
}

// requireRental resolves the rental under the caller's owner id and
// refuses ledger writes against rentals that have not been migrated:
// their aggregates cannot be trusted until conversion runs.
func (s *ledgerService) requireRental(ctx context.Context, ownerID, rentalID string) (*domain.Rental, error) {
	rt, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID)
	if err != nil {
		return nil, err
	}
	if !rt.Normalized() {
		return nil, ErrRentalNotMigrated
	}
	return rt, nil
}

// Payments

func (s *ledgerService) AddPayment(ctx context.Context, ownerID, rentalID string, in PaymentInput) (*domain.Payment, error) {
	if in.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if in.Date.IsZero() {
		return nil, ErrMissingDate
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}

	p := &domain.Payment{
		ID:     uuid.NewString(),
		Amount: in.Amount,
		Date:   in.Date,
		Status: in.Status,
		Notes:  in.Notes,
	}
	if err := s.ledgerRepo.AddPayment(ctx, rentalID, p); err != nil {
		return nil, err
	}
	logger.Debug("payment added", "rental_id", rentalID, "payment_id", p.ID, "amount", p.Amount)
	return p, nil
}

func (s *ledgerService) UpdatePayment(ctx context.Context, ownerID, rentalID, paymentID string, patch domain.PaymentPatch) (*domain.Payment, error) {
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.UpdatePayment(ctx, rentalID, paymentID, patch)
}

func (s *ledgerService) DeletePayment(ctx context.Context, ownerID, rentalID, paymentID string) error {
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return err
	}
	return s.ledgerRepo.DeletePayment(ctx, rentalID, paymentID)
}

func (s *ledgerService) ListPayments(ctx context.Context, ownerID, rentalID, cursor string) (*PaymentPage, error) {
	if _, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	c, err := domain.DecodeCursor(cursor)
	if err != nil {
		return nil, ErrBadCursor
	}
	items, hasMore, err := s.ledgerRepo.ListPaymentsPage(ctx, rentalID, c)
	if err != nil {
		return nil, err
	}
	page := &PaymentPage{Items: items, HasMore: hasMore}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = domain.Cursor{Date: last.Date, ID: last.ID}.Encode()
	}
	return page, nil
}

// Expenses

func (s *ledgerService) AddExpense(ctx context.Context, ownerID, rentalID string, in ExpenseInput) (*domain.Expense, error) {
	if in.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if in.Date.IsZero() {
		return nil, ErrMissingDate
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}

	e := &domain.Expense{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := s.ledgerRepo.AddExpense(ctx, rentalID, e); err != nil {
		return nil, err
	}
	logger.Debug("expense added", "rental_id", rentalID, "expense_id", e.ID, "amount", e.Amount)
	return e, nil
}

func (s *ledgerService) UpdateExpense(ctx context.Context, ownerID, rentalID, expenseID string, patch domain.ExpensePatch) (*domain.Expense, error) {
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.UpdateExpense(ctx, rentalID, expenseID, patch)
}

func (s *ledgerService) DeleteExpense(ctx context.Context, ownerID, rentalID, expenseID string) error {
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return err
	}
	return s.ledgerRepo.DeleteExpense(ctx, rentalID, expenseID)
}

func (s *ledgerService) ListExpenses(ctx context.Context, ownerID, rentalID, cursor string) (*ExpensePage, error) {
	if _, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	c, err := domain.DecodeCursor(cursor)
	if err != nil {
		return nil, ErrBadCursor
	}
	items, hasMore, err := s.ledgerRepo.ListExpensesPage(ctx, rentalID, c)
	if err != nil {
		return nil, err
	}
	page := &ExpensePage{Items: items, HasMore: hasMore}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = domain.Cursor{Date: last.Date, ID: last.ID}.Encode()
	}
	return page, nil
}

// Dues

func (s *ledgerService) AddDue(ctx context.Context, ownerID, rentalID string, in DueInput) (*domain.Due, error) {
	if in.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if in.Date.IsZero() {
		return nil, ErrMissingDate
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}

	d := &domain.Due{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Date:        in.Date,
		Description: in.Description,
	}
	if err := s.ledgerRepo.AddDue(ctx, rentalID, d); err != nil {
		return nil, err
	}
	logger.Debug("due added", "rental_id", rentalID, "due_id", d.ID, "amount", d.Amount)
	return d, nil
}

func (s *ledgerService) UpdateDue(ctx context.Context, ownerID, rentalID, dueID string, patch domain.DuePatch) (*domain.Due, error) {
	if patch.Amount != nil && patch.Amount.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.UpdateDue(ctx, rentalID, dueID, patch)
}

func (s *ledgerService) DeleteDue(ctx context.Context, ownerID, rentalID, dueID string) error {
	if _, err := s.requireRental(ctx, ownerID, rentalID); err != nil {
		return err
	}
	return s.ledgerRepo.DeleteDue(ctx, rentalID, dueID)
}

func (s *ledgerService) ListDues(ctx context.Context, ownerID, rentalID, cursor string) (*DuePage, error) {
	if _, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID); err != nil {
		return nil, err
	}
	c, err := domain.DecodeCursor(cursor)
	if err != nil {
		return nil, ErrBadCursor
	}
	items, hasMore, err := s.ledgerRepo.ListDuesPage(ctx, rentalID, c)
	if err != nil {
		return nil, err
	}
	page := &DuePage{Items: items, HasMore: hasMore}
	if len(items) > 0 {
		last := items[len(items)-1]
		page.NextCursor = domain.Cursor{Date: last.Date, ID: last.ID}.Encode()
	}
	return page, nil
}
