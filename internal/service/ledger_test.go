package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentledger-backend/internal/domain"
)

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func normalizedRental(ownerID, id string) *domain.Rental {
	return &domain.Rental{ID: id, OwnerID: ownerID, DataVersion: domain.DataVersionNormalized}
}

func TestLedgerService_AddPayment(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)
		ledgerRepo.On("AddPayment", ctx, "r1", mock.AnythingOfType("*domain.Payment")).Return(nil)

		p, err := svc.AddPayment(ctx, "owner", "r1", PaymentInput{
			Amount: dec("100"), Date: date, Status: domain.PaymentStatusPaid,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, p.ID, "service assigns the id")
		assert.True(t, p.Amount.Equal(dec("100")))
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("NegativeAmount", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockRentalRepo))
		_, err := svc.AddPayment(ctx, "owner", "r1", PaymentInput{
			Amount: dec("-1"), Date: date, Status: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("BadStatus", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockRentalRepo))
		_, err := svc.AddPayment(ctx, "owner", "r1", PaymentInput{
			Amount: dec("10"), Date: date, Status: "overdue",
		})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("MissingDate", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockRentalRepo))
		_, err := svc.AddPayment(ctx, "owner", "r1", PaymentInput{
			Amount: dec("10"), Status: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, ErrMissingDate)
	})

	t.Run("LegacyRentalRefused", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		legacy := &domain.Rental{ID: "r1", OwnerID: "owner", DataVersion: 0}
		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(legacy, nil)

		_, err := svc.AddPayment(ctx, "owner", "r1", PaymentInput{
			Amount: dec("10"), Date: date, Status: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, ErrRentalNotMigrated)
		ledgerRepo.AssertNotCalled(t, "AddPayment", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ForeignRentalInvisible", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		rentalRepo.On("GetByID", ctx, "intruder", "r1").Return(nil, domain.ErrRentalNotFound)

		_, err := svc.AddPayment(ctx, "intruder", "r1", PaymentInput{
			Amount: dec("10"), Date: date, Status: domain.PaymentStatusPaid,
		})
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestLedgerService_ListPayments(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("FirstPage", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		items := []domain.Payment{
			{ID: "p2", Amount: dec("10"), Date: date, Status: domain.PaymentStatusPaid},
			{ID: "p1", Amount: dec("20"), Date: date.AddDate(0, 0, -1), Status: domain.PaymentStatusPaid},
		}
		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)
		ledgerRepo.On("ListPaymentsPage", ctx, "r1", (*domain.Cursor)(nil)).Return(items, true, nil)

		page, err := svc.ListPayments(ctx, "owner", "r1", "")
		require.NoError(t, err)
		assert.Len(t, page.Items, 2)
		assert.True(t, page.HasMore)

		// The returned cursor points at the last item on the page.
		c, err := domain.DecodeCursor(page.NextCursor)
		require.NoError(t, err)
		assert.Equal(t, "p1", c.ID)
	})

	t.Run("BadCursor", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)

		_, err := svc.ListPayments(ctx, "owner", "r1", "garbage!!!")
		assert.ErrorIs(t, err, ErrBadCursor)
	})

	t.Run("LegacyRentalStillReadable", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		legacy := &domain.Rental{ID: "r1", OwnerID: "owner", DataVersion: 0}
		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(legacy, nil)
		ledgerRepo.On("ListPaymentsPage", ctx, "r1", (*domain.Cursor)(nil)).Return([]domain.Payment(nil), false, nil)

		page, err := svc.ListPayments(ctx, "owner", "r1", "")
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Empty(t, page.NextCursor)
	})
}

func TestLedgerService_UpdateExpense(t *testing.T) {
	ctx := context.Background()

	t.Run("NegativePatchRefused", func(t *testing.T) {
		svc := NewLedgerService(new(MockLedgerRepo), new(MockRentalRepo))
		bad := dec("-5")
		_, err := svc.UpdateExpense(ctx, "owner", "r1", "e1", domain.ExpensePatch{Amount: &bad})
		assert.ErrorIs(t, err, ErrNegativeAmount)
	})

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		rentalRepo := new(MockRentalRepo)
		svc := NewLedgerService(ledgerRepo, rentalRepo)

		amount := dec("45")
		patch := domain.ExpensePatch{Amount: &amount}
		merged := &domain.Expense{ID: "e1", Amount: amount}

		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)
		ledgerRepo.On("UpdateExpense", ctx, "r1", "e1", patch).Return(merged, nil)

		got, err := svc.UpdateExpense(ctx, "owner", "r1", "e1", patch)
		require.NoError(t, err)
		assert.True(t, got.Amount.Equal(amount))
	})
}

func TestLedgerService_DeleteDue(t *testing.T) {
	ctx := context.Background()

	ledgerRepo := new(MockLedgerRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewLedgerService(ledgerRepo, rentalRepo)

	rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)
	ledgerRepo.On("DeleteDue", ctx, "r1", "d1").Return(nil)

	assert.NoError(t, svc.DeleteDue(ctx, "owner", "r1", "d1"))
	ledgerRepo.AssertExpectations(t)
}
