package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"rentledger-backend/internal/domain"
)

func TestStatementService_GetStatement(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ledgerRepo := new(MockLedgerRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewStatementService(ledgerRepo, rentalRepo)

	rt := normalizedRental("owner", "r1")
	rentalRepo.On("GetByID", ctx, "owner", "r1").Return(rt, nil)
	ledgerRepo.On("ListAllPayments", ctx, "r1").Return([]domain.Payment{
		{ID: "p1", Amount: dec("100"), Date: date, Status: domain.PaymentStatusPaid},
	}, nil)
	ledgerRepo.On("ListAllExpenses", ctx, "r1").Return([]domain.Expense{
		{ID: "e1", Amount: dec("30"), Date: date, Description: "repair"},
	}, nil)
	ledgerRepo.On("ListAllDues", ctx, "r1").Return([]domain.Due(nil), nil)

	st, err := svc.GetStatement(ctx, "owner", "r1")
	require.NoError(t, err)
	assert.Equal(t, rt, st.Rental)
	assert.Len(t, st.Payments, 1)
	assert.Len(t, st.Expenses, 1)
	assert.Empty(t, st.Dues)
}

func TestStatementService_ExportXLSX(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ledgerRepo := new(MockLedgerRepo)
	rentalRepo := new(MockRentalRepo)
	svc := NewStatementService(ledgerRepo, rentalRepo)

	rt := normalizedRental("owner", "r1")
	rt.Rate = dec("500")
	rt.RateType = domain.RateTypeMonthly
	rt.Status = domain.RentalStatusActive
	rt.TotalPayments = dec("100")
	rt.TotalExpenses = dec("30")
	rt.TotalDues = dec("20")
	rt.NetIncome = dec("70")

	rentalRepo.On("GetByID", ctx, "owner", "r1").Return(rt, nil)
	ledgerRepo.On("ListAllPayments", ctx, "r1").Return([]domain.Payment{
		{ID: "p1", Amount: dec("100"), Date: date, Status: domain.PaymentStatusPaid, Notes: "march rent"},
	}, nil)
	ledgerRepo.On("ListAllExpenses", ctx, "r1").Return([]domain.Expense{
		{ID: "e1", Amount: dec("30"), Date: date, Description: "repair"},
	}, nil)
	ledgerRepo.On("ListAllDues", ctx, "r1").Return([]domain.Due{
		{ID: "d1", Amount: dec("20"), Date: date, Description: "deposit"},
	}, nil)

	data, name, err := svc.ExportXLSX(ctx, "owner", "r1")
	require.NoError(t, err)
	assert.Contains(t, name, "statement_r1_")
	assert.Contains(t, name, ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{"Summary", "Payments", "Expenses", "Dues"}, sheets)

	netIncome, err := f.GetCellValue("Summary", "B9")
	require.NoError(t, err)
	assert.Equal(t, "70", netIncome)

	paymentAmount, err := f.GetCellValue("Payments", "B2")
	require.NoError(t, err)
	assert.Equal(t, "100", paymentAmount)

	dueDesc, err := f.GetCellValue("Dues", "C2")
	require.NoError(t, err)
	assert.Equal(t, "deposit", dueDesc)
}
