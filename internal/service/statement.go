package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"rentledger-backend/internal/repository"
)

type statementService struct {
	ledgerRepo repository.LedgerRepository
	rentalRepo repository.RentalRepository
}

func NewStatementService(ledgerRepo repository.LedgerRepository, rentalRepo repository.RentalRepository) StatementService {
	return &statementService{ledgerRepo: ledgerRepo, rentalRepo: rentalRepo}
}

// GetStatement loads the rental's full ledger history without
// pagination. Intended for export and print views, not for feeds.
func (s *statementService) GetStatement(ctx context.Context, ownerID, rentalID string) (*Statement, error) {
	rt, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID)
	if err != nil {
		return nil, err
	}

	payments, err := s.ledgerRepo.ListAllPayments(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.ledgerRepo.ListAllExpenses(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	dues, err := s.ledgerRepo.ListAllDues(ctx, rentalID)
	if err != nil {
		return nil, err
	}

	return &Statement{
		Rental:   rt,
		Payments: payments,
		Expenses: expenses,
		Dues:     dues,
	}, nil
}

// ExportXLSX renders the statement as a workbook with one sheet per
// entry kind plus a summary sheet, and returns the bytes and a
// suggested filename.
func (s *statementService) ExportXLSX(ctx context.Context, ownerID, rentalID string) ([]byte, string, error) {
	st, err := s.GetStatement(ctx, ownerID, rentalID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), "Summary")

	summaryRows := [][]interface{}{
		{"Rental ID", st.Rental.ID},
		{"Status", string(st.Rental.Status)},
		{"Rate", st.Rental.Rate.String()},
		{"Rate Type", string(st.Rental.RateType)},
		{"Start Date", st.Rental.StartDate.Format("2006-01-02")},
		{"Total Payments", st.Rental.TotalPayments.String()},
		{"Total Expenses", st.Rental.TotalExpenses.String()},
		{"Total Dues", st.Rental.TotalDues.String()},
		{"Net Income", st.Rental.NetIncome.String()},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Summary", cell, &row); err != nil {
			return nil, "", err
		}
	}

	if err := writeSheet(f, "Payments", []string{"Date", "Amount", "Status", "Notes"}, len(st.Payments), func(i int) []interface{} {
		p := st.Payments[i]
		return []interface{}{p.Date.Format("2006-01-02"), p.Amount.String(), string(p.Status), p.Notes}
	}); err != nil {
		return nil, "", err
	}
	if err := writeSheet(f, "Expenses", []string{"Date", "Amount", "Description"}, len(st.Expenses), func(i int) []interface{} {
		e := st.Expenses[i]
		return []interface{}{e.Date.Format("2006-01-02"), e.Amount.String(), e.Description}
	}); err != nil {
		return nil, "", err
	}
	if err := writeSheet(f, "Dues", []string{"Date", "Amount", "Description"}, len(st.Dues), func(i int) []interface{} {
		d := st.Dues[i]
		return []interface{}{d.Date.Format("2006-01-02"), d.Amount.String(), d.Description}
	}); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("statement_%s_%s.xlsx", rentalID, time.Now().Format("20060102"))
	return buf.Bytes(), name, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, n int, row func(i int) []interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	hdr := make([]interface{}, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row(i)
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}
	return nil
}
