package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

type migrationRepository struct {
	db *sql.DB
}

func NewMigrationRepository(db *sql.DB) repository.MigrationRepository {
	return &migrationRepository{db: db}
}

// legacyEntry is the embedded pre-normalization record shape. One
// struct covers all three kinds; payments use status/notes, expenses
// and dues use description.
type legacyEntry struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        legacyDate      `json:"date"`
	Status      string          `json:"status"`
	Notes       string          `json:"notes"`
	Description string          `json:"description"`
}

// legacyDate tolerates the two date encodings found in embedded
// ledgers: plain dates and full RFC3339 timestamps.
type legacyDate struct {
	time.Time
}

func (d *legacyDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized legacy date %q", s)
}

// normalizeLegacy turns either legacy encoding — an ordered JSON array
// or an object keyed by entry id — into a plain slice. Nothing past
// this point ever sees the encoding again.
func normalizeLegacy(raw []byte) ([]legacyEntry, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var entries []legacyEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("decode legacy array: %w", err)
		}
		return entries, nil
	}
	var keyed map[string]legacyEntry
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, fmt.Errorf("decode legacy map: %w", err)
	}
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]legacyEntry, 0, len(keyed))
	for _, k := range keys {
		e := keyed[k]
		if e.ID == "" {
			e.ID = k
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *migrationRepository) GetLegacyLedger(ctx context.Context, rentalID string) (*domain.LegacyLedger, error) {
	var rawPayments, rawExpenses, rawDues []byte
	var version sql.NullInt64
	query := `SELECT payments, expenses, dues, data_version FROM rentals WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, rentalID).Scan(&rawPayments, &rawExpenses, &rawDues, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	if err != nil {
		return nil, err
	}

	ledger := &domain.LegacyLedger{
		RentalID:    rentalID,
		DataVersion: int(version.Int64),
	}

	paymentEntries, err := normalizeLegacy(rawPayments)
	if err != nil {
		return nil, err
	}
	for _, e := range paymentEntries {
		status := domain.PaymentStatus(e.Status)
		if !status.Valid() {
			status = domain.PaymentStatusPending
		}
		ledger.Payments = append(ledger.Payments, domain.Payment{
			ID:     e.ID,
			Amount: e.Amount,
			Date:   e.Date.Time,
			Status: status,
			Notes:  e.Notes,
		})
	}

	expenseEntries, err := normalizeLegacy(rawExpenses)
	if err != nil {
		return nil, err
	}
	for _, e := range expenseEntries {
		ledger.Expenses = append(ledger.Expenses, domain.Expense{
			ID:          e.ID,
			Amount:      e.Amount,
			Date:        e.Date.Time,
			Description: e.Description,
		})
	}

	dueEntries, err := normalizeLegacy(rawDues)
	if err != nil {
		return nil, err
	}
	for _, e := range dueEntries {
		ledger.Dues = append(ledger.Dues, domain.Due{
			ID:          e.ID,
			Amount:      e.Amount,
			Date:        e.Date.Time,
			Description: e.Description,
		})
	}

	return ledger, nil
}

// WriteChunk commits one migration chunk in one transaction. Writes are
// upserts keyed on (rental_id, id), so re-running a partially failed
// migration overwrites instead of duplicating.
func (r *migrationRepository) WriteChunk(ctx context.Context, rentalID string, items []domain.MigrationItem) error {
	if len(items) > domain.BatchLimit {
		return fmt.Errorf("chunk of %d exceeds batch limit %d", len(items), domain.BatchLimit)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, item := range items {
		switch item.Kind {
		case domain.KindPayment:
			p := item.Payment
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rental_payments (rental_id, id, amount, date, status, notes)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (rental_id, id) DO UPDATE SET amount = EXCLUDED.amount, date = EXCLUDED.date, status = EXCLUDED.status, notes = EXCLUDED.notes`,
				rentalID, p.ID, p.Amount, p.Date, p.Status, p.Notes)
		case domain.KindExpense:
			e := item.Expense
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rental_expenses (rental_id, id, amount, date, description)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (rental_id, id) DO UPDATE SET amount = EXCLUDED.amount, date = EXCLUDED.date, description = EXCLUDED.description`,
				rentalID, e.ID, e.Amount, e.Date, e.Description)
		case domain.KindDue:
			d := item.Due
			_, err = tx.ExecContext(ctx, `
				INSERT INTO rental_dues (rental_id, id, amount, date, description)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (rental_id, id) DO UPDATE SET amount = EXCLUDED.amount, date = EXCLUDED.date, description = EXCLUDED.description`,
				rentalID, d.ID, d.Amount, d.Date, d.Description)
		default:
			err = fmt.Errorf("unknown migration item kind %q", item.Kind)
		}
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Finalize installs the from-scratch aggregates, stamps the rental as
// normalized and drops the embedded legacy fields, atomically. A crash
// before this point leaves the rental fully legacy.
func (r *migrationRepository) Finalize(ctx context.Context, rentalID string, totals domain.AggregateTotals) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE rentals
		SET total_payments = $1,
		    total_expenses = $2,
		    total_dues = $3,
		    net_income = $4,
		    data_version = $5,
		    payments = NULL,
		    expenses = NULL,
		    dues = NULL
		WHERE id = $6`,
		totals.TotalPayments, totals.TotalExpenses, totals.TotalDues, totals.NetIncome,
		domain.DataVersionNormalized, rentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}
