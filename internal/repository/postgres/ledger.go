package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

// ledgerRepository pairs every child-row mutation with the matching
// aggregate adjustment on the parent rental inside one transaction.
// The adjustment is a relative update executed in the database, so
// concurrent writers against the same rental cannot lose deltas.
type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// bumpPayments shifts total_payments by delta and recomputes net_income
// from the shifted value. Zero rows affected means the rental is gone.
func bumpPayments(ctx context.Context, tx *sql.Tx, rentalID string, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE rentals
		SET total_payments = total_payments + $1,
		    net_income = total_payments + $1 - total_expenses
		WHERE id = $2`, delta, rentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func bumpExpenses(ctx context.Context, tx *sql.Tx, rentalID string, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE rentals
		SET total_expenses = total_expenses + $1,
		    net_income = total_payments - (total_expenses + $1)
		WHERE id = $2`, delta, rentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

// Dues never feed net_income.
func bumpDues(ctx context.Context, tx *sql.Tx, rentalID string, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE rentals
		SET total_dues = total_dues + $1
		WHERE id = $2`, delta, rentalID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

// Payments

func (r *ledgerRepository) AddPayment(ctx context.Context, rentalID string, p *domain.Payment) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rental_payments (rental_id, id, amount, date, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		rentalID, p.ID, p.Amount, p.Date, p.Status, p.Notes)
	if err != nil {
		return err
	}
	// Pending payments contribute zero but the aggregate update still
	// runs: it doubles as the rental-existence check.
	if err := bumpPayments(ctx, tx, rentalID, p.Contribution()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) GetPayment(ctx context.Context, rentalID, id string) (*domain.Payment, error) {
	p := &domain.Payment{}
	query := `SELECT id, amount, date, status, notes FROM rental_payments WHERE rental_id = $1 AND id = $2`
	err := r.db.QueryRowContext(ctx, query, rentalID, id).Scan(&p.ID, &p.Amount, &p.Date, &p.Status, &p.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ledgerRepository) UpdatePayment(ctx context.Context, rentalID, id string, patch domain.PaymentPatch) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old := domain.Payment{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, status, notes FROM rental_payments
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Status, &old.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(old)
	_, err = tx.ExecContext(ctx, `
		UPDATE rental_payments SET amount = $1, date = $2, status = $3, notes = $4
		WHERE rental_id = $5 AND id = $6`,
		merged.Amount, merged.Date, merged.Status, merged.Notes, rentalID, id)
	if err != nil {
		return nil, err
	}

	if delta := merged.Contribution().Sub(old.Contribution()); !delta.IsZero() {
		if err := bumpPayments(ctx, tx, rentalID, delta); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *ledgerRepository) DeletePayment(ctx context.Context, rentalID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	old := domain.Payment{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, status, notes FROM rental_payments
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Status, &old.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrPaymentNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_payments WHERE rental_id = $1 AND id = $2`, rentalID, id); err != nil {
		return err
	}
	if err := bumpPayments(ctx, tx, rentalID, old.Contribution().Neg()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) ListPaymentsPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Payment, bool, error) {
	rows, err := pageQuery(ctx, r.db, "rental_payments", "id, amount, date, status, notes", rentalID, cursor)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Date, &p.Status, &p.Notes); err != nil {
			return nil, false, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	hasMore := len(payments) > domain.PageSize
	if hasMore {
		payments = payments[:domain.PageSize]
	}
	return payments, hasMore, nil
}

func (r *ledgerRepository) ListAllPayments(ctx context.Context, rentalID string) ([]domain.Payment, error) {
	query := `SELECT id, amount, date, status, notes FROM rental_payments
	          WHERE rental_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := rows.Scan(&p.ID, &p.Amount, &p.Date, &p.Status, &p.Notes); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// Expenses

func (r *ledgerRepository) AddExpense(ctx context.Context, rentalID string, e *domain.Expense) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rental_expenses (rental_id, id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)`,
		rentalID, e.ID, e.Amount, e.Date, e.Description)
	if err != nil {
		return err
	}
	if err := bumpExpenses(ctx, tx, rentalID, e.Amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) GetExpense(ctx context.Context, rentalID, id string) (*domain.Expense, error) {
	e := &domain.Expense{}
	query := `SELECT id, amount, date, description FROM rental_expenses WHERE rental_id = $1 AND id = $2`
	err := r.db.QueryRowContext(ctx, query, rentalID, id).Scan(&e.ID, &e.Amount, &e.Date, &e.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ledgerRepository) UpdateExpense(ctx context.Context, rentalID, id string, patch domain.ExpensePatch) (*domain.Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old := domain.Expense{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, description FROM rental_expenses
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrExpenseNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(old)
	_, err = tx.ExecContext(ctx, `
		UPDATE rental_expenses SET amount = $1, date = $2, description = $3
		WHERE rental_id = $4 AND id = $5`,
		merged.Amount, merged.Date, merged.Description, rentalID, id)
	if err != nil {
		return nil, err
	}

	if delta := merged.Amount.Sub(old.Amount); !delta.IsZero() {
		if err := bumpExpenses(ctx, tx, rentalID, delta); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *ledgerRepository) DeleteExpense(ctx context.Context, rentalID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	old := domain.Expense{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, description FROM rental_expenses
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrExpenseNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_expenses WHERE rental_id = $1 AND id = $2`, rentalID, id); err != nil {
		return err
	}
	if err := bumpExpenses(ctx, tx, rentalID, old.Amount.Neg()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) ListExpensesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Expense, bool, error) {
	rows, err := pageQuery(ctx, r.db, "rental_expenses", "id, amount, date, description", rentalID, cursor)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Date, &e.Description); err != nil {
			return nil, false, err
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	hasMore := len(expenses) > domain.PageSize
	if hasMore {
		expenses = expenses[:domain.PageSize]
	}
	return expenses, hasMore, nil
}

func (r *ledgerRepository) ListAllExpenses(ctx context.Context, rentalID string) ([]domain.Expense, error) {
	query := `SELECT id, amount, date, description FROM rental_expenses
	          WHERE rental_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Amount, &e.Date, &e.Description); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// Dues

func (r *ledgerRepository) AddDue(ctx context.Context, rentalID string, d *domain.Due) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO rental_dues (rental_id, id, amount, date, description)
		VALUES ($1, $2, $3, $4, $5)`,
		rentalID, d.ID, d.Amount, d.Date, d.Description)
	if err != nil {
		return err
	}
	if err := bumpDues(ctx, tx, rentalID, d.Amount); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) GetDue(ctx context.Context, rentalID, id string) (*domain.Due, error) {
	d := &domain.Due{}
	query := `SELECT id, amount, date, description FROM rental_dues WHERE rental_id = $1 AND id = $2`
	err := r.db.QueryRowContext(ctx, query, rentalID, id).Scan(&d.ID, &d.Amount, &d.Date, &d.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDueNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *ledgerRepository) UpdateDue(ctx context.Context, rentalID, id string, patch domain.DuePatch) (*domain.Due, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old := domain.Due{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, description FROM rental_dues
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrDueNotFound
	}
	if err != nil {
		return nil, err
	}

	merged := patch.Apply(old)
	_, err = tx.ExecContext(ctx, `
		UPDATE rental_dues SET amount = $1, date = $2, description = $3
		WHERE rental_id = $4 AND id = $5`,
		merged.Amount, merged.Date, merged.Description, rentalID, id)
	if err != nil {
		return nil, err
	}

	if delta := merged.Amount.Sub(old.Amount); !delta.IsZero() {
		if err := bumpDues(ctx, tx, rentalID, delta); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func (r *ledgerRepository) DeleteDue(ctx context.Context, rentalID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	old := domain.Due{ID: id}
	err = tx.QueryRowContext(ctx, `
		SELECT amount, date, description FROM rental_dues
		WHERE rental_id = $1 AND id = $2 FOR UPDATE`, rentalID, id).
		Scan(&old.Amount, &old.Date, &old.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrDueNotFound
	}
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM rental_dues WHERE rental_id = $1 AND id = $2`, rentalID, id); err != nil {
		return err
	}
	if err := bumpDues(ctx, tx, rentalID, old.Amount.Neg()); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *ledgerRepository) ListDuesPage(ctx context.Context, rentalID string, cursor *domain.Cursor) ([]domain.Due, bool, error) {
	rows, err := pageQuery(ctx, r.db, "rental_dues", "id, amount, date, description", rentalID, cursor)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var dues []domain.Due
	for rows.Next() {
		var d domain.Due
		if err := rows.Scan(&d.ID, &d.Amount, &d.Date, &d.Description); err != nil {
			return nil, false, err
		}
		dues = append(dues, d)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	hasMore := len(dues) > domain.PageSize
	if hasMore {
		dues = dues[:domain.PageSize]
	}
	return dues, hasMore, nil
}

func (r *ledgerRepository) ListAllDues(ctx context.Context, rentalID string) ([]domain.Due, error) {
	query := `SELECT id, amount, date, description FROM rental_dues
	          WHERE rental_id = $1 ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, rentalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dues []domain.Due
	for rows.Next() {
		var d domain.Due
		if err := rows.Scan(&d.ID, &d.Amount, &d.Date, &d.Description); err != nil {
			return nil, err
		}
		dues = append(dues, d)
	}
	return dues, rows.Err()
}

// pageQuery fetches one page plus one extra row; the caller truncates
// and derives hasMore. Ordering is date DESC with id DESC as the
// tie-break so same-date entries paginate deterministically.
func pageQuery(ctx context.Context, db *sql.DB, table, columns, rentalID string, cursor *domain.Cursor) (*sql.Rows, error) {
	if cursor == nil {
		query := `SELECT ` + columns + ` FROM ` + table + `
		          WHERE rental_id = $1 ORDER BY date DESC, id DESC LIMIT $2`
		return db.QueryContext(ctx, query, rentalID, domain.PageSize+1)
	}
	query := `SELECT ` + columns + ` FROM ` + table + `
	          WHERE rental_id = $1 AND (date, id) < ($2, $3) ORDER BY date DESC, id DESC LIMIT $4`
	return db.QueryContext(ctx, query, rentalID, cursor.Date, cursor.ID, domain.PageSize+1)
}

// DeleteAllEntries clears a rental's child rows ahead of deleting the
// rental itself. Deletes run in id-batches capped at domain.BatchLimit
// so one huge history never turns into one huge transaction.
func (r *ledgerRepository) DeleteAllEntries(ctx context.Context, rentalID string) error {
	for _, table := range []string{"rental_payments", "rental_expenses", "rental_dues"} {
		query := `DELETE FROM ` + table + ` WHERE rental_id = $1 AND id IN (
		          SELECT id FROM ` + table + ` WHERE rental_id = $1 ORDER BY id LIMIT $2)`
		for {
			res, err := r.db.ExecContext(ctx, query, rentalID, domain.BatchLimit)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				break
			}
		}
	}
	return nil
}
