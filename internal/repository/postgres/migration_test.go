package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentledger-backend/internal/domain"
)

func TestNormalizeLegacy(t *testing.T) {
	t.Run("Array", func(t *testing.T) {
		raw := []byte(`[
			{"id": "a", "amount": "100", "date": "2024-01-15", "status": "paid"},
			{"id": "b", "amount": "50", "date": "2024-02-15", "status": "pending"}
		]`)
		entries, err := normalizeLegacy(raw)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].ID)
		assert.True(t, entries[0].Amount.Equal(dec("100")))
		assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), entries[0].Date.Time)
	})

	t.Run("KeyedMap", func(t *testing.T) {
		raw := []byte(`{
			"k2": {"amount": "50", "date": "2024-02-15"},
			"k1": {"id": "own-id", "amount": "100", "date": "2024-01-15"}
		}`)
		entries, err := normalizeLegacy(raw)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		// Keys are sorted; an entry without an embedded id inherits its key.
		assert.Equal(t, "own-id", entries[0].ID)
		assert.Equal(t, "k2", entries[1].ID)
	})

	t.Run("TimestampDates", func(t *testing.T) {
		raw := []byte(`[{"id": "a", "amount": "10", "date": "2024-01-15T10:30:00Z"}]`)
		entries, err := normalizeLegacy(raw)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, 2024, entries[0].Date.Year())
	})

	t.Run("NullAndEmpty", func(t *testing.T) {
		for _, raw := range [][]byte{nil, []byte(""), []byte("null")} {
			entries, err := normalizeLegacy(raw)
			require.NoError(t, err)
			assert.Nil(t, entries)
		}
	})

	t.Run("BadDate", func(t *testing.T) {
		_, err := normalizeLegacy([]byte(`[{"id": "a", "amount": "10", "date": "15/01/2024"}]`))
		assert.Error(t, err)
	})
}

func TestMigrationRepository_GetLegacyLedger(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMigrationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		payments := `[{"id": "p1", "amount": "100", "date": "2024-01-15", "status": "paid"},
		              {"id": "p2", "amount": "50", "date": "2024-02-15", "status": "bogus"}]`
		expenses := `{"e1": {"amount": "30", "date": "2024-01-20", "description": "repair"}}`

		mock.ExpectQuery("SELECT payments, expenses, dues, data_version FROM rentals").
			WithArgs("r1").
			WillReturnRows(sqlmock.NewRows([]string{"payments", "expenses", "dues", "data_version"}).
				AddRow([]byte(payments), []byte(expenses), nil, nil))

		ledger, err := repo.GetLegacyLedger(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, "r1", ledger.RentalID)
		assert.Equal(t, 0, ledger.DataVersion)
		require.Len(t, ledger.Payments, 2)
		assert.Equal(t, domain.PaymentStatusPaid, ledger.Payments[0].Status)
		assert.Equal(t, domain.PaymentStatusPending, ledger.Payments[1].Status, "unknown status falls back to pending")
		require.Len(t, ledger.Expenses, 1)
		assert.Equal(t, "e1", ledger.Expenses[0].ID)
		assert.Empty(t, ledger.Dues)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RentalMissing", func(t *testing.T) {
		mock.ExpectQuery("SELECT payments, expenses, dues, data_version FROM rentals").
			WithArgs("gone").
			WillReturnRows(sqlmock.NewRows([]string{"payments", "expenses", "dues", "data_version"}))

		_, err := repo.GetLegacyLedger(ctx, "gone")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
	})
}

func TestMigrationRepository_WriteChunk(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMigrationRepository(db)
	ctx := context.Background()
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("MixedKindsOneTransaction", func(t *testing.T) {
		items := []domain.MigrationItem{
			{Kind: domain.KindPayment, Payment: &domain.Payment{ID: "p1", Amount: dec("100"), Date: date, Status: domain.PaymentStatusPaid}},
			{Kind: domain.KindExpense, Expense: &domain.Expense{ID: "e1", Amount: dec("30"), Date: date}},
			{Kind: domain.KindDue, Due: &domain.Due{ID: "d1", Amount: dec("20"), Date: date}},
		}

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO rental_payments").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rental_expenses").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO rental_dues").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.WriteChunk(ctx, "r1", items))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("OversizedChunkRefused", func(t *testing.T) {
		items := make([]domain.MigrationItem, domain.BatchLimit+1)
		for i := range items {
			items[i] = domain.MigrationItem{Kind: domain.KindDue, Due: &domain.Due{ID: "d", Amount: dec("1")}}
		}
		err := repo.WriteChunk(ctx, "r1", items)
		assert.Error(t, err)
	})
}

func TestMigrationRepository_Finalize(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMigrationRepository(db)
	ctx := context.Background()

	totals := domain.AggregateTotals{
		TotalPayments: dec("100"),
		TotalExpenses: dec("30"),
		TotalDues:     dec("20"),
		NetIncome:     dec("70"),
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals").
			WithArgs(totals.TotalPayments, totals.TotalExpenses, totals.TotalDues, totals.NetIncome,
				domain.DataVersionNormalized, "r1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Finalize(ctx, "r1", totals))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RentalMissing", func(t *testing.T) {
		mock.ExpectExec("UPDATE rentals").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Finalize(ctx, "gone", totals), domain.ErrRentalNotFound)
	})
}
