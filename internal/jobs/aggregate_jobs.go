package jobs

import (
	"context"

	"rentledger-backend/internal/logger"
)

// VerifyRentalAggregates recomputes every normalized rental's cached
// totals from its child tables and repairs rows that drifted. The
// aggregates are maintained transactionally, so a nonzero repair count
// here points at writes that bypassed the ledger path.
func (jr *JobRunner) VerifyRentalAggregates() {
	jr.runWithRecovery("VerifyRentalAggregates", func() {
		ctx := context.Background()

		query := `
			WITH computed AS (
				SELECT r.id,
				       COALESCE((SELECT SUM(p.amount) FROM rental_payments p
				                 WHERE p.rental_id = r.id AND p.status = 'paid'), 0) AS total_payments,
				       COALESCE((SELECT SUM(e.amount) FROM rental_expenses e
				                 WHERE e.rental_id = r.id), 0) AS total_expenses,
				       COALESCE((SELECT SUM(d.amount) FROM rental_dues d
				                 WHERE d.rental_id = r.id), 0) AS total_dues
				FROM rentals r
				WHERE r.data_version >= 2
			)
			UPDATE rentals r
			SET total_payments = c.total_payments,
			    total_expenses = c.total_expenses,
			    total_dues = c.total_dues,
			    net_income = c.total_payments - c.total_expenses
			FROM computed c
			WHERE r.id = c.id
			  AND (r.total_payments <> c.total_payments
			       OR r.total_expenses <> c.total_expenses
			       OR r.total_dues <> c.total_dues
			       OR r.net_income <> c.total_payments - c.total_expenses)
		`

		result, err := jr.db.ExecContext(ctx, query)
		if err != nil {
			logger.Error("Failed to verify rental aggregates", "error", err)
			return
		}

		repaired, _ := result.RowsAffected()
		if repaired > 0 {
			logger.Warn("Repaired drifted rental aggregates", "count", repaired)
		} else {
			logger.Info("All rental aggregates consistent")
		}
	})
}
