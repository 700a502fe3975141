package jobs

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rentledger-backend/internal/logger"
)

// SendPaymentDueReminders emails owners whose active rentals have a
// payment due today or earlier.
func (jr *JobRunner) SendPaymentDueReminders() {
	jr.runWithRecovery("SendPaymentDueReminders", func() {
		ctx := context.Background()

		query := `
			SELECT r.id, r.rate, r.next_payment_date,
			       u.email, u.name,
			       a.name AS asset_name
			FROM rentals r
			JOIN users u ON r.owner_id = u.id
			JOIN assets a ON r.asset_id = a.id
			WHERE r.status = 'active' AND r.next_payment_date <= NOW()
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query rentals with due payments", "error", err)
			return
		}
		defer rows.Close()

		sent := 0
		for rows.Next() {
			var rentalID, email, name, assetName string
			var rate decimal.Decimal
			var dueDate time.Time
			if err := rows.Scan(&rentalID, &rate, &dueDate, &email, &name, &assetName); err != nil {
				logger.Error("Failed to scan due rental", "error", err)
				continue
			}

			if err := jr.services.Email.SendPaymentDueReminder(ctx, email, name, assetName, rate, dueDate); err != nil {
				logger.Error("Failed to send payment reminder",
					"rental_id", rentalID, "email", email, "error", err)
				continue
			}
			sent++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Failed iterating due rentals", "error", err)
		}

		logger.Info("Payment due reminders sent", "count", sent)
	})
}
