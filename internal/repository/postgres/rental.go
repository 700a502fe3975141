package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, owner_id, asset_id, contact_id, rate, rate_type, start_date, next_payment_date,
	badge_color, badge_character, status, total_payments, total_expenses, total_dues, net_income,
	COALESCE(data_version, 0), created_on`

func scanRental(s interface {
	Scan(dest ...interface{}) error
}) (*domain.Rental, error) {
	rt := &domain.Rental{}
	err := s.Scan(&rt.ID, &rt.OwnerID, &rt.AssetID, &rt.ContactID, &rt.Rate, &rt.RateType,
		&rt.StartDate, &rt.NextPaymentDate, &rt.BadgeColor, &rt.BadgeCharacter, &rt.Status,
		&rt.TotalPayments, &rt.TotalExpenses, &rt.TotalDues, &rt.NetIncome, &rt.DataVersion, &rt.CreatedOn)
	if err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	query := `INSERT INTO rentals (id, owner_id, asset_id, contact_id, rate, rate_type, start_date, next_payment_date,
	              badge_color, badge_character, status, total_payments, total_expenses, total_dues, net_income, data_version, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	rt.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.OwnerID, rt.AssetID, rt.ContactID, rt.Rate, rt.RateType,
		rt.StartDate, rt.NextPaymentDate, rt.BadgeColor, rt.BadgeCharacter, rt.Status,
		rt.TotalPayments, rt.TotalExpenses, rt.TotalDues, rt.NetIncome, rt.DataVersion, rt.CreatedOn)
	return err
}

func (r *rentalRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1 AND owner_id = $2`
	rt, err := scanRental(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRentalNotFound
	}
	return rt, err
}

func (r *rentalRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE owner_id = $1 ORDER BY created_on DESC`
	return r.list(ctx, query, ownerID)
}

func (r *rentalRepository) ListUnmigrated(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals
	          WHERE owner_id = $1 AND (data_version IS NULL OR data_version < 2) ORDER BY created_on`
	return r.list(ctx, query, ownerID)
}

func (r *rentalRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.Rental, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		rt, err := scanRental(rows)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, *rt)
	}
	return rentals, rows.Err()
}

// Update writes the descriptive fields only. Aggregates and
// data_version are owned by the ledger and migration repositories.
func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET asset_id = $1, contact_id = $2, rate = $3, rate_type = $4, start_date = $5,
	              next_payment_date = $6, badge_color = $7, badge_character = $8, status = $9
	          WHERE id = $10 AND owner_id = $11`
	res, err := r.db.ExecContext(ctx, query, rt.AssetID, rt.ContactID, rt.Rate, rt.RateType, rt.StartDate,
		rt.NextPaymentDate, rt.BadgeColor, rt.BadgeCharacter, rt.Status, rt.ID, rt.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}

func (r *rentalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM rentals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRentalNotFound
	}
	return nil
}
