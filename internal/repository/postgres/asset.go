package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) repository.AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, a *domain.Asset) error {
	query := `INSERT INTO assets (id, owner_id, name, description, category, registration_number, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	a.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, a.ID, a.OwnerID, a.Name, a.Description, a.Category, a.RegistrationNumber, a.CreatedOn)
	return err
}

func (r *assetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Asset, error) {
	a := &domain.Asset{}
	query := `SELECT id, owner_id, name, description, category, registration_number, created_on
	          FROM assets WHERE id = $1 AND owner_id = $2`
	err := r.db.QueryRowContext(ctx, query, id, ownerID).
		Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.Category, &a.RegistrationNumber, &a.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *assetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	query := `SELECT id, owner_id, name, description, category, registration_number, created_on
	          FROM assets WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.ID, &a.OwnerID, &a.Name, &a.Description, &a.Category, &a.RegistrationNumber, &a.CreatedOn); err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func (r *assetRepository) Update(ctx context.Context, a *domain.Asset) error {
	query := `UPDATE assets SET name = $1, description = $2, category = $3, registration_number = $4
	          WHERE id = $5 AND owner_id = $6`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Description, a.Category, a.RegistrationNumber, a.ID, a.OwnerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *assetRepository) Delete(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assets WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}
