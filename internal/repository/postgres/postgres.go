package postgres

import (
	"database/sql"

	"rentledger-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.AssetRepository
	repository.ContactRepository
	repository.RentalRepository
	repository.LedgerRepository
	repository.MigrationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		UserRepository:      NewUserRepository(db),
		AssetRepository:     NewAssetRepository(db),
		ContactRepository:   NewContactRepository(db),
		RentalRepository:    NewRentalRepository(db),
		LedgerRepository:    NewLedgerRepository(db),
		MigrationRepository: NewMigrationRepository(db),
	}
}
