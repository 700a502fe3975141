package service

import (
	"context"

	"github.com/google/uuid"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository"
)

type migrationService struct {
	migrationRepo repository.MigrationRepository
	rentalRepo    repository.RentalRepository
}

func NewMigrationService(migrationRepo repository.MigrationRepository, rentalRepo repository.RentalRepository) MigrationService {
	return &migrationService{migrationRepo: migrationRepo, rentalRepo: rentalRepo}
}

func (s *migrationService) ListUnmigrated(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	return s.rentalRepo.ListUnmigrated(ctx, ownerID)
}

// MigrateRental converts one rental's embedded ledger into child rows.
// The worklist is written in chunks no larger than domain.BatchLimit,
// each in its own transaction; the rental is stamped normalized only by
// the trailing Finalize, so an interrupted run leaves it legacy and
// safely re-runnable.
func (s *migrationService) MigrateRental(ctx context.Context, ownerID, rentalID string) error {
	rt, err := s.rentalRepo.GetByID(ctx, ownerID, rentalID)
	if err != nil {
		return err
	}
	if rt.Normalized() {
		logger.Debug("rental already migrated", "rental_id", rentalID)
		return nil
	}

	ledger, err := s.migrationRepo.GetLegacyLedger(ctx, rentalID)
	if err != nil {
		return err
	}

	worklist := buildWorklist(ledger)
	for start := 0; start < len(worklist); start += domain.BatchLimit {
		end := start + domain.BatchLimit
		if end > len(worklist) {
			end = len(worklist)
		}
		if err := s.migrationRepo.WriteChunk(ctx, rentalID, worklist[start:end]); err != nil {
			return err
		}
	}

	totals := domain.ComputeTotals(ledger.Payments, ledger.Expenses, ledger.Dues)
	if err := s.migrationRepo.Finalize(ctx, rentalID, totals); err != nil {
		return err
	}
	logger.Info("rental migrated", "rental_id", rentalID, "entries", len(worklist),
		"total_payments", totals.TotalPayments, "net_income", totals.NetIncome)
	return nil
}

// MigrateAll runs the owner's pending rentals sequentially and halts at
// the first failure. Rentals migrated before the failure stay migrated.
func (s *migrationService) MigrateAll(ctx context.Context, ownerID string) ([]string, error) {
	pending, err := s.rentalRepo.ListUnmigrated(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	migrated := make([]string, 0, len(pending))
	for _, rt := range pending {
		if err := s.MigrateRental(ctx, ownerID, rt.ID); err != nil {
			return migrated, &domain.PartialMigrationError{
				RentalID: rt.ID,
				Migrated: migrated,
				Err:      err,
			}
		}
		migrated = append(migrated, rt.ID)
	}
	return migrated, nil
}

// buildWorklist flattens the decoded legacy ledger into tagged items.
// Entries that never had an id get one here so the chunk upserts have a
// stable key.
func buildWorklist(ledger *domain.LegacyLedger) []domain.MigrationItem {
	items := make([]domain.MigrationItem, 0, len(ledger.Payments)+len(ledger.Expenses)+len(ledger.Dues))
	for i := range ledger.Payments {
		p := ledger.Payments[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		items = append(items, domain.MigrationItem{Kind: domain.KindPayment, Payment: &p})
	}
	for i := range ledger.Expenses {
		e := ledger.Expenses[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		items = append(items, domain.MigrationItem{Kind: domain.KindExpense, Expense: &e})
	}
	for i := range ledger.Dues {
		d := ledger.Dues[i]
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		items = append(items, domain.MigrationItem{Kind: domain.KindDue, Due: &d})
	}
	return items
}
