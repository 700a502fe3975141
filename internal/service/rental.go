package service

import (
	"context"
	"errors"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository"
)

var (
	ErrInvalidRate           = errors.New("rate must be positive")
	ErrInvalidRateType       = errors.New("rate type must be daily or monthly")
	ErrInvalidBadgeColor     = errors.New("unknown badge color")
	ErrInvalidBadgeCharacter = errors.New("badge character must be a single character")
	ErrInvalidRentStatus     = errors.New("rental status must be active or ended")
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	assetRepo   repository.AssetRepository
	contactRepo repository.ContactRepository
	ledgerRepo  repository.LedgerRepository
}

func NewRentalService(rentalRepo repository.RentalRepository, assetRepo repository.AssetRepository,
	contactRepo repository.ContactRepository, ledgerRepo repository.LedgerRepository) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		assetRepo:   assetRepo,
		contactRepo: contactRepo,
		ledgerRepo:  ledgerRepo,
	}
}

func (s *rentalService) validate(ctx context.Context, ownerID string, in RentalInput) error {
	if !in.Rate.IsPositive() {
		return ErrInvalidRate
	}
	if !in.RateType.Valid() {
		return ErrInvalidRateType
	}
	if !in.BadgeColor.Valid() {
		return ErrInvalidBadgeColor
	}
	if utf8.RuneCountInString(in.BadgeCharacter) != 1 {
		return ErrInvalidBadgeCharacter
	}
	if !in.Status.Valid() {
		return ErrInvalidRentStatus
	}
	if _, err := s.assetRepo.GetByID(ctx, ownerID, in.AssetID); err != nil {
		return err
	}
	if _, err := s.contactRepo.GetByID(ctx, ownerID, in.ContactID); err != nil {
		return err
	}
	return nil
}

// CreateRental starts a rental with zero aggregates and the normalized
// data version, so new rentals never pass through the legacy format.
func (s *rentalService) CreateRental(ctx context.Context, ownerID string, in RentalInput) (*domain.Rental, error) {
	if err := s.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}

	rt := &domain.Rental{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		AssetID:         in.AssetID,
		ContactID:       in.ContactID,
		Rate:            in.Rate,
		RateType:        in.RateType,
		StartDate:       in.StartDate,
		NextPaymentDate: in.NextPaymentDate,
		BadgeColor:      in.BadgeColor,
		BadgeCharacter:  in.BadgeCharacter,
		Status:          in.Status,
		TotalPayments:   decimal.Zero,
		TotalExpenses:   decimal.Zero,
		TotalDues:       decimal.Zero,
		NetIncome:       decimal.Zero,
		DataVersion:     domain.DataVersionNormalized,
	}
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		return nil, err
	}
	logger.Info("rental created", "rental_id", rt.ID, "owner_id", ownerID, "asset_id", rt.AssetID)
	return rt, nil
}

func (s *rentalService) GetRental(ctx context.Context, ownerID, id string) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, ownerID, id)
}

func (s *rentalService) ListRentals(ctx context.Context, ownerID string) ([]domain.Rental, error) {
	return s.rentalRepo.ListByOwner(ctx, ownerID)
}

func (s *rentalService) UpdateRental(ctx context.Context, ownerID, id string, in RentalInput) (*domain.Rental, error) {
	if err := s.validate(ctx, ownerID, in); err != nil {
		return nil, err
	}
	rt, err := s.rentalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	rt.AssetID = in.AssetID
	rt.ContactID = in.ContactID
	rt.Rate = in.Rate
	rt.RateType = in.RateType
	rt.StartDate = in.StartDate
	rt.NextPaymentDate = in.NextPaymentDate
	rt.BadgeColor = in.BadgeColor
	rt.BadgeCharacter = in.BadgeCharacter
	rt.Status = in.Status
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// DeleteRental removes the ledger child rows in bounded batches before
// dropping the rental row itself. A crash mid-way leaves the rental
// present with a partial ledger; re-running the delete completes it.
func (s *rentalService) DeleteRental(ctx context.Context, ownerID, id string) error {
	if _, err := s.rentalRepo.GetByID(ctx, ownerID, id); err != nil {
		return err
	}
	if err := s.ledgerRepo.DeleteAllEntries(ctx, id); err != nil {
		return err
	}
	if err := s.rentalRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("rental deleted", "rental_id", id, "owner_id", ownerID)
	return nil
}
