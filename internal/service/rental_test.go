package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentledger-backend/internal/domain"
)

func validRentalInput() RentalInput {
	return RentalInput{
		AssetID:         "asset-1",
		ContactID:       "contact-1",
		Rate:            dec("500"),
		RateType:        domain.RateTypeMonthly,
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NextPaymentDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		BadgeColor:      domain.BadgeBlue,
		BadgeCharacter:  "A",
		Status:          domain.RentalStatusActive,
	}
}

func TestRentalService_CreateRental(t *testing.T) {
	ctx := context.Background()

	t.Run("StartsNormalizedWithZeroAggregates", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		assetRepo := new(MockAssetRepo)
		contactRepo := new(MockContactRepo)
		svc := NewRentalService(rentalRepo, assetRepo, contactRepo, new(MockLedgerRepo))

		assetRepo.On("GetByID", ctx, "owner", "asset-1").Return(&domain.Asset{ID: "asset-1"}, nil)
		contactRepo.On("GetByID", ctx, "owner", "contact-1").Return(&domain.Contact{ID: "contact-1"}, nil)
		rentalRepo.On("Create", ctx, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rt, err := svc.CreateRental(ctx, "owner", validRentalInput())
		require.NoError(t, err)
		assert.NotEmpty(t, rt.ID)
		assert.Equal(t, domain.DataVersionNormalized, rt.DataVersion, "new rentals never pass through the legacy format")
		assert.True(t, rt.TotalPayments.IsZero())
		assert.True(t, rt.NetIncome.IsZero())
	})

	t.Run("RejectsZeroRate", func(t *testing.T) {
		svc := NewRentalService(new(MockRentalRepo), new(MockAssetRepo), new(MockContactRepo), new(MockLedgerRepo))
		in := validRentalInput()
		in.Rate = dec("0")
		_, err := svc.CreateRental(ctx, "owner", in)
		assert.ErrorIs(t, err, ErrInvalidRate)
	})

	t.Run("RejectsUnknownAsset", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		assetRepo := new(MockAssetRepo)
		svc := NewRentalService(rentalRepo, assetRepo, new(MockContactRepo), new(MockLedgerRepo))

		assetRepo.On("GetByID", ctx, "owner", "asset-1").Return(nil, domain.ErrAssetNotFound)

		_, err := svc.CreateRental(ctx, "owner", validRentalInput())
		assert.ErrorIs(t, err, domain.ErrAssetNotFound)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsMultiCharacterBadge", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		svc := NewRentalService(rentalRepo, new(MockAssetRepo), new(MockContactRepo), new(MockLedgerRepo))
		in := validRentalInput()
		in.BadgeCharacter = "AB"
		_, err := svc.CreateRental(ctx, "owner", in)
		assert.ErrorIs(t, err, ErrInvalidBadgeCharacter)
		rentalRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsBadBadgeColor", func(t *testing.T) {
		svc := NewRentalService(new(MockRentalRepo), new(MockAssetRepo), new(MockContactRepo), new(MockLedgerRepo))
		in := validRentalInput()
		in.BadgeColor = "magenta"
		_, err := svc.CreateRental(ctx, "owner", in)
		assert.ErrorIs(t, err, ErrInvalidBadgeColor)
	})
}

func TestRentalService_DeleteRental(t *testing.T) {
	ctx := context.Background()

	t.Run("DrainsLedgerBeforeRentalRow", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewRentalService(rentalRepo, new(MockAssetRepo), new(MockContactRepo), ledgerRepo)

		rentalRepo.On("GetByID", ctx, "owner", "r1").Return(normalizedRental("owner", "r1"), nil)
		ledgerRepo.On("DeleteAllEntries", ctx, "r1").Return(nil)
		rentalRepo.On("Delete", ctx, "r1").Return(nil)

		require.NoError(t, svc.DeleteRental(ctx, "owner", "r1"))
		ledgerRepo.AssertExpectations(t)
		rentalRepo.AssertExpectations(t)
	})

	t.Run("ForeignRentalInvisible", func(t *testing.T) {
		rentalRepo := new(MockRentalRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewRentalService(rentalRepo, new(MockAssetRepo), new(MockContactRepo), ledgerRepo)

		rentalRepo.On("GetByID", ctx, "intruder", "r1").Return(nil, domain.ErrRentalNotFound)

		err := svc.DeleteRental(ctx, "intruder", "r1")
		assert.ErrorIs(t, err, domain.ErrRentalNotFound)
		ledgerRepo.AssertNotCalled(t, "DeleteAllEntries", mock.Anything, mock.Anything)
	})
}
