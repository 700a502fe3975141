package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/repository"
)

var ErrMissingName = errors.New("name is required")

type assetService struct {
	assetRepo repository.AssetRepository
}

func NewAssetService(assetRepo repository.AssetRepository) AssetService {
	return &assetService{assetRepo: assetRepo}
}

func (s *assetService) CreateAsset(ctx context.Context, ownerID string, in AssetInput) (*domain.Asset, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	a := &domain.Asset{
		ID:                 uuid.NewString(),
		OwnerID:            ownerID,
		Name:               in.Name,
		Description:        in.Description,
		Category:           in.Category,
		RegistrationNumber: in.RegistrationNumber,
	}
	if err := s.assetRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assetService) GetAsset(ctx context.Context, ownerID, id string) (*domain.Asset, error) {
	return s.assetRepo.GetByID(ctx, ownerID, id)
}

func (s *assetService) ListAssets(ctx context.Context, ownerID string) ([]domain.Asset, error) {
	return s.assetRepo.ListByOwner(ctx, ownerID)
}

func (s *assetService) UpdateAsset(ctx context.Context, ownerID, id string, in AssetInput) (*domain.Asset, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	a, err := s.assetRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	a.Name = in.Name
	a.Description = in.Description
	a.Category = in.Category
	a.RegistrationNumber = in.RegistrationNumber
	if err := s.assetRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assetService) DeleteAsset(ctx context.Context, ownerID, id string) error {
	return s.assetRepo.Delete(ctx, ownerID, id)
}
