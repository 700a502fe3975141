package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"

	"rentledger-backend/internal/domain"
	"rentledger-backend/internal/logger"
	"rentledger-backend/internal/repository"
	"rentledger-backend/internal/storage"
)

type contactService struct {
	contactRepo repository.ContactRepository
	store       storage.Storage
}

func NewContactService(contactRepo repository.ContactRepository, store storage.Storage) ContactService {
	return &contactService{contactRepo: contactRepo, store: store}
}

func (s *contactService) CreateContact(ctx context.Context, ownerID string, in ContactInput) (*domain.Contact, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	c := &domain.Contact{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Name:           in.Name,
		Phone:          in.Phone,
		Address:        in.Address,
		RelativeName:   in.RelativeName,
		AlternatePhone: in.AlternatePhone,
		Note:           in.Note,
		IDCard1:        in.IDCard1,
		IDCard2:        in.IDCard2,
	}
	if err := s.contactRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *contactService) GetContact(ctx context.Context, ownerID, id string) (*domain.Contact, error) {
	return s.contactRepo.GetByID(ctx, ownerID, id)
}

func (s *contactService) ListContacts(ctx context.Context, ownerID string) ([]domain.Contact, error) {
	return s.contactRepo.ListByOwner(ctx, ownerID)
}

func (s *contactService) UpdateContact(ctx context.Context, ownerID, id string, in ContactInput) (*domain.Contact, error) {
	if in.Name == "" {
		return nil, ErrMissingName
	}
	c, err := s.contactRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	old := c.Photos()

	c.Name = in.Name
	c.Phone = in.Phone
	c.Address = in.Address
	c.RelativeName = in.RelativeName
	c.AlternatePhone = in.AlternatePhone
	c.Note = in.Note
	c.IDCard1 = in.IDCard1
	c.IDCard2 = in.IDCard2
	if err := s.contactRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	s.removeOrphanedPhotos(ctx, old, c.Photos())
	return c, nil
}

func (s *contactService) DeleteContact(ctx context.Context, ownerID, id string) error {
	c, err := s.contactRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.contactRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.removeOrphanedPhotos(ctx, c.Photos(), nil)
	return nil
}

func (s *contactService) UploadPhoto(ctx context.Context, ownerID, filename, contentType string, data io.Reader, size int64) (*domain.Photo, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString(), path.Base(filename))
	key := path.Join("images", ownerID, name)
	url, err := s.store.Upload(ctx, key, contentType, data, size)
	if err != nil {
		return nil, err
	}
	return &domain.Photo{Name: key, URL: url}, nil
}

// removeOrphanedPhotos deletes blobs that were referenced before the
// change and no longer are. Best effort: a failed blob delete is logged
// and never fails the contact write.
func (s *contactService) removeOrphanedPhotos(ctx context.Context, before, after []domain.Photo) {
	kept := make(map[string]bool, len(after))
	for _, p := range after {
		kept[p.Name] = true
	}
	for _, p := range before {
		if kept[p.Name] || p.Name == "" {
			continue
		}
		if err := s.store.Delete(ctx, p.Name); err != nil {
			logger.Warn("orphaned photo cleanup failed", "key", p.Name, "error", err)
		}
	}
}
