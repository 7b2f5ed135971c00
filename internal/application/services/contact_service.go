package services

import (
	"context"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
	"contacts-service/internal/infrastructure/seed"
)

// ContactService fronts the contact store; every operation is scoped to the
// authenticated owner.
type ContactService struct {
	contacts repositories.ContactRepository
}

func NewContactService(contacts repositories.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

func (s *ContactService) List(ctx context.Context, user *entities.User, filter repositories.ContactFilter) ([]entities.Contact, error) {
	return s.contacts.List(ctx, user.ID, filter)
}

func (s *ContactService) ListUpcomingBirthdays(ctx context.Context, user *entities.User) ([]entities.Contact, error) {
	return s.contacts.ListUpcomingBirthdays(ctx, user.ID)
}

func (s *ContactService) Get(ctx context.Context, user *entities.User, contactID uint) (*entities.Contact, error) {
	contact, err := s.contacts.FindByID(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, user *entities.User, contact *entities.Contact) (*entities.Contact, error) {
	if err := contact.Validate(); err != nil {
		return nil, err
	}
	return s.contacts.Create(ctx, user.ID, contact)
}

func (s *ContactService) Update(ctx context.Context, user *entities.User, contactID uint, update entities.ContactUpdate) (*entities.Contact, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}
	contact, err := s.contacts.Update(ctx, user.ID, contactID, update)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, user *entities.User, contactID uint) (*entities.Contact, error) {
	contact, err := s.contacts.Delete(ctx, user.ID, contactID)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

// Seed inserts count generated contacts for the owner as one batch.
func (s *ContactService) Seed(ctx context.Context, user *entities.User, count int) error {
	return s.contacts.Seed(ctx, user.ID, seed.Contacts(count))
}
