package services

import (
	"context"
	"io"
	"log"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
	"contacts-service/internal/infrastructure/upload"
)

// UserService covers the user-profile operations outside the auth flows.
type UserService struct {
	users    repositories.UserRepository
	cache    SessionCache
	uploader upload.Uploader
}

func NewUserService(users repositories.UserRepository, cache SessionCache, uploader upload.Uploader) *UserService {
	return &UserService{users: users, cache: cache, uploader: uploader}
}

// UpdateAvatar uploads the image to the external host and stores the
// resulting URL on the user.
func (s *UserService) UpdateAvatar(ctx context.Context, user *entities.User, file io.Reader) (*entities.User, error) {
	url, err := s.uploader.Upload(ctx, file, user.Username)
	if err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateAvatar(ctx, user.Email, url)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.cache.Put(ctx, updated); err != nil {
		log.Printf("failed to refresh cached session for %q: %v", updated.Username, err)
	}
	return updated, nil
}

// List returns all users; the handler gates it behind the admin role.
func (s *UserService) List(ctx context.Context) ([]entities.User, error) {
	return s.users.List(ctx)
}
