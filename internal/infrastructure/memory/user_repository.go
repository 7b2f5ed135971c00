// Package memory holds in-memory implementations of the repository
// interfaces. They mirror the relational semantics (owner scoping,
// uniqueness conflicts, absent -> nil) and back the service-level tests.
package memory

import (
	"context"
	"sync"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

type UserRepository struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]*entities.User
}

func NewUserRepository() repositories.UserRepository {
	return &UserRepository{users: make(map[uint]*entities.User)}
}

func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, &apperrors.ConflictError{Field: "username", Value: user.Username}
		}
		if user.Email != "" && existing.Email == user.Email {
			return nil, &apperrors.ConflictError{Field: "email", Value: user.Email}
		}
	}

	r.nextID++
	stored := *user
	stored.ID = r.nextID
	r.users[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *UserRepository) FindByID(_ context.Context, id uint) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	return r.findBy(func(u *entities.User) bool { return u.Username == username })
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	return r.findBy(func(u *entities.User) bool { return u.Email != "" && u.Email == email })
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*entities.User, error) {
	r.mu.Lock()
	for _, user := range r.users {
		if user.Email == email {
			user.Avatar = url
		}
	}
	r.mu.Unlock()
	return r.FindByEmail(ctx, email)
}

func (r *UserRepository) ConfirmEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			user.Confirmed = true
		}
	}
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, email, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			user.HashedPassword = hashedPassword
		}
	}
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]entities.User, 0, len(r.users))
	for id := uint(1); id <= r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *UserRepository) findBy(match func(*entities.User) bool) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if match(user) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}
