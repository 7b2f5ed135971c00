package repositories

import (
	"context"

	"contacts-service/internal/domain/entities"
)

// UserRepository is the storage contract for user records. Lookup methods
// return (nil, nil) when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateAvatar(ctx context.Context, email, url string) (*entities.User, error)
	ConfirmEmail(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, email, hashedPassword string) error
	List(ctx context.Context) ([]entities.User, error)
}
