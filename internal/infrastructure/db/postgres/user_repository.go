package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	userModel := userModelFromEntity(user)
	if err := r.db.WithContext(ctx).Create(userModel).Error; err != nil {
		return nil, apperrors.ConflictFromDB(err)
	}
	return r.FindByID(ctx, userModel.ID)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, email, url string) (*entities.User, error) {
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Update("avatar", url).Error
	if err != nil {
		return nil, err
	}
	return r.FindByEmail(ctx, email)
}

func (r *UserRepository) ConfirmEmail(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Update("confirmed", true).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, email, hashedPassword string) error {
	return r.db.WithContext(ctx).Model(&UserModel{}).Where("email = ?", email).Update("hashed_password", hashedPassword).Error
}

func (r *UserRepository) List(ctx context.Context) ([]entities.User, error) {
	var userModels []UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&userModels).Error; err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, *userModels[i].toEntity())
	}
	return users, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*entities.User, error) {
	var userModel UserModel
	if err := r.db.WithContext(ctx).Where(query, arg).First(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return userModel.toEntity(), nil
}
