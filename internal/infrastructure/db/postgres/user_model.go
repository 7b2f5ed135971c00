package postgres

import (
	"time"

	"contacts-service/internal/domain/entities"
)

type UserModel struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string  `gorm:"size:150;uniqueIndex;not null"`
	Email          *string `gorm:"size:255;uniqueIndex"`
	HashedPassword string  `gorm:"size:255;not null"`
	Role           string  `gorm:"size:10;not null;default:user"`
	Avatar         *string `gorm:"size:255"`
	Confirmed      bool    `gorm:"not null;default:false"`

	Contacts []ContactModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string {
	return "users"
}

func userModelFromEntity(user *entities.User) *UserModel {
	return &UserModel{
		ID:             user.ID,
		CreatedAt:      user.CreatedAt,
		UpdatedAt:      user.UpdatedAt,
		Username:       user.Username,
		Email:          optional(user.Email),
		HashedPassword: user.HashedPassword,
		Role:           string(user.Role),
		Avatar:         optional(user.Avatar),
		Confirmed:      user.Confirmed,
	}
}

func (m *UserModel) toEntity() *entities.User {
	return &entities.User{
		ID:             m.ID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
		Username:       m.Username,
		Email:          deref(m.Email),
		HashedPassword: m.HashedPassword,
		Role:           entities.Role(m.Role),
		Avatar:         deref(m.Avatar),
		Confirmed:      m.Confirmed,
	}
}

// optional maps empty strings to NULL so unique indexes on nullable columns
// do not collide on "".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
