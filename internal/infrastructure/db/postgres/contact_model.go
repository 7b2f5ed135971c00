package postgres

import (
	"time"

	"contacts-service/internal/domain/entities"
)

type ContactModel struct {
	ID          uint    `gorm:"primaryKey"`
	FirstName   string  `gorm:"size:25;not null"`
	LastName    *string `gorm:"size:255"`
	Email       *string `gorm:"size:255;uniqueIndex"`
	Phone       string  `gorm:"size:20;uniqueIndex;not null"`
	DateOfBirth *time.Time `gorm:"type:date"`
	UserID      uint       `gorm:"index;not null"`
}

func (ContactModel) TableName() string {
	return "contacts"
}

func contactModelFromEntity(userID uint, contact *entities.Contact) *ContactModel {
	return &ContactModel{
		ID:          contact.ID,
		FirstName:   contact.FirstName,
		LastName:    optional(contact.LastName),
		Email:       optional(contact.Email),
		Phone:       contact.Phone,
		DateOfBirth: contact.DateOfBirth,
		UserID:      userID,
	}
}

func (m *ContactModel) toEntity() *entities.Contact {
	return &entities.Contact{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    deref(m.LastName),
		Email:       deref(m.Email),
		Phone:       m.Phone,
		DateOfBirth: m.DateOfBirth,
		UserID:      m.UserID,
	}
}
