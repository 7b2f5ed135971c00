package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens a gorm session pool against the configured Postgres DSN.
func Connect(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &ContactModel{})
}
