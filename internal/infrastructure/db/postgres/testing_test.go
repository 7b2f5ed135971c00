package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func newTestUser(t *testing.T, repo repositories.UserRepository, username string) *entities.User {
	t.Helper()
	user := entities.NewUser(username, username+"@example.com", "hashed-password", entities.RoleUser)
	created, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return created
}

var phoneSeq int

func newTestContact(firstName string) *entities.Contact {
	phoneSeq++
	return &entities.Contact{
		FirstName: firstName,
		LastName:  "Testenko",
		Email:     fmt.Sprintf("%s.%d@example.com", firstName, phoneSeq),
		Phone:     fmt.Sprintf("+38077%07d", phoneSeq),
	}
}

// dateWithBirthdayOffset returns a 1990 birth date whose month and day land
// offsetDays from today.
func dateWithBirthdayOffset(offsetDays int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, offsetDays)
	return time.Date(1990, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}
