package seed

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v6"

	"contacts-service/internal/domain/entities"
)

// Ukrainian mobile operator codes, matching the phone format the service
// validates.
var opCodes = []string{"77", "93", "66", "73", "63", "67", "50"}

// Contacts generates count synthetic contacts with unique emails and phone
// numbers and adult-range birth dates. The batch is self-consistent; clashes
// with already stored rows still surface as storage conflicts.
func Contacts(count int) []entities.Contact {
	contacts := make([]entities.Contact, 0, count)
	seenEmails := make(map[string]struct{}, count)
	seenPhones := make(map[string]struct{}, count)

	for i := 0; i < count; i++ {
		firstName := clampName(gofakeit.FirstName())
		lastName := gofakeit.LastName()
		dob := birthDate()
		contacts = append(contacts, entities.Contact{
			FirstName:   firstName,
			LastName:    lastName,
			Email:       uniqueEmail(firstName, lastName, seenEmails),
			Phone:       uniquePhone(seenPhones),
			DateOfBirth: &dob,
		})
	}
	return contacts
}

func uniqueEmail(firstName, lastName string, seen map[string]struct{}) string {
	for {
		email := strings.ToLower(fmt.Sprintf("%s.%s.%s@%s",
			firstName, lastName, gofakeit.DigitN(5), gofakeit.DomainName()))
		if _, dup := seen[email]; !dup {
			seen[email] = struct{}{}
			return email
		}
	}
}

func uniquePhone(seen map[string]struct{}) string {
	for {
		phone := fmt.Sprintf("+380%s%s", gofakeit.RandomString(opCodes), gofakeit.DigitN(7))
		if _, dup := seen[phone]; !dup {
			seen[phone] = struct{}{}
			return phone
		}
	}
}

// birthDate returns a random date of birth for an age between 18 and 90.
func birthDate() time.Time {
	age := gofakeit.Number(18, 90)
	days := gofakeit.Number(0, 364)
	return time.Now().UTC().AddDate(-age, 0, -days).Truncate(24 * time.Hour)
}

func clampName(name string) string {
	if utf8.RuneCountInString(name) < 2 {
		return name + name
	}
	if utf8.RuneCountInString(name) > 25 {
		runes := []rune(name)
		return string(runes[:25])
	}
	return name
}
