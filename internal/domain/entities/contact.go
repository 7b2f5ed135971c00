package entities

import (
	"net/mail"
	"regexp"
	"time"
	"unicode/utf8"
)

// phonePattern accepts E.164-style numbers: a leading plus, then 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{6,14}$`)

// minDateOfBirth is the oldest accepted birth date.
var minDateOfBirth = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

type Contact struct {
	ID          uint       `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Phone       string     `json:"phone"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	UserID      uint       `json:"-"`
}

// ContactUpdate carries a partial field set; nil pointers leave the stored
// value untouched.
type ContactUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	DateOfBirth *time.Time
}

func (c *Contact) Validate() error {
	if err := validateFirstName(c.FirstName); err != nil {
		return err
	}
	if err := validatePhone(c.Phone); err != nil {
		return err
	}
	if c.Email != "" {
		if err := validateEmail(c.Email); err != nil {
			return err
		}
	}
	if c.DateOfBirth != nil {
		if err := validateDateOfBirth(*c.DateOfBirth); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks only the fields the update actually carries.
func (u *ContactUpdate) Validate() error {
	if u.FirstName != nil {
		if err := validateFirstName(*u.FirstName); err != nil {
			return err
		}
	}
	if u.Phone != nil {
		if err := validatePhone(*u.Phone); err != nil {
			return err
		}
	}
	if u.Email != nil && *u.Email != "" {
		if err := validateEmail(*u.Email); err != nil {
			return err
		}
	}
	if u.DateOfBirth != nil {
		if err := validateDateOfBirth(*u.DateOfBirth); err != nil {
			return err
		}
	}
	return nil
}

func validateFirstName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < 2 || n > 25 {
		return ValidationError("first_name must be between 2 and 25 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return ValidationError("phone must be a valid international number, e.g. +380771234567")
	}
	return nil
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return ValidationError("email must be a valid address")
	}
	return nil
}

func validateDateOfBirth(d time.Time) error {
	if !d.Before(time.Now()) {
		return ValidationError("date_of_birth must be in the past")
	}
	if d.Before(minDateOfBirth) {
		return ValidationError("date_of_birth must not be before 1900-01-01")
	}
	return nil
}
