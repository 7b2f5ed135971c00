package entities

import (
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// Role enumerates the access levels a user can hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID             uint      `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	Avatar         string    `json:"avatar"`
	Confirmed      bool      `json:"confirmed"`
}

// NewUser builds an unconfirmed user carrying a still-plaintext password in
// HashedPassword; callers must HashPassword before persisting.
func NewUser(username, email, password string, role Role) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Username:       username,
		Email:          email,
		HashedPassword: password,
		Role:           role,
		Confirmed:      false,
	}
}

func (u *User) Validate() error {
	if u.Username == "" {
		return ValidationError("username must not be empty")
	}
	if utf8.RuneCountInString(u.Username) > 150 {
		return ValidationError("username must not exceed 150 characters")
	}
	if u.HashedPassword == "" {
		return ValidationError("password must not be empty")
	}
	if !u.Role.Valid() {
		return ValidationError("role must be either 'user' or 'admin'")
	}
	return nil
}

// HashPassword replaces the plaintext password with its bcrypt digest.
func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.HashedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hashedPassword)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored
// digest. A malformed digest simply fails the check.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) == nil
}

func (u *User) MarkConfirmed() {
	u.Confirmed = true
	u.UpdatedAt = time.Now()
}
