package apperrors

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrUnauthorized covers bad credentials, unverified accounts and any
	// token failure on the bearer path.
	ErrUnauthorized = errors.New("could not validate credentials")

	// ErrForbidden is returned when the authenticated user's role does not
	// allow the operation.
	ErrForbidden = errors.New("insufficient access rights")

	// ErrNotFound is returned when a record addressed by id does not exist
	// within the caller's scope.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken is returned for action tokens that fail signature,
	// expiry or claim checks.
	ErrInvalidToken = errors.New("invalid token")
)

// ConflictError reports a uniqueness violation, identifying the colliding
// column and value when the storage layer exposes them.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return "a database integrity error occurred, please check your input"
	}
	return fmt.Sprintf("The value '%s' for '%s' is already taken. Please use another one.", e.Value, e.Field)
}

// IsConflict reports whether err wraps a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

var (
	pgDuplicateKey     = regexp.MustCompile(`Key \((\w+)\)=\((.*?)\)`)
	sqliteDuplicateKey = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)
)

// ConflictFromDB inspects a storage-layer error and converts uniqueness
// violations into a ConflictError. Other errors pass through unchanged.
func ConflictFromDB(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") {
		if m := pgDuplicateKey.FindStringSubmatch(msg); m != nil {
			return &ConflictError{Field: m[1], Value: m[2]}
		}
		return &ConflictError{}
	}
	if m := sqliteDuplicateKey.FindStringSubmatch(msg); m != nil {
		return &ConflictError{Field: m[1]}
	}
	return err
}
