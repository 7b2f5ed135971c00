package repositories

import (
	"context"

	"contacts-service/internal/domain/entities"
)

const (
	// ListLimitFloor is the smallest page size List will serve.
	ListLimitFloor = 10
	// ListLimitCeiling is the largest page size List will serve.
	ListLimitCeiling = 100
)

// ContactFilter narrows List results. String filters are exact-match and
// combined with AND; empty strings mean "no filter".
type ContactFilter struct {
	Skip      int
	Limit     int
	FirstName string
	LastName  string
	Email     string
}

// ClampedLimit returns the requested limit forced into
// [ListLimitFloor, ListLimitCeiling].
func (f ContactFilter) ClampedLimit() int {
	limit := f.Limit
	if limit < ListLimitFloor {
		limit = ListLimitFloor
	}
	if limit > ListLimitCeiling {
		limit = ListLimitCeiling
	}
	return limit
}

// ContactRepository is the storage contract for contacts. Every operation is
// scoped to the owning user; lookups outside that scope behave as absent.
type ContactRepository interface {
	List(ctx context.Context, userID uint, filter ContactFilter) ([]entities.Contact, error)
	// ListUpcomingBirthdays returns the owner's contacts whose birthday falls
	// within the next 7 days, including across a year boundary.
	ListUpcomingBirthdays(ctx context.Context, userID uint) ([]entities.Contact, error)
	FindByID(ctx context.Context, userID, contactID uint) (*entities.Contact, error)
	Create(ctx context.Context, userID uint, contact *entities.Contact) (*entities.Contact, error)
	Update(ctx context.Context, userID, contactID uint, update entities.ContactUpdate) (*entities.Contact, error)
	// Delete removes the contact and returns its prior state, or (nil, nil)
	// when it does not exist for this owner.
	Delete(ctx context.Context, userID, contactID uint) (*entities.Contact, error)
	// Seed inserts the given contacts for the owner as a single batch.
	Seed(ctx context.Context, userID uint, contacts []entities.Contact) error
}
