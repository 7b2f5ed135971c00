package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

type ContactRepository struct {
	mu       sync.RWMutex
	nextID   uint
	contacts map[uint]*entities.Contact

	// now is swappable so birthday-window tests can pin the reference day.
	now func() time.Time
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{
		contacts: make(map[uint]*entities.Contact),
		now:      time.Now,
	}
}

var _ repositories.ContactRepository = (*ContactRepository)(nil)

func (r *ContactRepository) List(_ context.Context, userID uint, filter repositories.ContactFilter) ([]entities.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.owned(userID, func(c *entities.Contact) bool {
		if filter.FirstName != "" && c.FirstName != filter.FirstName {
			return false
		}
		if filter.LastName != "" && c.LastName != filter.LastName {
			return false
		}
		if filter.Email != "" && c.Email != filter.Email {
			return false
		}
		return true
	})

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			return []entities.Contact{}, nil
		}
		matched = matched[filter.Skip:]
	}
	if limit := filter.ClampedLimit(); len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (r *ContactRepository) ListUpcomingBirthdays(_ context.Context, userID uint) ([]entities.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.now()
	return r.owned(userID, func(c *entities.Contact) bool {
		if c.DateOfBirth == nil {
			return false
		}
		return ageInYears(*c.DateOfBirth, today.AddDate(0, 0, 7)) > ageInYears(*c.DateOfBirth, today)
	}), nil
}

func (r *ContactRepository) FindByID(_ context.Context, userID, contactID uint) (*entities.Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.find(userID, contactID), nil
}

func (r *ContactRepository) Create(_ context.Context, userID uint, contact *entities.Contact) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUniqueness(contact.Email, contact.Phone, 0); err != nil {
		return nil, err
	}

	r.nextID++
	stored := *contact
	stored.ID = r.nextID
	stored.UserID = userID
	r.contacts[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

func (r *ContactRepository) Update(_ context.Context, userID, contactID uint, update entities.ContactUpdate) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.find(userID, contactID)
	if existing == nil {
		return nil, nil
	}

	next := *r.contacts[contactID]
	if update.FirstName != nil {
		next.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		next.LastName = *update.LastName
	}
	if update.Email != nil {
		next.Email = *update.Email
	}
	if update.Phone != nil {
		next.Phone = *update.Phone
	}
	if update.DateOfBirth != nil {
		dob := *update.DateOfBirth
		next.DateOfBirth = &dob
	}

	if err := r.checkUniqueness(next.Email, next.Phone, contactID); err != nil {
		return nil, err
	}

	r.contacts[contactID] = &next
	copied := next
	return &copied, nil
}

func (r *ContactRepository) Delete(_ context.Context, userID, contactID uint) (*entities.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.find(userID, contactID)
	if existing == nil {
		return nil, nil
	}
	delete(r.contacts, contactID)
	return existing, nil
}

func (r *ContactRepository) Seed(_ context.Context, userID uint, contacts []entities.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range contacts {
		if err := r.checkUniqueness(contacts[i].Email, contacts[i].Phone, 0); err != nil {
			return err
		}
	}
	for i := range contacts {
		r.nextID++
		stored := contacts[i]
		stored.ID = r.nextID
		stored.UserID = userID
		r.contacts[stored.ID] = &stored
	}
	return nil
}

// SetNow pins the reference time for the birthday window.
func (r *ContactRepository) SetNow(now func() time.Time) {
	r.mu.Lock()
	r.now = now
	r.mu.Unlock()
}

func (r *ContactRepository) owned(userID uint, match func(*entities.Contact) bool) []entities.Contact {
	contacts := make([]entities.Contact, 0)
	for _, contact := range r.contacts {
		if contact.UserID == userID && match(contact) {
			contacts = append(contacts, *contact)
		}
	}
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	return contacts
}

func (r *ContactRepository) find(userID, contactID uint) *entities.Contact {
	contact, ok := r.contacts[contactID]
	if !ok || contact.UserID != userID {
		return nil
	}
	copied := *contact
	return &copied
}

func (r *ContactRepository) checkUniqueness(email, phone string, selfID uint) error {
	for _, contact := range r.contacts {
		if contact.ID == selfID {
			continue
		}
		if email != "" && contact.Email == email {
			return &apperrors.ConflictError{Field: "email", Value: email}
		}
		if phone != "" && contact.Phone == phone {
			return &apperrors.ConflictError{Field: "phone", Value: phone}
		}
	}
	return nil
}

// ageInYears counts completed years from birth to the given day; the count
// increments exactly on the birthday.
func ageInYears(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	anniversary := birth.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}
