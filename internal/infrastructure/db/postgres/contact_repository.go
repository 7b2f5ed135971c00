package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"contacts-service/internal/apperrors"
	"contacts-service/internal/domain/entities"
	"contacts-service/internal/domain/repositories"
)

// birthdayWithinWeek selects rows whose age in full years, computed 7 days
// from now, exceeds the age computed today. The age increments exactly on the
// birthday, so the comparison also holds across a year boundary.
const (
	birthdayWithinWeekPG = "date_part('year', age(date_of_birth - interval '7 days')) > date_part('year', age(date_of_birth))"

	birthdayWithinWeekSQLite = "(CAST(strftime('%Y', date('now', '+7 days')) AS INTEGER) - CAST(strftime('%Y', date_of_birth) AS INTEGER)" +
		" - (strftime('%m-%d', date('now', '+7 days')) < strftime('%m-%d', date_of_birth)))" +
		" > (CAST(strftime('%Y', 'now') AS INTEGER) - CAST(strftime('%Y', date_of_birth) AS INTEGER)" +
		" - (strftime('%m-%d', 'now') < strftime('%m-%d', date_of_birth)))"
)

type ContactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) repositories.ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) List(ctx context.Context, userID uint, filter repositories.ContactFilter) ([]entities.Contact, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.FirstName != "" {
		q = q.Where("first_name = ?", filter.FirstName)
	}
	if filter.LastName != "" {
		q = q.Where("last_name = ?", filter.LastName)
	}
	if filter.Email != "" {
		q = q.Where("email = ?", filter.Email)
	}
	if filter.Skip > 0 {
		q = q.Offset(filter.Skip)
	}
	q = q.Limit(filter.ClampedLimit())

	return r.collect(q)
}

func (r *ContactRepository) ListUpcomingBirthdays(ctx context.Context, userID uint) ([]entities.Contact, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date_of_birth IS NOT NULL").
		Where(r.birthdayPredicate())
	return r.collect(q)
}

func (r *ContactRepository) FindByID(ctx context.Context, userID, contactID uint) (*entities.Contact, error) {
	var contactModel ContactModel
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, contactID).First(&contactModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return contactModel.toEntity(), nil
}

func (r *ContactRepository) Create(ctx context.Context, userID uint, contact *entities.Contact) (*entities.Contact, error) {
	contactModel := contactModelFromEntity(userID, contact)
	contactModel.ID = 0
	if err := r.db.WithContext(ctx).Create(contactModel).Error; err != nil {
		return nil, apperrors.ConflictFromDB(err)
	}
	return contactModel.toEntity(), nil
}

func (r *ContactRepository) Update(ctx context.Context, userID, contactID uint, update entities.ContactUpdate) (*entities.Contact, error) {
	existing, err := r.FindByID(ctx, userID, contactID)
	if err != nil || existing == nil {
		return nil, err
	}

	changes := map[string]any{}
	if update.FirstName != nil {
		changes["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		changes["last_name"] = optional(*update.LastName)
	}
	if update.Email != nil {
		changes["email"] = optional(*update.Email)
	}
	if update.Phone != nil {
		changes["phone"] = *update.Phone
	}
	if update.DateOfBirth != nil {
		changes["date_of_birth"] = *update.DateOfBirth
	}
	if len(changes) > 0 {
		err = r.db.WithContext(ctx).Model(&ContactModel{}).
			Where("user_id = ? AND id = ?", userID, contactID).
			Updates(changes).Error
		if err != nil {
			return nil, apperrors.ConflictFromDB(err)
		}
	}
	return r.FindByID(ctx, userID, contactID)
}

func (r *ContactRepository) Delete(ctx context.Context, userID, contactID uint) (*entities.Contact, error) {
	existing, err := r.FindByID(ctx, userID, contactID)
	if err != nil || existing == nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, contactID).Delete(&ContactModel{}).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *ContactRepository) Seed(ctx context.Context, userID uint, contacts []entities.Contact) error {
	if len(contacts) == 0 {
		return nil
	}
	contactModels := make([]ContactModel, 0, len(contacts))
	for i := range contacts {
		m := contactModelFromEntity(userID, &contacts[i])
		m.ID = 0
		contactModels = append(contactModels, *m)
	}
	if err := r.db.WithContext(ctx).Create(&contactModels).Error; err != nil {
		return apperrors.ConflictFromDB(err)
	}
	return nil
}

func (r *ContactRepository) birthdayPredicate() string {
	if r.db.Dialector.Name() == "sqlite" {
		return birthdayWithinWeekSQLite
	}
	return birthdayWithinWeekPG
}

func (r *ContactRepository) collect(q *gorm.DB) ([]entities.Contact, error) {
	var contactModels []ContactModel
	if err := q.Order("id").Find(&contactModels).Error; err != nil {
		return nil, err
	}
	contacts := make([]entities.Contact, 0, len(contactModels))
	for i := range contactModels {
		contacts = append(contacts, *contactModels[i].toEntity())
	}
	return contacts, nil
}
