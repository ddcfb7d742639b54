package contact

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mzohdy/northstar/internal/infrastructure/persistence/postgres/connection"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// ContactFilter defines filtering options for contacts
type ContactFilter struct {
	UserID       *uuid.UUID
	Relationship *RelationshipType
	Page         int
	PageSize     int
}

// ContactRepository defines the interface for contact persistence operations
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id uuid.UUID) (*Contact, error)
	FindAll(ctx context.Context, filter ContactFilter) ([]Contact, int64, error)
	Update(ctx context.Context, contact *Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactRepository struct {
	db *connection.Database
}

func NewRepository(db *connection.Database) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, contact *Contact) error {
	return r.db.WithContext(ctx).Create(contact).Error
}

func (r *contactRepository) FindByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	var contact Contact
	result := r.db.WithContext(ctx).First(&contact, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, result.Error
	}
	return &contact, nil
}

func (r *contactRepository) FindAll(ctx context.Context, filter ContactFilter) ([]Contact, int64, error) {
	var contacts []Contact
	var total int64

	query := r.db.WithContext(ctx)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Relationship != nil {
		query = query.Where("relationship = ?", filter.Relationship)
	}

	// Count total before pagination
	err := query.Model(&Contact{}).Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	if filter.PageSize == 0 {
		filter.PageSize = 10000
	}

	query = query.Offset(filter.Page * filter.PageSize).Limit(filter.PageSize)

	if err := query.Order("name ASC").Find(&contacts).Error; err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *Contact) error {
	result := r.db.WithContext(ctx).Save(contact)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Contact{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
