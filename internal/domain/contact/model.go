package contact

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type RelationshipType string

const (
	RelationshipFamily       RelationshipType = "family"
	RelationshipFriend       RelationshipType = "friend"
	RelationshipColleague    RelationshipType = "colleague"
	RelationshipClient       RelationshipType = "client"
	RelationshipAcquaintance RelationshipType = "acquaintance"
)

func (r RelationshipType) IsValid() bool {
	switch r {
	case RelationshipFamily, RelationshipFriend, RelationshipColleague,
		RelationshipClient, RelationshipAcquaintance:
		return true
	}
	return false
}

// Contact represents a person the user keeps in touch with
type Contact struct {
	ID                   uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID               uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index:idx_contact_user"`
	Name                 string           `json:"name" gorm:"not null"`
	Relationship         RelationshipType `json:"relationship" gorm:"not null;index:idx_contact_relationship"`
	Email                string           `json:"email,omitempty" gorm:"type:varchar(255)"`
	Phone                string           `json:"phone,omitempty" gorm:"type:varchar(50)"`
	Notes                string           `json:"notes,omitempty"`
	Tags                 pq.StringArray   `json:"tags,omitempty" gorm:"type:text[]"`
	LastContactedAt      *time.Time       `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int             `json:"contact_frequency_days,omitempty"`
	CreatedAt            time.Time        `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt            time.Time        `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

var ErrInvalidRelationship = errors.New("invalid relationship type")

// TableName specifies the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}

// Validate performs basic validation of the contact model
func (c *Contact) Validate() error {
	if !c.Relationship.IsValid() {
		return ErrInvalidRelationship
	}
	return nil
}

// BeforeCreate hook is called before creating a new contact
func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Relationship == "" {
		c.Relationship = RelationshipAcquaintance
	}
	return c.Validate()
}

// BeforeUpdate hook is called before updating a contact
func (c *Contact) BeforeUpdate(tx *gorm.DB) error {
	return c.Validate()
}
