package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateContactRequest represents the request body for creating a contact
type CreateContactRequest struct {
	Name                 string     `json:"name" validate:"required"`
	Relationship         string     `json:"relationship" validate:"omitempty,oneof=family friend colleague client acquaintance"`
	Email                string     `json:"email,omitempty" validate:"omitempty,email"`
	Phone                string     `json:"phone,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	LastContactedAt      *time.Time `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int       `json:"contact_frequency_days,omitempty" validate:"omitempty,min=1"`
}

// UpdateContactRequest represents the request body for updating a contact
type UpdateContactRequest struct {
	Name                 *string    `json:"name,omitempty"`
	Relationship         *string    `json:"relationship,omitempty" validate:"omitempty,oneof=family friend colleague client acquaintance"`
	Email                *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone                *string    `json:"phone,omitempty"`
	Notes                *string    `json:"notes,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	LastContactedAt      *time.Time `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int       `json:"contact_frequency_days,omitempty" validate:"omitempty,min=1"`
}

// ContactResponse represents a contact in API responses, including the
// derived cadence status
type ContactResponse struct {
	ID                   uuid.UUID  `json:"id"`
	UserID               uuid.UUID  `json:"user_id"`
	Name                 string     `json:"name"`
	Relationship         string     `json:"relationship"`
	Email                string     `json:"email,omitempty"`
	Phone                string     `json:"phone,omitempty"`
	Notes                string     `json:"notes,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	LastContactedAt      *time.Time `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int       `json:"contact_frequency_days,omitempty"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// ContactListResponse represents a paginated list of contacts
type ContactListResponse struct {
	Contacts   []ContactResponse `json:"contacts"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}
