package contact

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/metrics"
)

type CreateContactInput struct {
	UserID               uuid.UUID        `json:"user_id"`
	Name                 string           `json:"name"`
	Relationship         RelationshipType `json:"relationship"`
	Email                string           `json:"email,omitempty"`
	Phone                string           `json:"phone,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	Tags                 []string         `json:"tags,omitempty"`
	LastContactedAt      *time.Time       `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int             `json:"contact_frequency_days,omitempty"`
}

type UpdateContactInput struct {
	Name                 *string           `json:"name,omitempty"`
	Relationship         *RelationshipType `json:"relationship,omitempty"`
	Email                *string           `json:"email,omitempty"`
	Phone                *string           `json:"phone,omitempty"`
	Notes                *string           `json:"notes,omitempty"`
	Tags                 []string          `json:"tags,omitempty"`
	LastContactedAt      *time.Time        `json:"last_contacted_at,omitempty"`
	ContactFrequencyDays *int              `json:"contact_frequency_days,omitempty"`
}

// ContactView is a contact annotated with its derived cadence status.
type ContactView struct {
	Contact
	Status metrics.ContactStatus `json:"status"`
}

type Service interface {
	CreateContact(ctx context.Context, input CreateContactInput) (*Contact, error)
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	ListContacts(ctx context.Context, filter ContactFilter) ([]ContactView, int64, error)
	UpdateContact(ctx context.Context, id uuid.UUID, input UpdateContactInput) (*Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error

	// RecordContact marks the contact as reached today.
	RecordContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	// DueForContact lists the user's contacts whose cadence has lapsed
	// or is about to, due and overdue both.
	DueForContact(ctx context.Context, userID uuid.UUID) ([]ContactView, error)
}

type service struct {
	repo   ContactRepository
	logger *zap.Logger
}

func NewService(repo ContactRepository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateContact(ctx context.Context, input CreateContactInput) (*Contact, error) {
	if input.Name == "" {
		return nil, ErrInvalidInput
	}
	if input.Relationship == "" {
		input.Relationship = RelationshipAcquaintance
	}
	if !input.Relationship.IsValid() {
		return nil, ErrInvalidRelationship
	}

	contact := &Contact{
		ID:                   uuid.New(),
		UserID:               input.UserID,
		Name:                 input.Name,
		Relationship:         input.Relationship,
		Email:                input.Email,
		Phone:                input.Phone,
		Notes:                input.Notes,
		Tags:                 input.Tags,
		LastContactedAt:      input.LastContactedAt,
		ContactFrequencyDays: input.ContactFrequencyDays,
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}

	if err := s.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *service) GetContact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) ListContacts(ctx context.Context, filter ContactFilter) ([]ContactView, int64, error) {
	contacts, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return annotate(contacts, time.Now()), total, nil
}

func (s *service) UpdateContact(ctx context.Context, id uuid.UUID, input UpdateContactInput) (*Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		contact.Name = *input.Name
	}
	if input.Relationship != nil {
		if !input.Relationship.IsValid() {
			return nil, ErrInvalidRelationship
		}
		contact.Relationship = *input.Relationship
	}
	if input.Email != nil {
		contact.Email = *input.Email
	}
	if input.Phone != nil {
		contact.Phone = *input.Phone
	}
	if input.Notes != nil {
		contact.Notes = *input.Notes
	}
	if input.Tags != nil {
		contact.Tags = input.Tags
	}
	if input.LastContactedAt != nil {
		contact.LastContactedAt = input.LastContactedAt
	}
	if input.ContactFrequencyDays != nil {
		contact.ContactFrequencyDays = input.ContactFrequencyDays
	}

	contact.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (s *service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) RecordContact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	contact, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contact.LastContactedAt = &now
	contact.UpdatedAt = now
	if err := s.repo.Update(ctx, contact); err != nil {
		return nil, err
	}

	s.logger.Info("Recorded contact",
		zap.String("contact_id", id.String()),
		zap.String("name", contact.Name))
	return contact, nil
}

func (s *service) DueForContact(ctx context.Context, userID uuid.UUID) ([]ContactView, error) {
	contacts, _, err := s.repo.FindAll(ctx, ContactFilter{UserID: &userID})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	due := make([]ContactView, 0)
	for _, view := range annotate(contacts, now) {
		if view.Status == metrics.ContactStatusDue || view.Status == metrics.ContactStatusOverdue {
			due = append(due, view)
		}
	}
	return due, nil
}

func annotate(contacts []Contact, now time.Time) []ContactView {
	views := make([]ContactView, len(contacts))
	for i, c := range contacts {
		views[i] = ContactView{
			Contact: c,
			Status:  metrics.ComputeContactStatus(c.LastContactedAt, c.ContactFrequencyDays, now),
		}
	}
	return views
}
