package contact

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mzohdy/northstar/internal/metrics"
)

// Mock repository for testing
type mockRepository struct {
	contacts []Contact
}

func (m *mockRepository) Create(ctx context.Context, contact *Contact) error {
	m.contacts = append(m.contacts, *contact)
	return nil
}

func (m *mockRepository) FindByID(ctx context.Context, id uuid.UUID) (*Contact, error) {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			return &m.contacts[i], nil
		}
	}
	return nil, ErrContactNotFound
}

func (m *mockRepository) FindAll(ctx context.Context, filter ContactFilter) ([]Contact, int64, error) {
	var out []Contact
	for _, c := range m.contacts {
		if filter.UserID != nil && c.UserID != *filter.UserID {
			continue
		}
		if filter.Relationship != nil && c.Relationship != *filter.Relationship {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *mockRepository) Update(ctx context.Context, contact *Contact) error {
	for i := range m.contacts {
		if m.contacts[i].ID == contact.ID {
			m.contacts[i] = *contact
			return nil
		}
	}
	return ErrContactNotFound
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	for i := range m.contacts {
		if m.contacts[i].ID == id {
			m.contacts = append(m.contacts[:i], m.contacts[i+1:]...)
			return nil
		}
	}
	return ErrContactNotFound
}

func daysAgo(n int) *time.Time {
	t := time.Now().AddDate(0, 0, -n)
	return &t
}

func freq(n int) *int { return &n }

func TestCreateContactValidation(t *testing.T) {
	svc := NewService(&mockRepository{}, zap.NewNop())

	created, err := svc.CreateContact(context.Background(), CreateContactInput{
		UserID: uuid.New(),
		Name:   "Dana",
	})
	require.NoError(t, err)
	assert.Equal(t, RelationshipAcquaintance, created.Relationship)

	_, err = svc.CreateContact(context.Background(), CreateContactInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateContact(context.Background(), CreateContactInput{
		UserID:       uuid.New(),
		Name:         "Sam",
		Relationship: "stranger",
	})
	assert.ErrorIs(t, err, ErrInvalidRelationship)
}

func TestListContactsDerivedStatus(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{contacts: []Contact{
		{ID: uuid.New(), UserID: userID, Name: "no cadence", Relationship: RelationshipFriend},
		{ID: uuid.New(), UserID: userID, Name: "overdue", Relationship: RelationshipFamily, LastContactedAt: daysAgo(35), ContactFrequencyDays: freq(30)},
		{ID: uuid.New(), UserID: userID, Name: "due soon", Relationship: RelationshipFriend, LastContactedAt: daysAgo(26), ContactFrequencyDays: freq(30)},
		{ID: uuid.New(), UserID: userID, Name: "fresh", Relationship: RelationshipColleague, LastContactedAt: daysAgo(10), ContactFrequencyDays: freq(30)},
	}}
	svc := NewService(repo, zap.NewNop())

	views, total, err := svc.ListContacts(context.Background(), ContactFilter{UserID: &userID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	assert.Equal(t, metrics.ContactStatusUnknown, views[0].Status)
	assert.Equal(t, metrics.ContactStatusOverdue, views[1].Status)
	assert.Equal(t, metrics.ContactStatusDue, views[2].Status)
	assert.Equal(t, metrics.ContactStatusGood, views[3].Status)
}

func TestDueForContact(t *testing.T) {
	userID := uuid.New()
	repo := &mockRepository{contacts: []Contact{
		{ID: uuid.New(), UserID: userID, Name: "overdue", Relationship: RelationshipFamily, LastContactedAt: daysAgo(40), ContactFrequencyDays: freq(30)},
		{ID: uuid.New(), UserID: userID, Name: "due", Relationship: RelationshipFriend, LastContactedAt: daysAgo(27), ContactFrequencyDays: freq(30)},
		{ID: uuid.New(), UserID: userID, Name: "fresh", Relationship: RelationshipFriend, LastContactedAt: daysAgo(2), ContactFrequencyDays: freq(30)},
		{ID: uuid.New(), UserID: userID, Name: "no cadence", Relationship: RelationshipClient},
	}}
	svc := NewService(repo, zap.NewNop())

	due, err := svc.DueForContact(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "overdue", due[0].Name)
	assert.Equal(t, "due", due[1].Name)
}

func TestRecordContact(t *testing.T) {
	userID := uuid.New()
	id := uuid.New()
	repo := &mockRepository{contacts: []Contact{
		{ID: id, UserID: userID, Name: "Dana", Relationship: RelationshipFriend, LastContactedAt: daysAgo(90), ContactFrequencyDays: freq(30)},
	}}
	svc := NewService(repo, zap.NewNop())

	updated, err := svc.RecordContact(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, updated.LastContactedAt)
	assert.WithinDuration(t, time.Now(), *updated.LastContactedAt, time.Minute)

	due, err := svc.DueForContact(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, due)
}
