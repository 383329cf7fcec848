package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grupo99/customer-service/internal/events"
	apperrors "github.com/grupo99/customer-service/pkg/util"
)

func newCustomerService(repo *fakeCustomerRepo, publisher events.Publisher) *CustomerService {
	return NewCustomerService(CustomerDependencies{
		Customers: repo,
		Publisher: publisher,
		Cache:     nil,
		Logger:    nopLogger(),
	})
}

func TestCustomerCreatePublishesEvent(t *testing.T) {
	repo := newFakeCustomerRepo()
	pub := events.NewInMemoryPublisher()
	svc := newCustomerService(repo, pub)
	personID := uuid.New()

	customer, err := svc.Create(context.Background(), personID)
	require.NoError(t, err)
	assert.Equal(t, personID, customer.PersonID)

	published := pub.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventCustomerCreated, published[0].Type)
	assert.Equal(t, personID, published[0].SubjectID)
	assert.False(t, published[0].Timestamp.IsZero())
}

func TestCustomerCreateRejectsDuplicate(t *testing.T) {
	repo := newFakeCustomerRepo()
	pub := events.NewInMemoryPublisher()
	svc := newCustomerService(repo, pub)
	personID := uuid.New()

	_, err := svc.Create(context.Background(), personID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), personID)
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "BUSINESS_RULE", domainErr.Code)

	// The failed attempt must not publish.
	assert.Len(t, pub.Published(), 1)
}

func TestCustomerCreateRejectsNilPersonID(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo(), events.NewInMemoryPublisher())

	_, err := svc.Create(context.Background(), uuid.Nil)
	assert.Error(t, err)
}

func TestCustomerCreatePublishFailureFailsUseCase(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo(), failingPublisher{})

	_, err := svc.Create(context.Background(), uuid.New())
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
}

func TestCustomerGetNotFound(t *testing.T) {
	svc := newCustomerService(newFakeCustomerRepo(), events.NewInMemoryPublisher())

	_, err := svc.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestCustomerUpdatePublishesEvent(t *testing.T) {
	repo := newFakeCustomerRepo()
	pub := events.NewInMemoryPublisher()
	svc := newCustomerService(repo, pub)
	personID := uuid.New()

	_, err := svc.Create(context.Background(), personID)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), personID)
	require.NoError(t, err)

	published := pub.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventCustomerUpdated, published[1].Type)
}

func TestCustomerDelete(t *testing.T) {
	repo := newFakeCustomerRepo()
	pub := events.NewInMemoryPublisher()
	svc := newCustomerService(repo, pub)
	personID := uuid.New()

	_, err := svc.Create(context.Background(), personID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), personID))

	published := pub.Published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventCustomerDeleted, published[1].Type)

	err = svc.Delete(context.Background(), personID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
