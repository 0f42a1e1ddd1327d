package testutil

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/client"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryClientStore implements client.Repository.
type InMemoryClientStore struct {
	*InMemoryStore[*client.Client]
}

func NewInMemoryClientStore() *InMemoryClientStore {
	return &InMemoryClientStore{
		InMemoryStore: NewInMemoryStore[*client.Client](),
	}
}

func copyClient(c *client.Client) *client.Client {
	if c == nil {
		return nil
	}
	copied := *c
	return &copied
}

func (s *InMemoryClientStore) Create(ctx context.Context, c *client.Client) error {
	if c == nil {
		return ierr.NewError("client cannot be nil").
			WithHint("Client cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, c.ID, copyClient(c)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryClientStore) Get(ctx context.Context, id string) (*client.Client, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.OrganizationID != types.GetOrganizationID(ctx) {
		return nil, ierr.NewError("client not found").
			WithHint("The client does not exist").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyClient(c), nil
}

func (s *InMemoryClientStore) Update(ctx context.Context, c *client.Client) error {
	if c == nil {
		return ierr.NewError("client cannot be nil").
			WithHint("Client cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	if err := s.InMemoryStore.Update(ctx, c.ID, copyClient(c)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryClientStore) Clear() {
	s.InMemoryStore.Clear()
}

// InMemoryAssignmentStore implements client.AssignmentRepository, keyed
// by (user_id, client_id).
type InMemoryAssignmentStore struct {
	*InMemoryStore[*client.Assignment]
}

func NewInMemoryAssignmentStore() *InMemoryAssignmentStore {
	return &InMemoryAssignmentStore{
		InMemoryStore: NewInMemoryStore[*client.Assignment](),
	}
}

func assignmentKey(userID, clientID string) string {
	return userID + "/" + clientID
}

func (s *InMemoryAssignmentStore) Create(ctx context.Context, a *client.Assignment) error {
	if a == nil {
		return ierr.NewError("assignment cannot be nil").
			WithHint("Assignment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	copied := *a
	if err := s.InMemoryStore.Create(ctx, assignmentKey(a.UserID, a.ClientID), &copied); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create assignment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryAssignmentStore) Get(ctx context.Context, userID, clientID string) (*client.Assignment, error) {
	a, err := s.InMemoryStore.Get(ctx, assignmentKey(userID, clientID))
	if err != nil || a.OrganizationID != types.GetOrganizationID(ctx) {
		return nil, ierr.NewError("assignment not found").
			WithHint("The user is not assigned to this client").
			WithReportableDetails(map[string]interface{}{
				"user_id":   userID,
				"client_id": clientID,
			}).
			Mark(ierr.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (s *InMemoryAssignmentStore) Delete(ctx context.Context, a *client.Assignment) error {
	if a == nil {
		return ierr.NewError("assignment cannot be nil").
			WithHint("Assignment cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Delete(ctx, assignmentKey(a.UserID, a.ClientID)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete assignment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryAssignmentStore) Clear() {
	s.InMemoryStore.Clear()
}
