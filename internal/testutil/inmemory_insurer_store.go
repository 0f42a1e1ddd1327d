package testutil

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/insurer"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryInsurerStore implements insurer.Repository.
type InMemoryInsurerStore struct {
	*InMemoryStore[*insurer.Insurer]
}

func NewInMemoryInsurerStore() *InMemoryInsurerStore {
	return &InMemoryInsurerStore{
		InMemoryStore: NewInMemoryStore[*insurer.Insurer](),
	}
}

func copyInsurer(i *insurer.Insurer) *insurer.Insurer {
	if i == nil {
		return nil
	}
	copied := *i
	return &copied
}

func (s *InMemoryInsurerStore) Create(ctx context.Context, i *insurer.Insurer) error {
	if i == nil {
		return ierr.NewError("insurer cannot be nil").
			WithHint("Insurer cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, i.ID, copyInsurer(i)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create insurer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryInsurerStore) Get(ctx context.Context, id string) (*insurer.Insurer, error) {
	i, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || i.OrganizationID != types.GetOrganizationID(ctx) {
		return nil, ierr.NewError("insurer not found").
			WithHint("The insurer does not exist").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyInsurer(i), nil
}

func (s *InMemoryInsurerStore) Update(ctx context.Context, i *insurer.Insurer) error {
	if i == nil {
		return ierr.NewError("insurer cannot be nil").
			WithHint("Insurer cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if _, err := s.Get(ctx, i.ID); err != nil {
		return err
	}
	if err := s.InMemoryStore.Update(ctx, i.ID, copyInsurer(i)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update insurer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryInsurerStore) Clear() {
	s.InMemoryStore.Clear()
}
