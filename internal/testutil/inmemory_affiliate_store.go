package testutil

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/affiliate"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryAffiliateStore implements affiliate.Repository.
type InMemoryAffiliateStore struct {
	*InMemoryStore[*affiliate.Affiliate]
}

func NewInMemoryAffiliateStore() *InMemoryAffiliateStore {
	return &InMemoryAffiliateStore{
		InMemoryStore: NewInMemoryStore[*affiliate.Affiliate](),
	}
}

func copyAffiliate(a *affiliate.Affiliate) *affiliate.Affiliate {
	if a == nil {
		return nil
	}
	copied := *a
	return &copied
}

func (s *InMemoryAffiliateStore) Create(ctx context.Context, a *affiliate.Affiliate) error {
	if a == nil {
		return ierr.NewError("affiliate cannot be nil").
			WithHint("Affiliate cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, a.ID, copyAffiliate(a)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create affiliate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryAffiliateStore) GetByUserAndClient(ctx context.Context, userID, clientID string) (*affiliate.Affiliate, error) {
	matches, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, a *affiliate.Affiliate, _ interface{}) bool {
		return a != nil &&
			a.OrganizationID == types.GetOrganizationID(ctx) &&
			a.UserID == userID &&
			a.ClientID == clientID
	}, nil)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to look up affiliate").
			Mark(ierr.ErrDatabase)
	}
	if len(matches) == 0 {
		return nil, ierr.NewError("affiliate not found").
			WithHint("The user is not an affiliate of this client").
			WithReportableDetails(map[string]interface{}{
				"user_id":   userID,
				"client_id": clientID,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyAffiliate(matches[0]), nil
}

func (s *InMemoryAffiliateStore) Update(ctx context.Context, a *affiliate.Affiliate) error {
	if a == nil {
		return ierr.NewError("affiliate cannot be nil").
			WithHint("Affiliate cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Update(ctx, a.ID, copyAffiliate(a)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update affiliate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryAffiliateStore) Clear() {
	s.InMemoryStore.Clear()
}
