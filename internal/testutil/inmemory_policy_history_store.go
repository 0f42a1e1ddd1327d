package testutil

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryPolicyHistoryStore implements policy.HistoryRepository.
type InMemoryPolicyHistoryStore struct {
	*InMemoryStore[*policy.PolicyHistory]
}

func NewInMemoryPolicyHistoryStore() *InMemoryPolicyHistoryStore {
	return &InMemoryPolicyHistoryStore{
		InMemoryStore: NewInMemoryStore[*policy.PolicyHistory](),
	}
}

func copyPolicyHistory(h *policy.PolicyHistory) *policy.PolicyHistory {
	if h == nil {
		return nil
	}
	copied := *h
	return &copied
}

func (s *InMemoryPolicyHistoryStore) Create(ctx context.Context, h *policy.PolicyHistory) error {
	if h == nil {
		return ierr.NewError("policy history cannot be nil").
			WithHint("Policy history cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, h.ID, copyPolicyHistory(h)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record policy history").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryPolicyHistoryStore) ListByPolicy(ctx context.Context, policyID string) ([]*policy.PolicyHistory, error) {
	rows, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, h *policy.PolicyHistory, _ interface{}) bool {
		return h != nil &&
			h.OrganizationID == types.GetOrganizationID(ctx) &&
			h.PolicyID == policyID
	}, func(i, j *policy.PolicyHistory) bool {
		return i.ChangedAt.Before(j.ChangedAt)
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policy history").
			Mark(ierr.ErrDatabase)
	}

	result := make([]*policy.PolicyHistory, len(rows))
	for i, h := range rows {
		result[i] = copyPolicyHistory(h)
	}
	return result, nil
}

func (s *InMemoryPolicyHistoryStore) Clear() {
	s.InMemoryStore.Clear()
}
