package testutil

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryPolicyStore implements policy.Repository. It mirrors the
// database contracts the services rely on: the unique
// (insurer_id, policy_number) index per organization and the conditional
// status write.
type InMemoryPolicyStore struct {
	*InMemoryStore[*policy.Policy]
}

func NewInMemoryPolicyStore() *InMemoryPolicyStore {
	return &InMemoryPolicyStore{
		InMemoryStore: NewInMemoryStore[*policy.Policy](),
	}
}

func copyPolicy(p *policy.Policy) *policy.Policy {
	if p == nil {
		return nil
	}
	copied := *p
	return &copied
}

func (s *InMemoryPolicyStore) Create(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}

	existing, _ := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, item *policy.Policy, _ interface{}) bool {
		return item.OrganizationID == p.OrganizationID &&
			item.InsurerID == p.InsurerID &&
			item.PolicyNumber == p.PolicyNumber
	}, nil)
	if len(existing) > 0 {
		return ierr.NewError("policy already exists for this insurer").
			WithHint("A policy with this number already exists for the insurer").
			WithReportableDetails(map[string]interface{}{
				"insurer_id":    p.InsurerID,
				"policy_number": p.PolicyNumber,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	if err := s.InMemoryStore.Create(ctx, p.ID, copyPolicy(p)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create policy").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryPolicyStore) Get(ctx context.Context, id string) (*policy.Policy, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.OrganizationID != types.GetOrganizationID(ctx) {
		return nil, ierr.NewError("policy not found").
			WithHint("The policy does not exist").
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return copyPolicy(p), nil
}

func (s *InMemoryPolicyStore) List(ctx context.Context, filter *types.PolicyFilter) ([]*policy.Policy, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}

	policies, err := s.InMemoryStore.List(ctx, filter, policyFilterFn, policySortFn)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policies").
			Mark(ierr.ErrDatabase)
	}

	offset := filter.GetOffset()
	limit := filter.GetLimit()
	if offset >= len(policies) {
		return nil, nil
	}
	policies = policies[offset:]
	if limit > 0 && limit < len(policies) {
		policies = policies[:limit]
	}

	result := make([]*policy.Policy, len(policies))
	for i, p := range policies {
		result[i] = copyPolicy(p)
	}
	return result, nil
}

func (s *InMemoryPolicyStore) Count(ctx context.Context, filter *types.PolicyFilter) (int, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	policies, err := s.InMemoryStore.List(ctx, filter, policyFilterFn, nil)
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count policies").
			Mark(ierr.ErrDatabase)
	}
	return len(policies), nil
}

func (s *InMemoryPolicyStore) Update(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if _, err := s.Get(ctx, p.ID); err != nil {
		return err
	}

	conflicts, _ := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, item *policy.Policy, _ interface{}) bool {
		return item.ID != p.ID &&
			item.OrganizationID == p.OrganizationID &&
			item.InsurerID == p.InsurerID &&
			item.PolicyNumber == p.PolicyNumber
	}, nil)
	if len(conflicts) > 0 {
		return ierr.NewError("policy already exists for this insurer").
			WithHint("A policy with this number already exists for the insurer").
			WithReportableDetails(map[string]interface{}{
				"insurer_id":    p.InsurerID,
				"policy_number": p.PolicyNumber,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	updated := copyPolicy(p)
	updated.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, p.ID, updated); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update policy").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryPolicyStore) UpdateStatus(ctx context.Context, p *policy.Policy, expectedFrom types.PolicyStatus) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}

	stored, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if stored.PolicyStatus != expectedFrom {
		return ierr.NewError("policy status changed concurrently").
			WithHint("The policy was modified by another request, please retry").
			WithReportableDetails(map[string]interface{}{
				"id":              p.ID,
				"expected_status": expectedFrom,
			}).
			Mark(ierr.ErrInvalidTransition)
	}

	updated := copyPolicy(p)
	updated.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, p.ID, updated); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update policy status").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryPolicyStore) Delete(ctx context.Context, p *policy.Policy) error {
	if p == nil {
		return ierr.NewError("policy cannot be nil").
			WithHint("Policy cannot be nil").
			Mark(ierr.ErrValidation)
	}

	if _, err := s.Get(ctx, p.ID); err != nil {
		return err
	}
	if err := s.InMemoryStore.Delete(ctx, p.ID); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete policy").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func policyFilterFn(ctx context.Context, p *policy.Policy, filter interface{}) bool {
	if p == nil {
		return false
	}
	if p.OrganizationID != types.GetOrganizationID(ctx) {
		return false
	}

	f, ok := filter.(*types.PolicyFilter)
	if !ok || f == nil {
		return true
	}

	if len(f.PolicyIDs) > 0 && !lo.Contains(f.PolicyIDs, p.ID) {
		return false
	}
	if len(f.ClientIDs) > 0 && !lo.Contains(f.ClientIDs, p.ClientID) {
		return false
	}
	if len(f.InsurerIDs) > 0 && !lo.Contains(f.InsurerIDs, p.InsurerID) {
		return false
	}
	if len(f.Statuses) > 0 && !lo.Contains(f.Statuses, p.PolicyStatus) {
		return false
	}
	return true
}

func policySortFn(i, j *policy.Policy) bool {
	if i == nil || j == nil {
		return false
	}
	return i.CreatedAt.After(j.CreatedAt)
}

func (s *InMemoryPolicyStore) Clear() {
	s.InMemoryStore.Clear()
}
