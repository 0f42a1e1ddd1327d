package policy

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/types"
)

// Repository defines the interface for policy persistence operations.
// Every method is implicitly scoped to the organization carried by ctx.
type Repository interface {
	// Create inserts a new policy. A duplicate (insurer_id, policy_number)
	// surfaces as an already-exists error.
	Create(ctx context.Context, p *Policy) error

	// Get retrieves a policy by id. A policy belonging to a different
	// organization is indistinguishable from a missing one.
	Get(ctx context.Context, id string) (*Policy, error)

	// List retrieves policies matching the filter.
	List(ctx context.Context, filter *types.PolicyFilter) ([]*Policy, error)

	// Count counts policies matching the filter.
	Count(ctx context.Context, filter *types.PolicyFilter) (int, error)

	// Update patches the mutable columns of an existing policy.
	Update(ctx context.Context, p *Policy) error

	// UpdateStatus commits a status transition conditionally: the write
	// applies only while the stored status still equals expectedFrom.
	// Losing the race surfaces as an invalid-transition error.
	UpdateStatus(ctx context.Context, p *Policy, expectedFrom types.PolicyStatus) error

	// Delete hard-deletes a policy row.
	Delete(ctx context.Context, p *Policy) error
}

// HistoryRepository persists the append-only status log.
type HistoryRepository interface {
	Create(ctx context.Context, h *PolicyHistory) error
	ListByPolicy(ctx context.Context, policyID string) ([]*PolicyHistory, error)
}
