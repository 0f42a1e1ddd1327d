package policy

import (
	"time"

	"github.com/coverbridge/coverbridge/internal/types"
)

// PolicyHistory is one row of the append-only status log. FromStatus is
// null only for the creation event. Rows are never updated or deleted.
type PolicyHistory struct {
	ID             string              `json:"id"`
	OrganizationID string              `json:"organization_id"`
	PolicyID       string              `json:"policy_id"`
	FromStatus     *types.PolicyStatus `json:"from_status,omitempty"`
	ToStatus       types.PolicyStatus  `json:"to_status"`
	Reason         *string             `json:"reason,omitempty"`
	Notes          *string             `json:"notes,omitempty"`
	ChangedBy      string              `json:"changed_by"`
	ChangedAt      time.Time           `json:"changed_at"`
}
