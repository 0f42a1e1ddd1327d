package auditlog

import (
	"context"
	"time"

	"github.com/coverbridge/coverbridge/internal/types"
)

// AuditLog is one append-only row recording a mutating action. The shape
// is shared across resource types; rows are never updated or deleted.
type AuditLog struct {
	ID             string             `json:"id"`
	OrganizationID string             `json:"organization_id"`
	Action         types.AuditAction  `json:"action"`
	ResourceType   types.ResourceType `json:"resource_type"`
	ResourceID     string             `json:"resource_id"`
	ActorID        string             `json:"actor_id"`
	Metadata       types.Metadata     `json:"metadata,omitempty"`
	IPAddress      string             `json:"ip_address,omitempty"`
	UserAgent      string             `json:"user_agent,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// New builds an audit row from the request context. The user agent is cut
// to exactly uaMaxLength characters when longer, per the storage contract.
func New(ctx context.Context, action types.AuditAction, resourceType types.ResourceType, resourceID string, metadata types.Metadata, uaMaxLength int) *AuditLog {
	return &AuditLog{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AUDIT_LOG),
		OrganizationID: types.GetOrganizationID(ctx),
		Action:         action,
		ResourceType:   resourceType,
		ResourceID:     resourceID,
		ActorID:        types.GetUserID(ctx),
		Metadata:       metadata,
		IPAddress:      types.GetClientIP(ctx),
		UserAgent:      types.TruncateUserAgent(types.GetUserAgent(ctx), uaMaxLength),
		CreatedAt:      time.Now().UTC(),
	}
}
