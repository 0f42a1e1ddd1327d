package auditlog

import (
	"context"
)

// Repository persists audit rows. Append-only: there is deliberately no
// update or delete.
type Repository interface {
	Create(ctx context.Context, log *AuditLog) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*AuditLog, error)
}
