package testutil

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InMemoryAuditLogStore implements auditlog.Repository. Append-only, like
// the real table.
type InMemoryAuditLogStore struct {
	*InMemoryStore[*auditlog.AuditLog]
}

func NewInMemoryAuditLogStore() *InMemoryAuditLogStore {
	return &InMemoryAuditLogStore{
		InMemoryStore: NewInMemoryStore[*auditlog.AuditLog](),
	}
}

func copyAuditLog(l *auditlog.AuditLog) *auditlog.AuditLog {
	if l == nil {
		return nil
	}
	copied := *l
	return &copied
}

func (s *InMemoryAuditLogStore) Create(ctx context.Context, log *auditlog.AuditLog) error {
	if log == nil {
		return ierr.NewError("audit log cannot be nil").
			WithHint("Audit log cannot be nil").
			Mark(ierr.ErrValidation)
	}
	if err := s.InMemoryStore.Create(ctx, log.ID, copyAuditLog(log)); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record audit log").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (s *InMemoryAuditLogStore) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*auditlog.AuditLog, error) {
	rows, err := s.InMemoryStore.List(ctx, nil, func(ctx context.Context, l *auditlog.AuditLog, _ interface{}) bool {
		return l != nil &&
			l.OrganizationID == types.GetOrganizationID(ctx) &&
			string(l.ResourceType) == resourceType &&
			l.ResourceID == resourceID
	}, func(i, j *auditlog.AuditLog) bool {
		return i.CreatedAt.Before(j.CreatedAt)
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list audit logs").
			Mark(ierr.ErrDatabase)
	}

	result := make([]*auditlog.AuditLog, len(rows))
	for i, l := range rows {
		result[i] = copyAuditLog(l)
	}
	return result, nil
}

func (s *InMemoryAuditLogStore) Clear() {
	s.InMemoryStore.Clear()
}
