package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	domainAudit "github.com/coverbridge/coverbridge/internal/domain/auditlog"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type auditLogRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(client postgres.IClient, logger *logger.Logger) domainAudit.Repository {
	return &auditLogRepository{
		client: client,
		logger: logger,
	}
}

func (r *auditLogRepository) Create(ctx context.Context, log *domainAudit.AuditLog) error {
	r.logger.Debugw("writing audit log",
		"action", log.Action, "resource_type", log.ResourceType, "resource_id", log.ResourceID)

	metadata, err := json.Marshal(log.Metadata)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to encode audit metadata").
			Mark(ierr.ErrDatabase)
	}

	q := r.client.Querier(ctx)
	_, err = q.ExecContext(ctx, `
		INSERT INTO audit_logs (id, organization_id, action, resource_type, resource_id, actor_id, metadata, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`,
		log.ID, log.OrganizationID, log.Action, log.ResourceType, log.ResourceID,
		log.ActorID, metadata, log.IPAddress, log.UserAgent, log.CreatedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to write audit log").
			WithReportableDetails(map[string]interface{}{
				"action":      log.Action,
				"resource_id": log.ResourceID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *auditLogRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*domainAudit.AuditLog, error) {
	q := r.client.Querier(ctx)
	rows, err := q.QueryContext(ctx, `
		SELECT id, organization_id, action, resource_type, resource_id, actor_id, metadata, ip_address, user_agent, created_at
		FROM audit_logs
		WHERE resource_type = $1 AND resource_id = $2 AND organization_id = $3
		ORDER BY created_at ASC
	`, resourceType, resourceID, types.GetOrganizationID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list audit logs").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var logs []*domainAudit.AuditLog
	for rows.Next() {
		var (
			l        domainAudit.AuditLog
			metadata sql.NullString
		)
		if err := rows.Scan(
			&l.ID, &l.OrganizationID, &l.Action, &l.ResourceType, &l.ResourceID,
			&l.ActorID, &metadata, &l.IPAddress, &l.UserAgent, &l.CreatedAt,
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan audit log").
				Mark(ierr.ErrDatabase)
		}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &l.Metadata); err != nil {
				return nil, ierr.WithError(err).
					WithHint("Failed to decode audit metadata").
					Mark(ierr.ErrDatabase)
			}
		}
		logs = append(logs, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list audit logs").
			Mark(ierr.ErrDatabase)
	}
	return logs, nil
}
