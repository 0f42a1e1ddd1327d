package postgres

import (
	"context"

	domainPolicy "github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type policyHistoryRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewPolicyHistoryRepository creates a new policy history repository
func NewPolicyHistoryRepository(client postgres.IClient, logger *logger.Logger) domainPolicy.HistoryRepository {
	return &policyHistoryRepository{
		client: client,
		logger: logger,
	}
}

func (r *policyHistoryRepository) Create(ctx context.Context, h *domainPolicy.PolicyHistory) error {
	r.logger.Debugw("creating policy history row",
		"policy_id", h.PolicyID, "to_status", h.ToStatus)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO policy_history (id, organization_id, policy_id, from_status, to_status, reason, notes, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		h.ID, h.OrganizationID, h.PolicyID, h.FromStatus, h.ToStatus,
		h.Reason, h.Notes, h.ChangedBy, h.ChangedAt,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to record policy history").
			WithReportableDetails(map[string]interface{}{
				"policy_id": h.PolicyID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *policyHistoryRepository) ListByPolicy(ctx context.Context, policyID string) ([]*domainPolicy.PolicyHistory, error) {
	q := r.client.Querier(ctx)
	rows, err := q.QueryContext(ctx, `
		SELECT id, organization_id, policy_id, from_status, to_status, reason, notes, changed_by, changed_at
		FROM policy_history
		WHERE policy_id = $1 AND organization_id = $2
		ORDER BY changed_at ASC
	`, policyID, types.GetOrganizationID(ctx))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policy history").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var history []*domainPolicy.PolicyHistory
	for rows.Next() {
		var h domainPolicy.PolicyHistory
		if err := rows.Scan(
			&h.ID, &h.OrganizationID, &h.PolicyID, &h.FromStatus, &h.ToStatus,
			&h.Reason, &h.Notes, &h.ChangedBy, &h.ChangedAt,
		); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan policy history").
				Mark(ierr.ErrDatabase)
		}
		history = append(history, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policy history").
			Mark(ierr.ErrDatabase)
	}
	return history, nil
}
