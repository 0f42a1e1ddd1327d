package postgres

import (
	"context"
	"time"

	domainAffiliate "github.com/coverbridge/coverbridge/internal/domain/affiliate"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type affiliateRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewAffiliateRepository creates a new affiliate repository
func NewAffiliateRepository(client postgres.IClient, logger *logger.Logger) domainAffiliate.Repository {
	return &affiliateRepository{
		client: client,
		logger: logger,
	}
}

const affiliateColumns = `id, organization_id, user_id, client_id, first_name, last_name, email,
	status, created_at, updated_at, created_by, updated_by`

func (r *affiliateRepository) Create(ctx context.Context, a *domainAffiliate.Affiliate) error {
	r.logger.Debugw("creating affiliate", "affiliate_id", a.ID, "client_id", a.ClientID)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO affiliates (`+affiliateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		a.ID, a.OrganizationID, a.UserID, a.ClientID, a.FirstName, a.LastName, a.Email,
		a.Status, a.CreatedAt, a.UpdatedAt, a.CreatedBy, a.UpdatedBy,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("The user is already an affiliate of this client").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create affiliate").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *affiliateRepository) GetByUserAndClient(ctx context.Context, userID, clientID string) (*domainAffiliate.Affiliate, error) {
	q := r.client.Querier(ctx)
	row := q.QueryRowContext(ctx, `
		SELECT `+affiliateColumns+`
		FROM affiliates
		WHERE user_id = $1 AND client_id = $2 AND organization_id = $3
	`, userID, clientID, types.GetOrganizationID(ctx))

	var a domainAffiliate.Affiliate
	err := row.Scan(
		&a.ID, &a.OrganizationID, &a.UserID, &a.ClientID, &a.FirstName, &a.LastName, &a.Email,
		&a.Status, &a.CreatedAt, &a.UpdatedAt, &a.CreatedBy, &a.UpdatedBy,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.NewError("affiliate link not found").
				WithHint("The user is not an affiliate of this client").
				WithReportableDetails(map[string]interface{}{
					"user_id":   userID,
					"client_id": clientID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get affiliate").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *affiliateRepository) Update(ctx context.Context, a *domainAffiliate.Affiliate) error {
	r.logger.Debugw("updating affiliate", "affiliate_id", a.ID)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE affiliates
		SET first_name = $1, last_name = $2, email = $3, status = $4,
			updated_at = $5, updated_by = $6
		WHERE id = $7 AND organization_id = $8
	`,
		a.FirstName, a.LastName, a.Email, a.Status,
		time.Now().UTC(), types.GetUserID(ctx),
		a.ID, types.GetOrganizationID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update affiliate").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "affiliate", a.ID)
}
