package postgres

import (
	"context"
	"time"

	domainInsurer "github.com/coverbridge/coverbridge/internal/domain/insurer"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type insurerRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewInsurerRepository creates a new insurer repository
func NewInsurerRepository(client postgres.IClient, logger *logger.Logger) domainInsurer.Repository {
	return &insurerRepository{
		client: client,
		logger: logger,
	}
}

const insurerColumns = `id, organization_id, name, code, email, phone, country,
	status, created_at, updated_at, created_by, updated_by`

func (r *insurerRepository) Create(ctx context.Context, i *domainInsurer.Insurer) error {
	r.logger.Debugw("creating insurer", "insurer_id", i.ID, "code", i.Code)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO insurers (`+insurerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		i.ID, i.OrganizationID, i.Name, i.Code, i.Email, i.Phone, i.Country,
		i.Status, i.CreatedAt, i.UpdatedAt, i.CreatedBy, i.UpdatedBy,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("An insurer with this code already exists").
				WithReportableDetails(map[string]interface{}{
					"code": i.Code,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create insurer").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *insurerRepository) Get(ctx context.Context, id string) (*domainInsurer.Insurer, error) {
	q := r.client.Querier(ctx)
	row := q.QueryRowContext(ctx, `
		SELECT `+insurerColumns+`
		FROM insurers
		WHERE id = $1 AND organization_id = $2
	`, id, types.GetOrganizationID(ctx))

	var i domainInsurer.Insurer
	err := row.Scan(
		&i.ID, &i.OrganizationID, &i.Name, &i.Code, &i.Email, &i.Phone, &i.Country,
		&i.Status, &i.CreatedAt, &i.UpdatedAt, &i.CreatedBy, &i.UpdatedBy,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.NewError("insurer not found").
				WithHint("Insurer not found").
				WithReportableDetails(map[string]interface{}{
					"insurer_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get insurer").
			Mark(ierr.ErrDatabase)
	}
	return &i, nil
}

func (r *insurerRepository) Update(ctx context.Context, i *domainInsurer.Insurer) error {
	r.logger.Debugw("updating insurer", "insurer_id", i.ID)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE insurers
		SET name = $1, code = $2, email = $3, phone = $4, country = $5,
			status = $6, updated_at = $7, updated_by = $8
		WHERE id = $9 AND organization_id = $10
	`,
		i.Name, i.Code, i.Email, i.Phone, i.Country,
		i.Status, time.Now().UTC(), types.GetUserID(ctx),
		i.ID, types.GetOrganizationID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update insurer").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "insurer", i.ID)
}
