package postgres

import (
	"context"
	"time"

	domainClient "github.com/coverbridge/coverbridge/internal/domain/client"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type clientRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(client postgres.IClient, logger *logger.Logger) domainClient.Repository {
	return &clientRepository{
		client: client,
		logger: logger,
	}
}

const clientColumns = `id, organization_id, name, tax_id, email, phone, address_l1, address_l2,
	city, country, status, created_at, updated_at, created_by, updated_by`

func (r *clientRepository) Create(ctx context.Context, c *domainClient.Client) error {
	r.logger.Debugw("creating client", "client_id", c.ID, "name", c.Name)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		c.ID, c.OrganizationID, c.Name, c.TaxID, c.Email, c.Phone, c.AddressL1, c.AddressL2,
		c.City, c.Country, c.Status, c.CreatedAt, c.UpdatedAt, c.CreatedBy, c.UpdatedBy,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to create client").
			WithReportableDetails(map[string]interface{}{
				"client_id": c.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *clientRepository) Get(ctx context.Context, id string) (*domainClient.Client, error) {
	q := r.client.Querier(ctx)
	row := q.QueryRowContext(ctx, `
		SELECT `+clientColumns+`
		FROM clients
		WHERE id = $1 AND organization_id = $2
	`, id, types.GetOrganizationID(ctx))

	var c domainClient.Client
	err := row.Scan(
		&c.ID, &c.OrganizationID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.AddressL1, &c.AddressL2,
		&c.City, &c.Country, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.CreatedBy, &c.UpdatedBy,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.NewError("client not found").
				WithHint("Client not found").
				WithReportableDetails(map[string]interface{}{
					"client_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *clientRepository) Update(ctx context.Context, c *domainClient.Client) error {
	r.logger.Debugw("updating client", "client_id", c.ID)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE clients
		SET name = $1, tax_id = $2, email = $3, phone = $4, address_l1 = $5, address_l2 = $6,
			city = $7, country = $8, status = $9, updated_at = $10, updated_by = $11
		WHERE id = $12 AND organization_id = $13
	`,
		c.Name, c.TaxID, c.Email, c.Phone, c.AddressL1, c.AddressL2,
		c.City, c.Country, c.Status, time.Now().UTC(), types.GetUserID(ctx),
		c.ID, types.GetOrganizationID(ctx),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update client").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "client", c.ID)
}

type assignmentRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewAssignmentRepository creates a new client assignment repository
func NewAssignmentRepository(client postgres.IClient, logger *logger.Logger) domainClient.AssignmentRepository {
	return &assignmentRepository{
		client: client,
		logger: logger,
	}
}

func (r *assignmentRepository) Create(ctx context.Context, a *domainClient.Assignment) error {
	r.logger.Debugw("creating client assignment",
		"user_id", a.UserID, "client_id", a.ClientID)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO client_assignments (id, organization_id, user_id, client_id, assigned_by, assigned_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, a.ID, a.OrganizationID, a.UserID, a.ClientID, a.AssignedBy, a.AssignedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("The user is already assigned to this client").
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create client assignment").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *assignmentRepository) Get(ctx context.Context, userID, clientID string) (*domainClient.Assignment, error) {
	q := r.client.Querier(ctx)
	row := q.QueryRowContext(ctx, `
		SELECT id, organization_id, user_id, client_id, assigned_by, assigned_at
		FROM client_assignments
		WHERE user_id = $1 AND client_id = $2 AND organization_id = $3
	`, userID, clientID, types.GetOrganizationID(ctx))

	var a domainClient.Assignment
	err := row.Scan(&a.ID, &a.OrganizationID, &a.UserID, &a.ClientID, &a.AssignedBy, &a.AssignedAt)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.NewError("client assignment not found").
				WithHint("The user is not assigned to this client").
				WithReportableDetails(map[string]interface{}{
					"user_id":   userID,
					"client_id": clientID,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client assignment").
			Mark(ierr.ErrDatabase)
	}
	return &a, nil
}

func (r *assignmentRepository) Delete(ctx context.Context, a *domainClient.Assignment) error {
	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		DELETE FROM client_assignments WHERE id = $1 AND organization_id = $2
	`, a.ID, types.GetOrganizationID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete client assignment").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "client assignment", a.ID)
}
