package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	domainPolicy "github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

type policyRepository struct {
	client postgres.IClient
	logger *logger.Logger
}

// NewPolicyRepository creates a new policy repository
func NewPolicyRepository(client postgres.IClient, logger *logger.Logger) domainPolicy.Repository {
	return &policyRepository{
		client: client,
		logger: logger,
	}
}

const policyColumns = `id, organization_id, client_id, insurer_id, policy_number, policy_status,
	policy_type, start_date, end_date, total_premium, monthly_premium, coverage_cap,
	deductible, coinsurance_pct, plan_name, plan_code, cancelled_at, cancellation_reason,
	status, created_at, updated_at, created_by, updated_by`

func (r *policyRepository) Create(ctx context.Context, p *domainPolicy.Policy) error {
	r.logger.Debugw("creating policy", "policy_id", p.ID, "policy_number", p.PolicyNumber)

	q := r.client.Querier(ctx)
	_, err := q.ExecContext(ctx, `
		INSERT INTO policies (`+policyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
	`,
		p.ID, p.OrganizationID, p.ClientID, p.InsurerID, p.PolicyNumber, p.PolicyStatus,
		nullablePolicyType(p.PolicyType), p.StartDate, p.EndDate,
		nullableDecimal(p.TotalPremium), nullableDecimal(p.MonthlyPremium), nullableDecimal(p.CoverageCap),
		nullableDecimal(p.Deductible), nullableDecimal(p.CoinsurancePct), p.PlanName, p.PlanCode,
		p.CancelledAt, p.CancellationReason,
		p.Status, p.CreatedAt, p.UpdatedAt, p.CreatedBy, p.UpdatedBy,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A policy with this number already exists for the insurer").
				WithReportableDetails(map[string]interface{}{
					"insurer_id":    p.InsurerID,
					"policy_number": p.PolicyNumber,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to create policy").
			WithReportableDetails(map[string]interface{}{
				"policy_id": p.ID,
			}).
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *policyRepository) Get(ctx context.Context, id string) (*domainPolicy.Policy, error) {
	q := r.client.Querier(ctx)
	row := q.QueryRowContext(ctx, `
		SELECT `+policyColumns+`
		FROM policies
		WHERE id = $1 AND organization_id = $2
	`, id, types.GetOrganizationID(ctx))

	p, err := scanPolicy(row)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, ierr.NewError("policy not found").
				WithHint("Policy not found").
				WithReportableDetails(map[string]interface{}{
					"policy_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get policy").
			WithReportableDetails(map[string]interface{}{
				"policy_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}
	return p, nil
}

func (r *policyRepository) List(ctx context.Context, filter *types.PolicyFilter) ([]*domainPolicy.Policy, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}

	where, args := r.buildWhere(ctx, filter)
	query := `SELECT ` + policyColumns + ` FROM policies ` + where + ` ORDER BY created_at DESC`
	if limit := filter.GetLimit(); limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, filter.GetOffset())
	}

	q := r.client.Querier(ctx)
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policies").
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var policies []*domainPolicy.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, ierr.WithError(err).
				WithHint("Failed to scan policy").
				Mark(ierr.ErrDatabase)
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list policies").
			Mark(ierr.ErrDatabase)
	}
	return policies, nil
}

func (r *policyRepository) Count(ctx context.Context, filter *types.PolicyFilter) (int, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}

	where, args := r.buildWhere(ctx, filter)
	q := r.client.Querier(ctx)

	var count int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM policies `+where, args...).Scan(&count); err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count policies").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *policyRepository) Update(ctx context.Context, p *domainPolicy.Policy) error {
	r.logger.Debugw("updating policy", "policy_id", p.ID)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE policies
		SET policy_number = $1, policy_type = $2, start_date = $3, end_date = $4,
			total_premium = $5, monthly_premium = $6, coverage_cap = $7, deductible = $8,
			coinsurance_pct = $9, plan_name = $10, plan_code = $11,
			updated_at = $12, updated_by = $13
		WHERE id = $14 AND organization_id = $15
	`,
		p.PolicyNumber, nullablePolicyType(p.PolicyType), p.StartDate, p.EndDate,
		nullableDecimal(p.TotalPremium), nullableDecimal(p.MonthlyPremium), nullableDecimal(p.CoverageCap),
		nullableDecimal(p.Deductible), nullableDecimal(p.CoinsurancePct), p.PlanName, p.PlanCode,
		time.Now().UTC(), types.GetUserID(ctx),
		p.ID, types.GetOrganizationID(ctx),
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return ierr.WithError(err).
				WithHint("A policy with this number already exists for the insurer").
				WithReportableDetails(map[string]interface{}{
					"insurer_id":    p.InsurerID,
					"policy_number": p.PolicyNumber,
				}).
				Mark(ierr.ErrAlreadyExists)
		}
		return ierr.WithError(err).
			WithHint("Failed to update policy").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "policy", p.ID)
}

// UpdateStatus is the conditional write that closes the read-then-write
// race: the update applies only while the stored status still equals
// expectedFrom, so the loser of two concurrent transitions fails here.
func (r *policyRepository) UpdateStatus(ctx context.Context, p *domainPolicy.Policy, expectedFrom types.PolicyStatus) error {
	r.logger.Debugw("transitioning policy",
		"policy_id", p.ID, "from", expectedFrom, "to", p.PolicyStatus)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		UPDATE policies
		SET policy_status = $1, cancelled_at = $2, cancellation_reason = $3,
			updated_at = $4, updated_by = $5
		WHERE id = $6 AND organization_id = $7 AND policy_status = $8
	`,
		p.PolicyStatus, p.CancelledAt, p.CancellationReason,
		time.Now().UTC(), types.GetUserID(ctx),
		p.ID, types.GetOrganizationID(ctx), expectedFrom,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to transition policy").
			Mark(ierr.ErrDatabase)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to transition policy").
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("policy status changed concurrently").
			WithHintf("Policy is no longer in status %s", expectedFrom).
			WithReportableDetails(map[string]interface{}{
				"policy_id":       p.ID,
				"expected_status": expectedFrom,
			}).
			Mark(ierr.ErrInvalidTransition)
	}
	return nil
}

func (r *policyRepository) Delete(ctx context.Context, p *domainPolicy.Policy) error {
	r.logger.Debugw("deleting policy", "policy_id", p.ID)

	q := r.client.Querier(ctx)
	res, err := q.ExecContext(ctx, `
		DELETE FROM policies WHERE id = $1 AND organization_id = $2
	`, p.ID, types.GetOrganizationID(ctx))
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete policy").
			Mark(ierr.ErrDatabase)
	}
	return requireOneRow(res, "policy", p.ID)
}

func (r *policyRepository) buildWhere(ctx context.Context, filter *types.PolicyFilter) (string, []interface{}) {
	clauses := []string{"organization_id = $1"}
	args := []interface{}{types.GetOrganizationID(ctx)}

	appendClause := func(column string, values interface{}) {
		args = append(args, values)
		clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", column, len(args)))
	}

	if len(filter.PolicyIDs) > 0 {
		appendClause("id", pq.Array(filter.PolicyIDs))
	}
	if len(filter.ClientIDs) > 0 {
		appendClause("client_id", pq.Array(filter.ClientIDs))
	}
	if len(filter.InsurerIDs) > 0 {
		appendClause("insurer_id", pq.Array(filter.InsurerIDs))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = s.String()
		}
		appendClause("policy_status", pq.Array(statuses))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(s scanner) (*domainPolicy.Policy, error) {
	var (
		p              domainPolicy.Policy
		policyType     sql.NullString
		totalPremium   decimal.NullDecimal
		monthlyPremium decimal.NullDecimal
		coverageCap    decimal.NullDecimal
		deductible     decimal.NullDecimal
		coinsurancePct decimal.NullDecimal
	)

	err := s.Scan(
		&p.ID, &p.OrganizationID, &p.ClientID, &p.InsurerID, &p.PolicyNumber, &p.PolicyStatus,
		&policyType, &p.StartDate, &p.EndDate,
		&totalPremium, &monthlyPremium, &coverageCap,
		&deductible, &coinsurancePct, &p.PlanName, &p.PlanCode,
		&p.CancelledAt, &p.CancellationReason,
		&p.Status, &p.CreatedAt, &p.UpdatedAt, &p.CreatedBy, &p.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	if policyType.Valid {
		t := types.PolicyType(policyType.String)
		p.PolicyType = &t
	}
	p.TotalPremium = fromNullDecimal(totalPremium)
	p.MonthlyPremium = fromNullDecimal(monthlyPremium)
	p.CoverageCap = fromNullDecimal(coverageCap)
	p.Deductible = fromNullDecimal(deductible)
	p.CoinsurancePct = fromNullDecimal(coinsurancePct)

	return &p, nil
}

func nullablePolicyType(t *types.PolicyType) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*t), Valid: true}
}

func nullableDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

func requireOneRow(res sql.Result, resource, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to modify %s", resource).
			Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewErrorf("%s not found", resource).
			WithHintf("The %s does not exist", resource).
			WithReportableDetails(map[string]interface{}{
				"id": id,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}
