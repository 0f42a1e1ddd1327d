package policy

import (
	"time"

	"github.com/shopspring/decimal"

	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// Policy represents the domain model for an insurance policy. A policy
// always belongs to exactly one organization, one client and one insurer;
// PolicyNumber is unique per insurer.
type Policy struct {
	ID           string             `json:"id"`
	ClientID     string             `json:"client_id"`
	InsurerID    string             `json:"insurer_id"`
	PolicyNumber string             `json:"policy_number"`
	PolicyStatus types.PolicyStatus `json:"policy_status"`
	PolicyType   *types.PolicyType  `json:"policy_type,omitempty"`
	StartDate    time.Time          `json:"start_date"`
	EndDate      time.Time          `json:"end_date"`

	// Economic terms. All nullable until the policy is activated.
	TotalPremium   *decimal.Decimal `json:"total_premium,omitempty"`
	MonthlyPremium *decimal.Decimal `json:"monthly_premium,omitempty"`
	CoverageCap    *decimal.Decimal `json:"coverage_cap,omitempty"`
	Deductible     *decimal.Decimal `json:"deductible,omitempty"`
	CoinsurancePct *decimal.Decimal `json:"coinsurance_pct,omitempty"`
	PlanName       *string          `json:"plan_name,omitempty"`
	PlanCode       *string          `json:"plan_code,omitempty"`

	// Set only while the policy is cancelled, cleared on any other status.
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`

	types.BaseModel
}

// Field names used by the editability and invariant tables and by audit
// metadata. These are the wire names, not Go identifiers.
const (
	FieldPolicyNumber   = "policy_number"
	FieldPolicyType     = "policy_type"
	FieldStartDate      = "start_date"
	FieldEndDate        = "end_date"
	FieldTotalPremium   = "total_premium"
	FieldMonthlyPremium = "monthly_premium"
	FieldCoverageCap    = "coverage_cap"
	FieldDeductible     = "deductible"
	FieldCoinsurancePct = "coinsurance_pct"
	FieldPlanName       = "plan_name"
	FieldPlanCode       = "plan_code"
)

// AllFields lists every patchable policy field. The editability table is
// always a subset of this set.
func AllFields() []string {
	return []string{
		FieldPolicyNumber,
		FieldPolicyType,
		FieldStartDate,
		FieldEndDate,
		FieldTotalPremium,
		FieldMonthlyPremium,
		FieldCoverageCap,
		FieldDeductible,
		FieldCoinsurancePct,
		FieldPlanName,
		FieldPlanCode,
	}
}

// Validate checks the structural invariants that hold on every write.
func (p *Policy) Validate() error {
	if p.ClientID == "" {
		return ierr.NewError("client_id is required").
			WithHint("Policy must reference a client").
			Mark(ierr.ErrValidation)
	}
	if p.InsurerID == "" {
		return ierr.NewError("insurer_id is required").
			WithHint("Policy must reference an insurer").
			Mark(ierr.ErrValidation)
	}
	if p.PolicyNumber == "" {
		return ierr.NewError("policy_number is required").
			WithHint("Policy number cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if err := p.PolicyStatus.Validate(); err != nil {
		return err
	}
	if p.PolicyType != nil {
		if err := p.PolicyType.Validate(); err != nil {
			return err
		}
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ierr.NewError("start_date and end_date are required").
			WithHint("Policy must carry a date range").
			Mark(ierr.ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return ierr.NewError("start_date must not be after end_date").
			WithHint("Policy date range is inverted").
			WithReportableDetails(map[string]interface{}{
				"start_date": p.StartDate,
				"end_date":   p.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether the policy reached a state with no outgoing
// transitions.
func (p *Policy) IsTerminal() bool {
	return IsTerminalStatus(p.PolicyStatus)
}
