package dto

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
	"github.com/coverbridge/coverbridge/internal/validator"
)

type CreatePolicyRequest struct {
	ClientID       string            `json:"client_id" validate:"required"`
	InsurerID      string            `json:"insurer_id" validate:"required"`
	PolicyNumber   string            `json:"policy_number" validate:"required"`
	PolicyType     *types.PolicyType `json:"policy_type,omitempty"`
	StartDate      time.Time         `json:"start_date" validate:"required"`
	EndDate        time.Time         `json:"end_date" validate:"required"`
	TotalPremium   *decimal.Decimal  `json:"total_premium,omitempty"`
	MonthlyPremium *decimal.Decimal  `json:"monthly_premium,omitempty"`
	CoverageCap    *decimal.Decimal  `json:"coverage_cap,omitempty"`
	Deductible     *decimal.Decimal  `json:"deductible,omitempty"`
	CoinsurancePct *decimal.Decimal  `json:"coinsurance_pct,omitempty"`
	PlanName       *string           `json:"plan_name,omitempty"`
	PlanCode       *string           `json:"plan_code,omitempty"`
}

func (r *CreatePolicyRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PolicyType != nil {
		if err := r.PolicyType.Validate(); err != nil {
			return err
		}
	}
	if r.EndDate.Before(r.StartDate) {
		return ierr.NewError("start_date must not be after end_date").
			WithHint("Policy date range is inverted").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ToPolicy builds the domain policy. New policies always start pending;
// the only way to any other status is a transition.
func (r *CreatePolicyRequest) ToPolicy(ctx context.Context) *policy.Policy {
	return &policy.Policy{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY),
		ClientID:       r.ClientID,
		InsurerID:      r.InsurerID,
		PolicyNumber:   r.PolicyNumber,
		PolicyStatus:   types.PolicyStatusPending,
		PolicyType:     r.PolicyType,
		StartDate:      r.StartDate,
		EndDate:        r.EndDate,
		TotalPremium:   r.TotalPremium,
		MonthlyPremium: r.MonthlyPremium,
		CoverageCap:    r.CoverageCap,
		Deductible:     r.Deductible,
		CoinsurancePct: r.CoinsurancePct,
		PlanName:       r.PlanName,
		PlanCode:       r.PlanCode,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

// UpdatePolicyRequest is a partial update; only non-nil fields are
// applied, and only those are checked against the editability table.
type UpdatePolicyRequest struct {
	PolicyNumber   *string           `json:"policy_number,omitempty"`
	PolicyType     *types.PolicyType `json:"policy_type,omitempty"`
	StartDate      *time.Time        `json:"start_date,omitempty"`
	EndDate        *time.Time        `json:"end_date,omitempty"`
	TotalPremium   *decimal.Decimal  `json:"total_premium,omitempty"`
	MonthlyPremium *decimal.Decimal  `json:"monthly_premium,omitempty"`
	CoverageCap    *decimal.Decimal  `json:"coverage_cap,omitempty"`
	Deductible     *decimal.Decimal  `json:"deductible,omitempty"`
	CoinsurancePct *decimal.Decimal  `json:"coinsurance_pct,omitempty"`
	PlanName       *string           `json:"plan_name,omitempty"`
	PlanCode       *string           `json:"plan_code,omitempty"`
}

func (r *UpdatePolicyRequest) Validate() error {
	if len(r.Fields()) == 0 {
		return ierr.NewError("no fields to update").
			WithHint("Provide at least one field to update").
			Mark(ierr.ErrValidation)
	}
	if r.PolicyNumber != nil && *r.PolicyNumber == "" {
		return ierr.NewError("policy_number cannot be empty").
			WithHint("Policy number cannot be cleared").
			Mark(ierr.ErrValidation)
	}
	if r.PolicyType != nil {
		if err := r.PolicyType.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Fields returns the wire names of every field present in the request.
func (r *UpdatePolicyRequest) Fields() []string {
	var fields []string
	add := func(name string, present bool) {
		if present {
			fields = append(fields, name)
		}
	}
	add(policy.FieldPolicyNumber, r.PolicyNumber != nil)
	add(policy.FieldPolicyType, r.PolicyType != nil)
	add(policy.FieldStartDate, r.StartDate != nil)
	add(policy.FieldEndDate, r.EndDate != nil)
	add(policy.FieldTotalPremium, r.TotalPremium != nil)
	add(policy.FieldMonthlyPremium, r.MonthlyPremium != nil)
	add(policy.FieldCoverageCap, r.CoverageCap != nil)
	add(policy.FieldDeductible, r.Deductible != nil)
	add(policy.FieldCoinsurancePct, r.CoinsurancePct != nil)
	add(policy.FieldPlanName, r.PlanName != nil)
	add(policy.FieldPlanCode, r.PlanCode != nil)
	return fields
}

// Apply copies the present fields onto p.
func (r *UpdatePolicyRequest) Apply(p *policy.Policy) {
	if r.PolicyNumber != nil {
		p.PolicyNumber = *r.PolicyNumber
	}
	if r.PolicyType != nil {
		p.PolicyType = r.PolicyType
	}
	if r.StartDate != nil {
		p.StartDate = *r.StartDate
	}
	if r.EndDate != nil {
		p.EndDate = *r.EndDate
	}
	if r.TotalPremium != nil {
		p.TotalPremium = r.TotalPremium
	}
	if r.MonthlyPremium != nil {
		p.MonthlyPremium = r.MonthlyPremium
	}
	if r.CoverageCap != nil {
		p.CoverageCap = r.CoverageCap
	}
	if r.Deductible != nil {
		p.Deductible = r.Deductible
	}
	if r.CoinsurancePct != nil {
		p.CoinsurancePct = r.CoinsurancePct
	}
	if r.PlanName != nil {
		p.PlanName = r.PlanName
	}
	if r.PlanCode != nil {
		p.PlanCode = r.PlanCode
	}
}

type TransitionPolicyRequest struct {
	ToStatus types.PolicyStatus `json:"to_status" validate:"required"`
	Reason   *string            `json:"reason,omitempty"`
	Notes    *string            `json:"notes,omitempty"`
}

func (r *TransitionPolicyRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.ToStatus.Validate()
}

// HasReason reports whether a non-empty justification was supplied.
func (r *TransitionPolicyRequest) HasReason() bool {
	return r.Reason != nil && *r.Reason != ""
}

type PolicyResponse struct {
	*policy.Policy
}

type ListPoliciesResponse struct {
	Items []*PolicyResponse `json:"items"`
	Total int               `json:"total"`
}

type DeletePolicyResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type PolicyHistoryResponse struct {
	Items []*policy.PolicyHistory `json:"items"`
}
