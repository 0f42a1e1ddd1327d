package service

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	"github.com/coverbridge/coverbridge/internal/domain/policy"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// PolicyService is the policy lifecycle engine. Every write runs the same
// fixed pipeline: existence/dependency guard, scope check, pure
// graph/editability/invariant checks, then a single atomic commit of the
// business row plus its history and audit rows. Any failing step returns
// immediately; nothing is written before the final transaction.
type PolicyService interface {
	CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest) (*dto.PolicyResponse, error)
	GetPolicy(ctx context.Context, id string) (*dto.PolicyResponse, error)
	ListPolicies(ctx context.Context, filter *types.PolicyFilter) (*dto.ListPoliciesResponse, error)
	UpdatePolicy(ctx context.Context, id string, req dto.UpdatePolicyRequest) (*dto.PolicyResponse, error)
	TransitionPolicy(ctx context.Context, id string, req dto.TransitionPolicyRequest) (*dto.PolicyResponse, error)
	DeletePolicy(ctx context.Context, id string) (*dto.DeletePolicyResponse, error)
	GetPolicyHistory(ctx context.Context, id string) (*dto.PolicyHistoryResponse, error)
}

type policyService struct {
	ServiceParams
	access AccessService
}

func NewPolicyService(params ServiceParams) PolicyService {
	return &policyService{
		ServiceParams: params,
		access:        NewAccessService(params),
	}
}

func (s *policyService) CreatePolicy(ctx context.Context, req dto.CreatePolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Dependency guard: referenced client and insurer must exist in this
	// organization and be active.
	cl, err := s.ClientRepo.Get(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if !cl.IsActive() {
		return nil, ierr.NewError("client is inactive").
			WithHint("The referenced client has been deactivated").
			WithReportableDetails(map[string]interface{}{
				"client_id": cl.ID,
			}).
			Mark(ierr.ErrInactive)
	}

	ins, err := s.InsurerRepo.Get(ctx, req.InsurerID)
	if err != nil {
		return nil, err
	}
	if !ins.IsActive() {
		return nil, ierr.NewError("insurer is inactive").
			WithHint("The referenced insurer has been deactivated").
			WithReportableDetails(map[string]interface{}{
				"insurer_id": ins.ID,
			}).
			Mark(ierr.ErrInactive)
	}

	if err := s.access.AuthorizeClientAccess(ctx, req.ClientID); err != nil {
		return nil, err
	}

	p := req.ToPolicy(ctx)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PolicyRepo.Create(ctx, p); err != nil {
			return err
		}
		if err := s.PolicyHistoryRepo.Create(ctx, s.creationHistory(ctx, p)); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionPolicyCreated, p.ID, types.Metadata{
			"policy_number": p.PolicyNumber,
			"client_id":     p.ClientID,
			"insurer_id":    p.InsurerID,
			"policy_status": p.PolicyStatus,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("policy created",
		"policy_id", p.ID, "policy_number", p.PolicyNumber)

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) GetPolicy(ctx context.Context, id string) (*dto.PolicyResponse, error) {
	if id == "" {
		return nil, ierr.NewError("policy ID is required").
			WithHint("Please provide a valid policy ID").
			Mark(ierr.ErrValidation)
	}

	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeClientAccess(ctx, p.ClientID); err != nil {
		return nil, err
	}

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) ListPolicies(ctx context.Context, filter *types.PolicyFilter) (*dto.ListPoliciesResponse, error) {
	if filter == nil {
		filter = types.NewPolicyFilter()
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	policies, err := s.PolicyRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	count, err := s.PolicyRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PolicyResponse, len(policies))
	for i, p := range policies {
		items[i] = &dto.PolicyResponse{Policy: p}
	}
	return &dto.ListPoliciesResponse{Items: items, Total: count}, nil
}

func (s *policyService) UpdatePolicy(ctx context.Context, id string, req dto.UpdatePolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeClientAccess(ctx, p.ClientID); err != nil {
		return nil, err
	}

	// Editability is a function of the current status only. Every
	// offending field is reported, not just the first.
	requested := req.Fields()
	if offending := policy.NonEditableFields(p.PolicyStatus, requested); len(offending) > 0 {
		return nil, ierr.NewError("fields are not editable in the current status").
			WithHintf("Fields cannot be edited while the policy is %s", p.PolicyStatus).
			WithReportableDetails(map[string]interface{}{
				"fields":        offending,
				"policy_status": p.PolicyStatus,
			}).
			Mark(ierr.ErrFieldNotEditable)
	}

	// A new start date is validated against the stored end date before
	// the patch is applied, even when the same request moves the end date.
	if req.StartDate != nil && req.StartDate.After(p.EndDate) {
		return nil, ierr.NewError("start_date must not be after end_date").
			WithHint("Policy date range would be inverted").
			WithReportableDetails(map[string]interface{}{
				"start_date": *req.StartDate,
				"end_date":   p.EndDate,
			}).
			Mark(ierr.ErrValidation)
	}

	req.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PolicyRepo.Update(ctx, p); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionPolicyUpdated, p.ID, types.Metadata{
			"changed_fields": requested,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("policy updated",
		"policy_id", p.ID, "changed_fields", requested)

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) TransitionPolicy(ctx context.Context, id string, req dto.TransitionPolicyRequest) (*dto.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeClientAccess(ctx, p.ClientID); err != nil {
		return nil, err
	}

	from := p.PolicyStatus
	to := req.ToStatus

	if !policy.CanTransition(from, to) {
		return nil, ierr.NewErrorf("cannot transition policy from %s to %s", from, to).
			WithHintf("No transition exists from %s to %s", from, to).
			WithReportableDetails(map[string]interface{}{
				"from_status": from,
				"to_status":   to,
			}).
			Mark(ierr.ErrInvalidTransition)
	}

	if policy.ReasonRequired(from, to) && !req.HasReason() {
		return nil, ierr.NewErrorf("transition from %s to %s requires a reason", from, to).
			WithHint("A justification is required for this transition").
			WithReportableDetails(map[string]interface{}{
				"from_status": from,
				"to_status":   to,
			}).
			Mark(ierr.ErrReasonRequired)
	}

	if missing := policy.MissingRequiredFields(p, to); len(missing) > 0 {
		return nil, ierr.NewErrorf("policy is missing fields required for status %s", to).
			WithHintf("Populate the required fields before moving the policy to %s", to).
			WithReportableDetails(map[string]interface{}{
				"missing_fields": missing,
				"to_status":      to,
			}).
			Mark(ierr.ErrInvariantViolation)
	}

	p.PolicyStatus = to
	if to == types.PolicyStatusCancelled {
		now := time.Now().UTC()
		p.CancelledAt = &now
		p.CancellationReason = req.Reason
	} else {
		// Cancellation fields hold only while the policy is cancelled.
		p.CancelledAt = nil
		p.CancellationReason = nil
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		// Conditional write: commits only while the stored status still
		// equals the one the checks above ran against.
		if err := s.PolicyRepo.UpdateStatus(ctx, p, from); err != nil {
			return err
		}
		history := &policy.PolicyHistory{
			ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY_HISTORY),
			OrganizationID: p.OrganizationID,
			PolicyID:       p.ID,
			FromStatus:     lo.ToPtr(from),
			ToStatus:       to,
			Reason:         req.Reason,
			Notes:          req.Notes,
			ChangedBy:      types.GetUserID(ctx),
			ChangedAt:      time.Now().UTC(),
		}
		if err := s.PolicyHistoryRepo.Create(ctx, history); err != nil {
			return err
		}
		metadata := types.Metadata{
			"from_status": from,
			"to_status":   to,
		}
		if req.Reason != nil {
			metadata["reason"] = *req.Reason
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionPolicyTransitioned, p.ID, metadata))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("policy transitioned",
		"policy_id", p.ID, "from_status", from, "to_status", to)

	return &dto.PolicyResponse{Policy: p}, nil
}

func (s *policyService) DeletePolicy(ctx context.Context, id string) (*dto.DeletePolicyResponse, error) {
	if id == "" {
		return nil, ierr.NewError("policy ID is required").
			WithHint("Please provide a valid policy ID").
			Mark(ierr.ErrValidation)
	}

	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.access.AuthorizeClientAccess(ctx, p.ClientID); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.PolicyRepo.Delete(ctx, p); err != nil {
			return err
		}
		// The audit row carries the pre-delete snapshot; it is the only
		// trace left once the row is gone.
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionPolicyDeleted, p.ID, types.Metadata{
			"snapshot": p,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("policy deleted", "policy_id", p.ID)

	return &dto.DeletePolicyResponse{ID: p.ID, Deleted: true}, nil
}

func (s *policyService) GetPolicyHistory(ctx context.Context, id string) (*dto.PolicyHistoryResponse, error) {
	p, err := s.PolicyRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.access.AuthorizeClientAccess(ctx, p.ClientID); err != nil {
		return nil, err
	}

	history, err := s.PolicyHistoryRepo.ListByPolicy(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &dto.PolicyHistoryResponse{Items: history}, nil
}

func (s *policyService) creationHistory(ctx context.Context, p *policy.Policy) *policy.PolicyHistory {
	return &policy.PolicyHistory{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_POLICY_HISTORY),
		OrganizationID: p.OrganizationID,
		PolicyID:       p.ID,
		FromStatus:     nil, // creation event
		ToStatus:       p.PolicyStatus,
		ChangedBy:      types.GetUserID(ctx),
		ChangedAt:      time.Now().UTC(),
	}
}

func (s *policyService) newAuditLog(ctx context.Context, action types.AuditAction, resourceID string, metadata types.Metadata) *auditlog.AuditLog {
	return auditlog.New(ctx, action, types.ResourceTypePolicy, resourceID, metadata, s.Config.Audit.UserAgentMaxLength)
}
