package policy

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/coverbridge/coverbridge/internal/types"
)

func allStatuses() []types.PolicyStatus {
	return []types.PolicyStatus{
		types.PolicyStatusPending,
		types.PolicyStatusActive,
		types.PolicyStatusSuspended,
		types.PolicyStatusExpired,
		types.PolicyStatusCancelled,
	}
}

func TestCanTransition(t *testing.T) {
	allowed := map[types.PolicyStatus][]types.PolicyStatus{
		types.PolicyStatusPending:   {types.PolicyStatusActive, types.PolicyStatusCancelled},
		types.PolicyStatusActive:    {types.PolicyStatusSuspended, types.PolicyStatusExpired, types.PolicyStatusCancelled},
		types.PolicyStatusSuspended: {types.PolicyStatusActive, types.PolicyStatusExpired, types.PolicyStatusCancelled},
		types.PolicyStatusExpired:   {},
		types.PolicyStatusCancelled: {},
	}

	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			want := lo.Contains(allowed[from], to)
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_SelfLoopsRejected(t *testing.T) {
	for _, s := range allStatuses() {
		assert.False(t, CanTransition(s, s), "self loop on %s", s)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, IsTerminalStatus(types.PolicyStatusExpired))
	assert.True(t, IsTerminalStatus(types.PolicyStatusCancelled))
	assert.False(t, IsTerminalStatus(types.PolicyStatusPending))
	assert.False(t, IsTerminalStatus(types.PolicyStatusActive))
	assert.False(t, IsTerminalStatus(types.PolicyStatusSuspended))

	// Terminal means no outgoing edge to anywhere.
	for _, terminal := range []types.PolicyStatus{types.PolicyStatusExpired, types.PolicyStatusCancelled} {
		for _, to := range allStatuses() {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
		}
	}
}

func TestReasonRequired(t *testing.T) {
	// Every edge into cancelled and the suspension edge need a reason.
	assert.True(t, ReasonRequired(types.PolicyStatusPending, types.PolicyStatusCancelled))
	assert.True(t, ReasonRequired(types.PolicyStatusActive, types.PolicyStatusCancelled))
	assert.True(t, ReasonRequired(types.PolicyStatusSuspended, types.PolicyStatusCancelled))
	assert.True(t, ReasonRequired(types.PolicyStatusActive, types.PolicyStatusSuspended))

	assert.False(t, ReasonRequired(types.PolicyStatusPending, types.PolicyStatusActive))
	assert.False(t, ReasonRequired(types.PolicyStatusSuspended, types.PolicyStatusActive))
	assert.False(t, ReasonRequired(types.PolicyStatusActive, types.PolicyStatusExpired))
	assert.False(t, ReasonRequired(types.PolicyStatusSuspended, types.PolicyStatusExpired))

	// Non-edges never require a reason.
	assert.False(t, ReasonRequired(types.PolicyStatusExpired, types.PolicyStatusActive))
}

func TestEditableFields(t *testing.T) {
	// Pending allows everything patchable.
	assert.ElementsMatch(t, AllFields(), EditableFields(types.PolicyStatusPending))

	// Active locks identity and inception.
	active := EditableFields(types.PolicyStatusActive)
	assert.NotContains(t, active, FieldPolicyNumber)
	assert.NotContains(t, active, FieldStartDate)
	assert.NotContains(t, active, FieldPolicyType)
	assert.Contains(t, active, FieldEndDate)
	assert.Contains(t, active, FieldTotalPremium)
	assert.Contains(t, active, FieldPlanCode)

	assert.Equal(t, []string{FieldEndDate}, EditableFields(types.PolicyStatusSuspended))
	assert.Empty(t, EditableFields(types.PolicyStatusExpired))
	assert.Empty(t, EditableFields(types.PolicyStatusCancelled))
}

func TestEditableFields_SubsetOfAllFields(t *testing.T) {
	for _, s := range allStatuses() {
		for _, f := range EditableFields(s) {
			assert.Contains(t, AllFields(), f, "status %s", s)
		}
	}
}

func TestNonEditableFields(t *testing.T) {
	requested := []string{FieldPolicyNumber, FieldEndDate, FieldStartDate}

	offending := NonEditableFields(types.PolicyStatusActive, requested)
	assert.ElementsMatch(t, []string{FieldPolicyNumber, FieldStartDate}, offending)

	assert.Empty(t, NonEditableFields(types.PolicyStatusPending, requested))
	assert.ElementsMatch(t, requested, NonEditableFields(types.PolicyStatusCancelled, requested))
}

func TestMissingRequiredFields(t *testing.T) {
	p := &Policy{
		PolicyNumber: "POL-1001",
		StartDate:    time.Now(),
		EndDate:      time.Now().AddDate(1, 0, 0),
	}

	missing := MissingRequiredFields(p, types.PolicyStatusActive)
	assert.Equal(t, []string{FieldTotalPremium, FieldCoverageCap, FieldDeductible}, missing)

	p.TotalPremium = lo.ToPtr(decimal.NewFromInt(1200))
	p.CoverageCap = lo.ToPtr(decimal.NewFromInt(500000))
	p.Deductible = lo.ToPtr(decimal.NewFromInt(250))
	assert.Empty(t, MissingRequiredFields(p, types.PolicyStatusActive))

	// Only activation carries record-shape requirements.
	empty := &Policy{}
	assert.Empty(t, MissingRequiredFields(empty, types.PolicyStatusCancelled))
	assert.Empty(t, MissingRequiredFields(empty, types.PolicyStatusExpired))
	assert.Empty(t, MissingRequiredFields(empty, types.PolicyStatusSuspended))
}

func TestPolicyValidate(t *testing.T) {
	valid := func() *Policy {
		return &Policy{
			ClientID:     "clnt_1",
			InsurerID:    "insr_1",
			PolicyNumber: "POL-1001",
			PolicyStatus: types.PolicyStatusPending,
			StartDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:      time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		}
	}

	assert.NoError(t, valid().Validate())

	p := valid()
	p.ClientID = ""
	assert.Error(t, p.Validate())

	p = valid()
	p.PolicyNumber = ""
	assert.Error(t, p.Validate())

	p = valid()
	p.StartDate, p.EndDate = p.EndDate, p.StartDate
	assert.Error(t, p.Validate())

	// Equal start and end is a valid one-day policy.
	p = valid()
	p.EndDate = p.StartDate
	assert.NoError(t, p.Validate())

	p = valid()
	p.PolicyStatus = types.PolicyStatus("archived")
	assert.Error(t, p.Validate())
}
