package policy

import (
	"github.com/samber/lo"

	"github.com/coverbridge/coverbridge/internal/types"
)

// editableFields maps the current status to the fields a partial update
// may touch. Membership depends on status only, never on the caller.
// Terminal statuses accept no edits.
var editableFields = map[types.PolicyStatus][]string{
	types.PolicyStatusPending: {
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
	},
	types.PolicyStatusActive: {
		FieldEndDate,
		FieldTotalPremium,
		FieldMonthlyPremium,
		FieldCoverageCap,
		FieldDeductible,
		FieldCoinsurancePct,
		FieldPlanName,
		FieldPlanCode,
	},
	types.PolicyStatusSuspended: {
		FieldEndDate,
	},
	types.PolicyStatusExpired:   {},
	types.PolicyStatusCancelled: {},
}

// EditableFields returns the set of fields a partial update may touch for
// the given current status.
func EditableFields(status types.PolicyStatus) []string {
	return editableFields[status]
}

// NonEditableFields returns every requested field outside the editable set
// for the given status, so a failed update can name all offenders at once.
func NonEditableFields(status types.PolicyStatus, requested []string) []string {
	allowed := editableFields[status]
	offending, _ := lo.Difference(requested, allowed)
	return offending
}
