package policy

import "github.com/coverbridge/coverbridge/internal/types"

// requiredFields maps a target status to the fields that must already be
// non-null on the record before the transition into it is permitted.
var requiredFields = map[types.PolicyStatus][]string{
	types.PolicyStatusActive: {
		FieldStartDate,
		FieldEndDate,
		FieldTotalPremium,
		FieldCoverageCap,
		FieldDeductible,
	},
}

// RequiredFields returns the fields that must be populated before a
// transition into target.
func RequiredFields(target types.PolicyStatus) []string {
	return requiredFields[target]
}

// MissingRequiredFields returns every required field for target that is
// still null on p, in table order, so a violation names all gaps at once.
func MissingRequiredFields(p *Policy, target types.PolicyStatus) []string {
	var missing []string
	for _, field := range requiredFields[target] {
		if !p.hasValue(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

func (p *Policy) hasValue(field string) bool {
	switch field {
	case FieldPolicyNumber:
		return p.PolicyNumber != ""
	case FieldPolicyType:
		return p.PolicyType != nil
	case FieldStartDate:
		return !p.StartDate.IsZero()
	case FieldEndDate:
		return !p.EndDate.IsZero()
	case FieldTotalPremium:
		return p.TotalPremium != nil
	case FieldMonthlyPremium:
		return p.MonthlyPremium != nil
	case FieldCoverageCap:
		return p.CoverageCap != nil
	case FieldDeductible:
		return p.Deductible != nil
	case FieldCoinsurancePct:
		return p.CoinsurancePct != nil
	case FieldPlanName:
		return p.PlanName != nil
	case FieldPlanCode:
		return p.PlanCode != nil
	}
	return false
}
