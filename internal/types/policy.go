package types

import (
	ierr "github.com/coverbridge/coverbridge/internal/errors"
)

// PolicyStatus is the policy lifecycle state. Expired and cancelled are
// terminal; the allowed movements live in the transition graph in the
// policy domain package.
type PolicyStatus string

const (
	PolicyStatusPending   PolicyStatus = "pending"
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusSuspended PolicyStatus = "suspended"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

func (s PolicyStatus) String() string {
	return string(s)
}

func (s PolicyStatus) Validate() error {
	switch s {
	case PolicyStatusPending, PolicyStatusActive, PolicyStatusSuspended,
		PolicyStatusExpired, PolicyStatusCancelled:
		return nil
	}
	return ierr.NewErrorf("invalid policy status: %s", s).
		WithHint("Policy status must be one of pending, active, suspended, expired, cancelled").
		Mark(ierr.ErrValidation)
}

// PolicyType is an optional product category on a policy.
type PolicyType string

const (
	PolicyTypeHealth   PolicyType = "health"
	PolicyTypeLife     PolicyType = "life"
	PolicyTypeAuto     PolicyType = "auto"
	PolicyTypeProperty PolicyType = "property"
	PolicyTypeOther    PolicyType = "other"
)

func (t PolicyType) Validate() error {
	switch t {
	case PolicyTypeHealth, PolicyTypeLife, PolicyTypeAuto, PolicyTypeProperty, PolicyTypeOther:
		return nil
	}
	return ierr.NewErrorf("invalid policy type: %s", t).
		WithHint("Policy type must be one of health, life, auto, property, other").
		Mark(ierr.ErrValidation)
}

// PolicyFilter represents the filter options for listing policies.
type PolicyFilter struct {
	*QueryFilter
	PolicyIDs  []string       `json:"policy_ids,omitempty" form:"policy_ids"`
	ClientIDs  []string       `json:"client_ids,omitempty" form:"client_ids"`
	InsurerIDs []string       `json:"insurer_ids,omitempty" form:"insurer_ids"`
	Statuses   []PolicyStatus `json:"statuses,omitempty" form:"statuses"`
}

// NewPolicyFilter creates a new policy filter with default pagination.
func NewPolicyFilter() *PolicyFilter {
	return &PolicyFilter{
		QueryFilter: NewDefaultQueryFilter(),
	}
}

func (f *PolicyFilter) Validate() error {
	if f.QueryFilter == nil {
		f.QueryFilter = NewDefaultQueryFilter()
	}
	for _, s := range f.Statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return f.QueryFilter.Validate()
}
