package insurer

import (
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// Insurer represents an insurance carrier. Like clients, insurers are
// soft-deactivated, never hard-deleted.
type Insurer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Code      string  `json:"code"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Country   *string `json:"country,omitempty"`
	types.BaseModel
}

// IsActive reports whether the insurer may be referenced by new or
// mutated policies.
func (i *Insurer) IsActive() bool {
	return i.Status == types.StatusActive
}

// Validate validates the insurer.
func (i *Insurer) Validate() error {
	if i.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Insurer name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	if i.Code == "" {
		return ierr.NewError("code is required").
			WithHint("Insurer code cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}
