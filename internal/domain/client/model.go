package client

import (
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// Client represents an insured employer/customer. Clients are never
// hard-deleted; deactivation moves BaseModel.Status to inactive.
type Client struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	TaxID      *string `json:"tax_id,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	AddressL1  *string `json:"address_l1,omitempty"`
	AddressL2  *string `json:"address_l2,omitempty"`
	City       *string `json:"city,omitempty"`
	Country    *string `json:"country,omitempty"`
	types.BaseModel
}

// IsActive reports whether the client may be referenced by new or mutated
// policies.
func (c *Client) IsActive() bool {
	return c.Status == types.StatusActive
}

// Validate validates the client.
func (c *Client) Validate() error {
	if c.Name == "" {
		return ierr.NewError("name is required").
			WithHint("Client name cannot be empty").
			Mark(ierr.ErrValidation)
	}
	return nil
}
