package dto

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/client"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
	"github.com/coverbridge/coverbridge/internal/validator"
)

type CreateClientRequest struct {
	Name      string  `json:"name" validate:"required"`
	TaxID     *string `json:"tax_id,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	AddressL1 *string `json:"address_l1,omitempty"`
	AddressL2 *string `json:"address_l2,omitempty"`
	City      *string `json:"city,omitempty"`
	Country   *string `json:"country,omitempty"`
}

func (r *CreateClientRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateClientRequest) ToClient(ctx context.Context) *client.Client {
	return &client.Client{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CLIENT),
		Name:      r.Name,
		TaxID:     r.TaxID,
		Email:     r.Email,
		Phone:     r.Phone,
		AddressL1: r.AddressL1,
		AddressL2: r.AddressL2,
		City:      r.City,
		Country:   r.Country,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	TaxID     *string `json:"tax_id,omitempty"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"phone,omitempty"`
	AddressL1 *string `json:"address_l1,omitempty"`
	AddressL2 *string `json:"address_l2,omitempty"`
	City      *string `json:"city,omitempty"`
	Country   *string `json:"country,omitempty"`
}

func (r *UpdateClientRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("name cannot be empty").
			WithHint("Client name cannot be cleared").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateClientRequest) Apply(c *client.Client) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.TaxID != nil {
		c.TaxID = r.TaxID
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.AddressL1 != nil {
		c.AddressL1 = r.AddressL1
	}
	if r.AddressL2 != nil {
		c.AddressL2 = r.AddressL2
	}
	if r.City != nil {
		c.City = r.City
	}
	if r.Country != nil {
		c.Country = r.Country
	}
}

type ClientResponse struct {
	*client.Client
}
