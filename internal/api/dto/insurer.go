package dto

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/domain/insurer"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
	"github.com/coverbridge/coverbridge/internal/validator"
)

type CreateInsurerRequest struct {
	Name    string  `json:"name" validate:"required"`
	Code    string  `json:"code" validate:"required"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (r *CreateInsurerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateInsurerRequest) ToInsurer(ctx context.Context) *insurer.Insurer {
	return &insurer.Insurer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INSURER),
		Name:      r.Name,
		Code:      r.Code,
		Email:     r.Email,
		Phone:     r.Phone,
		Country:   r.Country,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateInsurerRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (r *UpdateInsurerRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Name != nil && *r.Name == "" {
		return ierr.NewError("name cannot be empty").
			WithHint("Insurer name cannot be cleared").
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r *UpdateInsurerRequest) Apply(i *insurer.Insurer) {
	if r.Name != nil {
		i.Name = *r.Name
	}
	if r.Email != nil {
		i.Email = r.Email
	}
	if r.Phone != nil {
		i.Phone = r.Phone
	}
	if r.Country != nil {
		i.Country = r.Country
	}
}

type InsurerResponse struct {
	*insurer.Insurer
}
