package types

import (
	"time"

	"context"

	ierr "github.com/coverbridge/coverbridge/internal/errors"
)

// Status is the row-level lifecycle shared by all models. Clients,
// insurers and affiliates are never hard-deleted; their delete is a move
// to StatusInactive.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusDeleted  Status = "deleted"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive, StatusDeleted:
		return nil
	}
	return ierr.NewErrorf("invalid status: %s", s).
		WithHint("Status must be one of active, inactive, deleted").
		Mark(ierr.ErrValidation)
}

// BaseModel holds the columns every table carries. OrganizationID is the
// tenant boundary; every repository query filters on it implicitly.
type BaseModel struct {
	OrganizationID string    `json:"organization_id"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	CreatedBy      string    `json:"created_by"`
	UpdatedBy      string    `json:"updated_by"`
}

// GetDefaultBaseModel builds the base columns for a newly created record
// from the request context.
func GetDefaultBaseModel(ctx context.Context) BaseModel {
	now := time.Now().UTC()
	return BaseModel{
		OrganizationID: GetOrganizationID(ctx),
		Status:         StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
		CreatedBy:      GetUserID(ctx),
		UpdatedBy:      GetUserID(ctx),
	}
}
