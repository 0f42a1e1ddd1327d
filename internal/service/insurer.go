package service

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// InsurerService manages carriers. Like clients, insurers are soft
// deactivated so historical policies keep their reference.
type InsurerService interface {
	CreateInsurer(ctx context.Context, req dto.CreateInsurerRequest) (*dto.InsurerResponse, error)
	GetInsurer(ctx context.Context, id string) (*dto.InsurerResponse, error)
	UpdateInsurer(ctx context.Context, id string, req dto.UpdateInsurerRequest) (*dto.InsurerResponse, error)
	DeactivateInsurer(ctx context.Context, id string) (*dto.InsurerResponse, error)
}

type insurerService struct {
	ServiceParams
}

func NewInsurerService(params ServiceParams) InsurerService {
	return &insurerService{ServiceParams: params}
}

func (s *insurerService) CreateInsurer(ctx context.Context, req dto.CreateInsurerRequest) (*dto.InsurerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i := req.ToInsurer(ctx)
	if err := i.Validate(); err != nil {
		return nil, err
	}

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.InsurerRepo.Create(ctx, i); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionInsurerCreated, i.ID, types.Metadata{
			"name": i.Name,
			"code": i.Code,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("insurer created", "insurer_id", i.ID)
	return &dto.InsurerResponse{Insurer: i}, nil
}

func (s *insurerService) GetInsurer(ctx context.Context, id string) (*dto.InsurerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("insurer ID is required").
			WithHint("Please provide a valid insurer ID").
			Mark(ierr.ErrValidation)
	}
	i, err := s.InsurerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.InsurerResponse{Insurer: i}, nil
}

func (s *insurerService) UpdateInsurer(ctx context.Context, id string, req dto.UpdateInsurerRequest) (*dto.InsurerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	i, err := s.InsurerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(i)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.InsurerRepo.Update(ctx, i); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionInsurerUpdated, i.ID, nil))
	})
	if err != nil {
		return nil, err
	}

	return &dto.InsurerResponse{Insurer: i}, nil
}

func (s *insurerService) DeactivateInsurer(ctx context.Context, id string) (*dto.InsurerResponse, error) {
	i, err := s.InsurerRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !i.IsActive() {
		return nil, ierr.NewError("insurer is already inactive").
			WithHint("The insurer has already been deactivated").
			WithReportableDetails(map[string]interface{}{
				"insurer_id": i.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	i.Status = types.StatusInactive
	i.UpdatedBy = types.GetUserID(ctx)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.InsurerRepo.Update(ctx, i); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionInsurerDeactivated, i.ID, nil))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("insurer deactivated", "insurer_id", i.ID)
	return &dto.InsurerResponse{Insurer: i}, nil
}

func (s *insurerService) newAuditLog(ctx context.Context, action types.AuditAction, resourceID string, metadata types.Metadata) *auditlog.AuditLog {
	return auditlog.New(ctx, action, types.ResourceTypeInsurer, resourceID, metadata, s.Config.Audit.UserAgentMaxLength)
}
