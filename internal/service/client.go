package service

import (
	"context"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// ClientService manages the brokerage's corporate clients. Clients are
// never hard-deleted; deactivation flips the row status so existing
// policies keep a valid reference while new ones are refused.
type ClientService interface {
	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error)
	GetClient(ctx context.Context, id string) (*dto.ClientResponse, error)
	UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error)
	DeactivateClient(ctx context.Context, id string) (*dto.ClientResponse, error)
}

type clientService struct {
	ServiceParams
}

func NewClientService(params ServiceParams) ClientService {
	return &clientService{ServiceParams: params}
}

func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := req.ToClient(ctx)

	err := s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ClientRepo.Create(ctx, c); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionClientCreated, c.ID, types.Metadata{
			"name": c.Name,
		}))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("client created", "client_id", c.ID)
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	if id == "" {
		return nil, ierr.NewError("client ID is required").
			WithHint("Please provide a valid client ID").
			Mark(ierr.ErrValidation)
	}
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(c)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ClientRepo.Update(ctx, c); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionClientUpdated, c.ID, nil))
	})
	if err != nil {
		return nil, err
	}

	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) DeactivateClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := s.ClientRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsActive() {
		return nil, ierr.NewError("client is already inactive").
			WithHint("The client has already been deactivated").
			WithReportableDetails(map[string]interface{}{
				"client_id": c.ID,
			}).
			Mark(ierr.ErrInvalidOperation)
	}

	c.Status = types.StatusInactive
	c.UpdatedBy = types.GetUserID(ctx)

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := s.ClientRepo.Update(ctx, c); err != nil {
			return err
		}
		return s.AuditLogRepo.Create(ctx, s.newAuditLog(ctx, types.AuditActionClientDeactivated, c.ID, nil))
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithContext(ctx).Infow("client deactivated", "client_id", c.ID)
	return &dto.ClientResponse{Client: c}, nil
}

func (s *clientService) newAuditLog(ctx context.Context, action types.AuditAction, resourceID string, metadata types.Metadata) *auditlog.AuditLog {
	return auditlog.New(ctx, action, types.ResourceTypeClient, resourceID, metadata, s.Config.Audit.UserAgentMaxLength)
}
