package service

import (
	"context"

	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/types"
)

// AccessService decides whether the caller may act on resources linked to
// a given client, based on the breadth level resolved upstream. It reads
// only; denials are logged as structured warnings.
type AccessService interface {
	AuthorizeClientAccess(ctx context.Context, clientID string) error
}

type accessService struct {
	ServiceParams
}

func NewAccessService(params ServiceParams) AccessService {
	return &accessService{
		ServiceParams: params,
	}
}

func (s *accessService) AuthorizeClientAccess(ctx context.Context, clientID string) error {
	scope := types.GetAccessScope(ctx)
	userID := types.GetUserID(ctx)

	switch scope {
	case types.AccessScopeAll:
		// Organization membership was established upstream; nothing more
		// to check.
		return nil

	case types.AccessScopeClient:
		_, err := s.AssignmentRepo.Get(ctx, userID, clientID)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.deny(ctx, scope, clientID, "no assignment for client")
				return s.permissionDenied(scope, clientID)
			}
			return err
		}
		return nil

	case types.AccessScopeOwn:
		aff, err := s.AffiliateRepo.GetByUserAndClient(ctx, userID, clientID)
		if err != nil {
			if ierr.IsNotFound(err) {
				s.deny(ctx, scope, clientID, "no affiliate link for client")
				return s.permissionDenied(scope, clientID)
			}
			return err
		}
		if !aff.IsActive() {
			s.deny(ctx, scope, clientID, "affiliate link inactive")
			return s.permissionDenied(scope, clientID)
		}
		return nil
	}

	// The scope set is closed; anything else is a bug upstream.
	return ierr.NewErrorf("unknown access scope: %s", scope).
		WithHint("Caller breadth level could not be resolved").
		Mark(ierr.ErrValidation)
}

func (s *accessService) deny(ctx context.Context, scope types.AccessScope, clientID, reason string) {
	s.Logger.WithContext(ctx).Warnw("access denied",
		"scope", scope,
		"client_id", clientID,
		"reason", reason,
	)
}

func (s *accessService) permissionDenied(scope types.AccessScope, clientID string) error {
	return ierr.NewError("access to client denied").
		WithHint("You do not have access to this client").
		WithReportableDetails(map[string]interface{}{
			"scope":     scope,
			"client_id": clientID,
		}).
		Mark(ierr.ErrPermissionDenied)
}
