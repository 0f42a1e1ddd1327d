package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/coverbridge/coverbridge/internal/domain/affiliate"
	"github.com/coverbridge/coverbridge/internal/domain/client"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/testutil"
	"github.com/coverbridge/coverbridge/internal/types"
)

type AccessServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AccessService
}

func TestAccessService(t *testing.T) {
	suite.Run(t, new(AccessServiceSuite))
}

func (s *AccessServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewAccessService(ServiceParams{
		Logger:         s.GetLogger(),
		Config:         s.GetConfig(),
		DB:             s.GetDB(),
		AssignmentRepo: stores.AssignmentStore,
		AffiliateRepo:  stores.AffiliateStore,
	})
}

func (s *AccessServiceSuite) assign(userID, clientID string) *client.Assignment {
	a := &client.Assignment{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ASSIGNMENT),
		OrganizationID: testutil.TestOrganizationID,
		UserID:         userID,
		ClientID:       clientID,
		AssignedBy:     testutil.TestUserID,
		AssignedAt:     time.Now().UTC(),
	}
	s.Require().NoError(s.GetStores().AssignmentStore.Create(s.GetContext(), a))
	return a
}

func (s *AccessServiceSuite) affiliateLink(userID, clientID string, status types.Status) *affiliate.Affiliate {
	a := &affiliate.Affiliate{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_AFFILIATE),
		UserID:    userID,
		ClientID:  clientID,
		FirstName: "Jordan",
		LastName:  "Reyes",
		BaseModel: types.BaseModel{
			OrganizationID: testutil.TestOrganizationID,
			Status:         status,
		},
	}
	s.Require().NoError(s.GetStores().AffiliateStore.Create(s.GetContext(), a))
	return a
}

func (s *AccessServiceSuite) TestAllScope() {
	// No assignment, no affiliate link, still allowed.
	ctx := s.WithAccessScope(types.AccessScopeAll)
	s.NoError(s.service.AuthorizeClientAccess(ctx, "clnt_any"))
}

func (s *AccessServiceSuite) TestClientScope() {
	ctx := s.WithAccessScope(types.AccessScopeClient)

	err := s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	a := s.assign(testutil.TestUserID, "clnt_acme")
	s.NoError(s.service.AuthorizeClientAccess(ctx, "clnt_acme"))

	// A grant on one client says nothing about another.
	err = s.service.AuthorizeClientAccess(ctx, "clnt_globex")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// Revocation takes effect on the next call.
	s.Require().NoError(s.GetStores().AssignmentStore.Delete(s.GetContext(), a))
	err = s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AccessServiceSuite) TestClientScope_OtherUsersGrantDoesNotApply() {
	ctx := s.WithAccessScope(types.AccessScopeClient)
	s.assign("user_someone_else", "clnt_acme")

	err := s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AccessServiceSuite) TestOwnScope() {
	ctx := s.WithAccessScope(types.AccessScopeOwn)

	err := s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	link := s.affiliateLink(testutil.TestUserID, "clnt_acme", types.StatusActive)
	s.NoError(s.service.AuthorizeClientAccess(ctx, "clnt_acme"))

	// Deactivating the link revokes access even though the row remains.
	link.Status = types.StatusInactive
	s.Require().NoError(s.GetStores().AffiliateStore.Update(s.GetContext(), link))
	err = s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AccessServiceSuite) TestOwnScope_InactiveLinkFromTheStart() {
	ctx := s.WithAccessScope(types.AccessScopeOwn)
	s.affiliateLink(testutil.TestUserID, "clnt_acme", types.StatusInactive)

	err := s.service.AuthorizeClientAccess(ctx, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))
}

func (s *AccessServiceSuite) TestScopeDefaultsToOwn() {
	// A context that never had a scope set resolves to the narrowest
	// level, which denies without an affiliate link.
	bare := context.Background()
	bare = context.WithValue(bare, types.CtxOrganizationID, testutil.TestOrganizationID)
	bare = context.WithValue(bare, types.CtxUserID, testutil.TestUserID)

	err := s.service.AuthorizeClientAccess(bare, "clnt_acme")
	s.Error(err)
	s.True(ierr.IsPermissionDenied(err))

	// The same caller passes once the link exists.
	s.affiliateLink(testutil.TestUserID, "clnt_acme", types.StatusActive)
	s.NoError(s.service.AuthorizeClientAccess(bare, "clnt_acme"))
}
