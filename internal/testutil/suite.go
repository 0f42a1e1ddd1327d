package testutil

import (
	"context"

	"github.com/stretchr/testify/suite"

	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/types"
)

const (
	TestOrganizationID = "org_01hq0test0000000000000000"
	TestUserID         = "user_01hq0test000000000000000"
	TestRequestID      = "req_01hq0test0000000000000000"
)

// noopClient satisfies postgres.IClient for service tests. The in-memory
// stores keep their own state, so WithTx just runs fn; a step failing
// mid-callback therefore stops the later writes the same way a rollback
// would hide them.
type noopClient struct{}

func (noopClient) Querier(ctx context.Context) postgres.Querier { return nil }

func (noopClient) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// NewNoopDBClient returns a postgres.IClient for wiring services in tests.
func NewNoopDBClient() postgres.IClient {
	return noopClient{}
}

// Stores bundles every in-memory repository a service test needs.
type Stores struct {
	PolicyStore        *InMemoryPolicyStore
	PolicyHistoryStore *InMemoryPolicyHistoryStore
	ClientStore        *InMemoryClientStore
	AssignmentStore    *InMemoryAssignmentStore
	InsurerStore       *InMemoryInsurerStore
	AffiliateStore     *InMemoryAffiliateStore
	AuditLogStore      *InMemoryAuditLogStore
}

func NewStores() Stores {
	return Stores{
		PolicyStore:        NewInMemoryPolicyStore(),
		PolicyHistoryStore: NewInMemoryPolicyHistoryStore(),
		ClientStore:        NewInMemoryClientStore(),
		AssignmentStore:    NewInMemoryAssignmentStore(),
		InsurerStore:       NewInMemoryInsurerStore(),
		AffiliateStore:     NewInMemoryAffiliateStore(),
		AuditLogStore:      NewInMemoryAuditLogStore(),
	}
}

func (s Stores) Clear() {
	s.PolicyStore.Clear()
	s.PolicyHistoryStore.Clear()
	s.ClientStore.Clear()
	s.AssignmentStore.Clear()
	s.InsurerStore.Clear()
	s.AffiliateStore.Clear()
	s.AuditLogStore.Clear()
}

// BaseServiceTestSuite provides the shared fixture for service tests: a
// request context carrying a test organization, user and scope, a logger,
// a no-op database client and fresh in-memory stores per test.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	logger *logger.Logger
	config *config.Configuration
	db     postgres.IClient
	stores Stores
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.logger = log
	s.config = cfg
	s.db = NewNoopDBClient()
	s.stores = NewStores()
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.Clear()
}

func (s *BaseServiceTestSuite) setupContext() {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxRequestID, TestRequestID)
	ctx = context.WithValue(ctx, types.CtxOrganizationID, TestOrganizationID)
	ctx = context.WithValue(ctx, types.CtxUserID, TestUserID)
	ctx = context.WithValue(ctx, types.CtxAccessScope, types.AccessScopeAll)
	s.ctx = ctx
}

// GetContext returns the fixture context (scope "all" unless overridden
// via WithAccessScope).
func (s *BaseServiceTestSuite) GetContext() context.Context { return s.ctx }

// WithAccessScope returns the fixture context rebound to the given scope.
func (s *BaseServiceTestSuite) WithAccessScope(scope types.AccessScope) context.Context {
	return context.WithValue(s.ctx, types.CtxAccessScope, scope)
}

// WithUser returns the fixture context rebound to another user.
func (s *BaseServiceTestSuite) WithUser(userID string) context.Context {
	return context.WithValue(s.ctx, types.CtxUserID, userID)
}

// WithOrganization returns the fixture context rebound to another tenant.
func (s *BaseServiceTestSuite) WithOrganization(orgID string) context.Context {
	return context.WithValue(s.ctx, types.CtxOrganizationID, orgID)
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger        { return s.logger }
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration { return s.config }
func (s *BaseServiceTestSuite) GetDB() postgres.IClient          { return s.db }
func (s *BaseServiceTestSuite) GetStores() Stores                { return s.stores }
