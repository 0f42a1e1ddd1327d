package service

import (
	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/domain/affiliate"
	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	"github.com/coverbridge/coverbridge/internal/domain/client"
	"github.com/coverbridge/coverbridge/internal/domain/insurer"
	"github.com/coverbridge/coverbridge/internal/domain/policy"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
)

// ServiceParams holds the dependencies shared by all services. Services
// embed it so adding a repository does not touch every constructor.
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient

	PolicyRepo        policy.Repository
	PolicyHistoryRepo policy.HistoryRepository
	ClientRepo        client.Repository
	AssignmentRepo    client.AssignmentRepository
	InsurerRepo       insurer.Repository
	AffiliateRepo     affiliate.Repository
	AuditLogRepo      auditlog.Repository
}

// NewServiceParams builds ServiceParams (for fx registration).
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	policyRepo policy.Repository,
	policyHistoryRepo policy.HistoryRepository,
	clientRepo client.Repository,
	assignmentRepo client.AssignmentRepository,
	insurerRepo insurer.Repository,
	affiliateRepo affiliate.Repository,
	auditLogRepo auditlog.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:            logger,
		Config:            config,
		DB:                db,
		PolicyRepo:        policyRepo,
		PolicyHistoryRepo: policyHistoryRepo,
		ClientRepo:        clientRepo,
		AssignmentRepo:    assignmentRepo,
		InsurerRepo:       insurerRepo,
		AffiliateRepo:     affiliateRepo,
		AuditLogRepo:      auditLogRepo,
	}
}
