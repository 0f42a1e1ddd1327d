package repository

import (
	"github.com/coverbridge/coverbridge/internal/domain/affiliate"
	"github.com/coverbridge/coverbridge/internal/domain/auditlog"
	"github.com/coverbridge/coverbridge/internal/domain/client"
	"github.com/coverbridge/coverbridge/internal/domain/insurer"
	"github.com/coverbridge/coverbridge/internal/domain/policy"
	"github.com/coverbridge/coverbridge/internal/logger"
	pgclient "github.com/coverbridge/coverbridge/internal/postgres"
	pgrepo "github.com/coverbridge/coverbridge/internal/repository/postgres"
)

// Constructors re-exported for dependency injection. Today every store is
// postgres; swapping a backend means changing one line here.

func NewPolicyRepository(db pgclient.IClient, log *logger.Logger) policy.Repository {
	return pgrepo.NewPolicyRepository(db, log)
}

func NewPolicyHistoryRepository(db pgclient.IClient, log *logger.Logger) policy.HistoryRepository {
	return pgrepo.NewPolicyHistoryRepository(db, log)
}

func NewClientRepository(db pgclient.IClient, log *logger.Logger) client.Repository {
	return pgrepo.NewClientRepository(db, log)
}

func NewAssignmentRepository(db pgclient.IClient, log *logger.Logger) client.AssignmentRepository {
	return pgrepo.NewAssignmentRepository(db, log)
}

func NewInsurerRepository(db pgclient.IClient, log *logger.Logger) insurer.Repository {
	return pgrepo.NewInsurerRepository(db, log)
}

func NewAffiliateRepository(db pgclient.IClient, log *logger.Logger) affiliate.Repository {
	return pgrepo.NewAffiliateRepository(db, log)
}

func NewAuditLogRepository(db pgclient.IClient, log *logger.Logger) auditlog.Repository {
	return pgrepo.NewAuditLogRepository(db, log)
}
