package main

import (
	"context"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/coverbridge/coverbridge/internal/api"
	v1 "github.com/coverbridge/coverbridge/internal/api/v1"
	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/postgres"
	"github.com/coverbridge/coverbridge/internal/repository"
	"github.com/coverbridge/coverbridge/internal/service"
)

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			newDBClient,
			repository.NewPolicyRepository,
			repository.NewPolicyHistoryRepository,
			repository.NewClientRepository,
			repository.NewAssignmentRepository,
			repository.NewInsurerRepository,
			repository.NewAffiliateRepository,
			repository.NewAuditLogRepository,
			service.NewServiceParams,
			service.NewPolicyService,
			service.NewClientService,
			service.NewInsurerService,
			v1.NewHealthHandler,
			v1.NewPolicyHandler,
			v1.NewClientHandler,
			v1.NewInsurerHandler,
			newHandlers,
			api.NewRouter,
		),
		fx.Invoke(initSentry, startServer),
	)

	app.Run()
}

func newDBClient(cfg *config.Configuration, log *logger.Logger) (postgres.IClient, error) {
	return postgres.NewClient(cfg, log)
}

func newHandlers(
	health *v1.HealthHandler,
	policy *v1.PolicyHandler,
	client *v1.ClientHandler,
	insurer *v1.InsurerHandler,
) api.Handlers {
	return api.Handlers{
		Health:  health,
		Policy:  policy,
		Client:  client,
		Insurer: insurer,
	}
}

func initSentry(cfg *config.Configuration, log *logger.Logger) error {
	if !cfg.Sentry.Enabled {
		return nil
	}
	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.Sentry.DSN,
		Environment:      cfg.Sentry.Environment,
		TracesSampleRate: cfg.Sentry.SampleRate,
	})
	if err != nil {
		log.Errorw("failed to initialize sentry", "error", err)
		return err
	}
	return nil
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	router *gin.Engine,
	log *logger.Logger,
) {
	if cfg.Deployment.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting server", "addr", srv.Addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalw("server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping server")
			sentry.Flush(2 * time.Second)
			return srv.Shutdown(ctx)
		},
	})
}
