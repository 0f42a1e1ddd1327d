package api

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/coverbridge/coverbridge/internal/api/v1"
	"github.com/coverbridge/coverbridge/internal/config"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/rest/middleware"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Health  *v1.HealthHandler
	Policy  *v1.PolicyHandler
	Client  *v1.ClientHandler
	Insurer *v1.InsurerHandler
}

// NewRouter builds the gin engine with the standard middleware chain.
// Authentication happens upstream; the router only requires the identity
// headers the gateway injects.
func NewRouter(handlers Handlers, cfg *config.Configuration, log *logger.Logger) *gin.Engine {
	gin.DefaultWriter = log.GetGinLogger()
	router := gin.New()

	router.Use(
		gin.Recovery(),
		middleware.SentryMiddleware(cfg),
		middleware.LoggingMiddleware(log),
		middleware.ErrorHandler(),
	)

	router.GET("/health", handlers.Health.Health)

	private := router.Group("/v1")
	private.Use(
		middleware.RequestContextMiddleware(),
		middleware.SentryContextMiddleware,
	)

	policies := private.Group("/policies")
	{
		policies.POST("", handlers.Policy.CreatePolicy)
		policies.GET("", handlers.Policy.ListPolicies)
		policies.GET("/:id", handlers.Policy.GetPolicy)
		policies.PATCH("/:id", handlers.Policy.UpdatePolicy)
		policies.DELETE("/:id", handlers.Policy.DeletePolicy)
		policies.POST("/:id/transition", handlers.Policy.TransitionPolicy)
		policies.GET("/:id/history", handlers.Policy.GetPolicyHistory)
	}

	clients := private.Group("/clients")
	{
		clients.POST("", handlers.Client.CreateClient)
		clients.GET("/:id", handlers.Client.GetClient)
		clients.PATCH("/:id", handlers.Client.UpdateClient)
		clients.POST("/:id/deactivate", handlers.Client.DeactivateClient)
	}

	insurers := private.Group("/insurers")
	{
		insurers.POST("", handlers.Insurer.CreateInsurer)
		insurers.GET("/:id", handlers.Insurer.GetInsurer)
		insurers.PATCH("/:id", handlers.Insurer.UpdateInsurer)
		insurers.POST("/:id/deactivate", handlers.Insurer.DeactivateInsurer)
	}

	return router
}
