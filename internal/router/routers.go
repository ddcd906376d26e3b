package router

import (
	"github.com/aegis-safety/backend/config"
	"github.com/aegis-safety/backend/internal/handler"
	"github.com/aegis-safety/backend/internal/middleware"
	"github.com/aegis-safety/backend/pkg/redis"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler      *handler.AuthHandler
	accountHandler   *handler.AccountHandler
	twoFactorHandler *handler.TwoFactorHandler
	healthHandler    *handler.HealthHandler

	jwtMw       *middleware.JWTMiddleware
	redisClient *redis.Client
	cfg         *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	account *handler.AccountHandler,
	twoFactor *handler.TwoFactorHandler,
	health *handler.HealthHandler,
	jwtMw *middleware.JWTMiddleware,
	redisClient *redis.Client,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      auth,
		accountHandler:   account,
		twoFactorHandler: twoFactor,
		healthHandler:    health,
		jwtMw:            jwtMw,
		redisClient:      redisClient,
		cfg:              cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestContext())
	router.Use(middleware.RequestTimeout(r.cfg.App.Timeout))
	router.Use(middleware.CORS())

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.BasicHealth)
		api.GET("/health/ready", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			r.authRoutes(v1)
			r.accountRoutes(v1)
		}
	}

	return router
}
