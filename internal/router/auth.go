package router

import (
	"github.com/aegis-safety/backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(version *gin.RouterGroup) {
	auth := version.Group("/auth")
	{
		// Credential endpoints share a redis rate limit keyed by IP.
		limited := auth.Group("")
		limited.Use(middleware.RateLimit(r.redisClient, r.cfg.RateLimit.Request, r.cfg.RateLimit.Duration))
		{
			limited.POST("/register", r.authHandler.Register)
			limited.POST("/login", r.authHandler.Login)
			limited.POST("/forgot-password", r.authHandler.ForgotPassword)
			limited.POST("/reset-password", r.authHandler.ResetPassword)
			limited.POST("/verify-email", r.authHandler.VerifyEmail)
			limited.POST("/resend-verification", r.authHandler.ResendVerification)
		}

		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.POST("/logout", r.authHandler.Logout)
			protected.PUT("/password", r.authHandler.ChangePassword)

			twoFactor := protected.Group("/2fa")
			{
				twoFactor.POST("/enroll", r.twoFactorHandler.Enroll)
				twoFactor.POST("/confirm", r.twoFactorHandler.Confirm)
				twoFactor.POST("/disable", r.twoFactorHandler.Disable)
			}
		}
	}
}
