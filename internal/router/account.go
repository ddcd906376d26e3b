package router

import (
	"github.com/aegis-safety/backend/internal/model"
	"github.com/gin-gonic/gin"
)

func (r *Router) accountRoutes(version *gin.RouterGroup) {
	account := version.Group("/account")
	account.Use(r.jwtMw.RequireAuth())
	{
		account.GET("/me", r.accountHandler.Me)
		account.PUT("/me", r.accountHandler.UpdateProfile)

		admin := account.Group("")
		admin.Use(r.jwtMw.RequireRole(model.RoleAdmin))
		{
			admin.PUT("/:id/active", r.accountHandler.SetActive)
			admin.PUT("/:id/role", r.accountHandler.SetRole)
		}
	}
}
