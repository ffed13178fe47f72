package auth

import (
	"campus-events/internal/global/middleware"

	"github.com/gin-gonic/gin"
)

func (*ModuleAuth) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/auth")
	{
		g.POST("/admin/login", AdminLogin)
		g.POST("/student/login", StudentLogin)
	}
	authed := r.Group("/auth")
	authed.Use(middleware.Auth())
	{
		authed.GET("/me", Me)
		authed.POST("/logout", Logout)
	}
}
