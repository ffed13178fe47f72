package event

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleEvent) InitRouter(r *gin.RouterGroup) {
	public := r.Group("/event")
	{
		public.GET("/public", PublicList)
		public.GET("/:id", Get)
	}

	admin := r.Group("/event")
	admin.Use(middleware.Auth(model.RoleCollegeAdmin))
	{
		admin.POST("/create", Create)
		admin.GET("/list", List)
		admin.PUT("/:id/update", Update)
		admin.POST("/:id/poster", UploadPoster)
		admin.DELETE("/:id/cancel", Cancel)
	}
}
