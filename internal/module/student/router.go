package student

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleStudent) InitRouter(r *gin.RouterGroup) {
	admin := r.Group("/student")
	admin.Use(middleware.Auth(model.RoleCollegeAdmin))
	{
		admin.POST("/create", Create)
		admin.GET("/list", List)
		admin.GET("/:id/events", Events)
	}

	self := r.Group("/student")
	self.Use(middleware.Auth(model.RoleStudent))
	{
		self.GET("/me/events", MyEvents)
		self.POST("/register-event", RegisterEvent)
		self.DELETE("/unregister-event/:event_id", UnregisterEvent)
		self.PUT("/profile", UpdateProfile)
		self.PUT("/change-password", ChangePassword)
	}
}
