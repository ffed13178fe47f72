package feedback

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleFeedback) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/feedback")
	// 同一层级的路径参数必须同名，:id 在 average 中是活动 ID，其余是评价 ID
	g.GET("/:id/average", AverageHandler)

	self := g.Group("")
	self.Use(middleware.Auth(model.RoleStudent))
	{
		self.POST("/submit", SubmitHandler)
		self.PUT("/:id/update", UpdateHandler)
		self.DELETE("/:id/delete", DeleteHandler)
	}

	admin := g.Group("/admin")
	admin.Use(middleware.Auth(model.RoleCollegeAdmin))
	{
		admin.GET("/all", AdminListHandler)
	}
}
