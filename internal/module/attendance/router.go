package attendance

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleAttendance) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/attendance")
	g.Use(middleware.Auth(model.RoleCollegeAdmin))
	{
		g.POST("/mark", MarkHandler)
		g.POST("/mark-bulk", MarkBulkHandler)
		g.GET("/:event_id/report", ReportHandler)
		g.GET("/student/:student_id/history", HistoryHandler)
	}
}
