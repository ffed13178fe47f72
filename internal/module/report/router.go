package report

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleReport) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/report")
	g.Use(middleware.Auth(model.RoleCollegeAdmin))
	{
		g.GET("/popular-events", PopularEventsHandler)
		g.GET("/student-participation", StudentParticipationHandler)
		g.GET("/top-students", TopStudentsHandler)
		g.GET("/event-type-analytics", EventTypeAnalyticsHandler)
		g.GET("/attendance-trends", AttendanceTrendsHandler)
		g.GET("/dashboard-stats", DashboardStatsHandler)
		g.GET("/export", ExportHandler)
	}
}
