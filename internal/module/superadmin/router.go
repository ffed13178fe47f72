package superadmin

import (
	"campus-events/internal/global/middleware"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

func (*ModuleSuperAdmin) InitRouter(r *gin.RouterGroup) {
	g := r.Group("/superadmin")
	g.Use(middleware.Auth(model.RoleSuperAdmin))
	{
		g.POST("/colleges/create", CreateCollege)
		g.GET("/colleges", ListColleges)
		g.GET("/colleges/:id", GetCollege)
		g.DELETE("/colleges/:id", DeleteCollege)
		g.POST("/colleges/:id/admins/create", CreateCollegeAdmin)
		g.GET("/admins", ListAdmins)
		g.DELETE("/admins/:id", DeleteAdmin)
	}
}
