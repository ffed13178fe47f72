package module

import (
	"campus-events/internal/module/attendance"
	"campus-events/internal/module/auth"
	"campus-events/internal/module/event"
	"campus-events/internal/module/feedback"
	"campus-events/internal/module/ping"
	"campus-events/internal/module/report"
	"campus-events/internal/module/student"
	"campus-events/internal/module/superadmin"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&ping.ModulePing{},
		&auth.ModuleAuth{},
		&superadmin.ModuleSuperAdmin{},
		&student.ModuleStudent{},
		&event.ModuleEvent{},
		&feedback.ModuleFeedback{},
		&attendance.ModuleAttendance{},
		&report.ModuleReport{},
	})
}
