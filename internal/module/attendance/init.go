package attendance

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

// Init 之前使用默认 logger，便于直接调用考勤函数
var log = slog.Default()

type ModuleAttendance struct{}

func (*ModuleAttendance) GetName() string {
	return "Attendance"
}

func (*ModuleAttendance) Init() {
	log = logger.New("Attendance")
}
