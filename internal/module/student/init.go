package student

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModuleStudent struct{}

func (*ModuleStudent) GetName() string {
	return "Student"
}

func (*ModuleStudent) Init() {
	log = logger.New("Student")
}
