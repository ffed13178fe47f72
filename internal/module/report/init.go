package report

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModuleReport struct{}

func (*ModuleReport) GetName() string {
	return "Report"
}

func (*ModuleReport) Init() {
	log = logger.New("Report")
}
