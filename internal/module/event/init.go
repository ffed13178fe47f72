package event

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModuleEvent struct{}

func (*ModuleEvent) GetName() string {
	return "Event"
}

func (*ModuleEvent) Init() {
	log = logger.New("Event")
}
