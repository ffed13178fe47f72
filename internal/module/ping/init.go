package ping

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModulePing struct{}

func (p *ModulePing) GetName() string {
	return "Ping"
}

func (p *ModulePing) Init() {
	log = logger.New("Ping")
}
