package superadmin

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModuleSuperAdmin struct{}

func (*ModuleSuperAdmin) GetName() string {
	return "SuperAdmin"
}

func (*ModuleSuperAdmin) Init() {
	log = logger.New("SuperAdmin")
}
