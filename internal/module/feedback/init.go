package feedback

import (
	"log/slog"

	"campus-events/internal/global/logger"
)

var log = slog.Default()

type ModuleFeedback struct{}

func (*ModuleFeedback) GetName() string {
	return "Feedback"
}

func (*ModuleFeedback) Init() {
	log = logger.New("Feedback")
}
