package notify

import (
	"storefront-gateway/internal/util"

	"go.uber.org/zap"
)

// Notifier is the gateway's side of the toast surface: workflows emit
// success/failure notifications here, the front end renders the payloads
// the API returns.
type Notifier interface {
	Success(title, description string)
	Failure(title, description string)
}

// LogNotifier emits notifications to the service log
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: util.GetLogger()}
}

func (n *LogNotifier) Success(title, description string) {
	n.logger.Info("Notification",
		zap.String("level", "success"),
		zap.String("title", title),
		zap.String("description", description))
}

func (n *LogNotifier) Failure(title, description string) {
	n.logger.Warn("Notification",
		zap.String("level", "error"),
		zap.String("title", title),
		zap.String("description", description))
}
