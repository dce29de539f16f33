package worker

import (
	"go.uber.org/zap"

	"github.com/Night40050/support-copilot/internal/service"
)

// StartNotificationWorker subscribes the notification handlers to the event dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()
	if logger != nil {
		logger.Info("notification handlers registered")
	}
}
