package worker

import (
	"github.com/auroranet/portal-service/internal/events"
	"github.com/auroranet/portal-service/internal/service"
)

// StartNotificationWorker wires notification handlers onto the dispatcher.
func StartNotificationWorker(notifications *service.NotificationService, dispatcher events.Dispatcher) {
	if notifications == nil || dispatcher == nil {
		return
	}
	notifications.Register(dispatcher)
}
