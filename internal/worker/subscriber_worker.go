package worker

import (
	"github.com/spec-kit/ticket-triage/internal/service"
)

// StartSubscribers registers the side-channel event subscribers.
func StartSubscribers(notifications *service.NotificationService, deadLetters *service.DeadLetterService) {
	if notifications != nil {
		notifications.RegisterHandlers()
	}
	if deadLetters != nil {
		deadLetters.RegisterHandlers()
	}
}
