package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-triage/internal/domain"
	"github.com/spec-kit/ticket-triage/internal/events"
)

// DeadLetterQueue records failed pipeline invocations for later inspection.
type DeadLetterQueue interface {
	Enqueue(ctx context.Context, record domain.FailureRecord) error
}

// DeadLetterService forwards pipeline failures to the dead-letter queue.
// Enqueue failures are logged, never raised to the caller.
type DeadLetterService struct {
	dispatcher events.Dispatcher
	queue      DeadLetterQueue
	logger     *zap.Logger
}

// NewDeadLetterService creates the service.
func NewDeadLetterService(dispatcher events.Dispatcher, queue DeadLetterQueue, logger *zap.Logger) *DeadLetterService {
	return &DeadLetterService{
		dispatcher: dispatcher,
		queue:      queue,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to pipeline failure events.
func (d *DeadLetterService) RegisterHandlers() {
	if d.dispatcher == nil {
		return
	}
	d.dispatcher.Subscribe(events.EventPipelineFailed, d.handlePipelineFailed)
}

func (d *DeadLetterService) handlePipelineFailed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PipelineFailedPayload)
	if !ok {
		d.logger.Warn("unexpected failure payload", zap.String("event_id", event.ID))
		return nil
	}

	record := domain.FailureRecord{
		Error:  payload.Error,
		Ticket: payload.Ticket,
	}
	if err := d.queue.Enqueue(ctx, record); err != nil {
		d.logger.Error("failed to push to dead-letter queue",
			zap.String("ticket_id", event.TicketID),
			zap.Error(err))
		return nil
	}

	d.logger.Info("failure pushed to dead-letter queue",
		zap.String("ticket_id", event.TicketID))
	return nil
}
