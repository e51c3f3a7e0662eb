package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-proxy/internal/events"
)

// StartAuditWorker subscribes an audit log to every proxy event type.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")

	handler := func(_ context.Context, event events.Event) error {
		audit.Info("proxy action",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Time("at", event.Timestamp),
			zap.Any("payload", event.Payload),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventNoteAdded,
		events.EventTicketsPurged,
		events.EventContactSearch,
		events.EventStatusFiltered,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
