package events

import (
	"context"
	"log/slog"
)

// RegisterAuditLog subscribes a handler that writes one audit record per
// employee mutation.
func RegisterAuditLog(bus *EventBus, lg *slog.Logger) {
	audit := lg.With("component", "audit")
	handler := func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
		}
		if e, ok := event.(*EmployeeEvent); ok {
			attrs = append(attrs, "employee_id", e.EmployeeID, "actor", e.Actor)
		}
		audit.InfoContext(ctx, "audit", attrs...)
		return nil
	}

	for _, t := range []string{EventTypeEmployeeCreated, EventTypeEmployeeUpdated, EventTypeEmployeeDeleted} {
		bus.Subscribe(t, handler)
	}
}
