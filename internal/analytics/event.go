package analytics

import (
	"context"
	"time"

	"github.com/angelmondragon/luxehair/pkg/enums"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/google/uuid"
)

// Event is a single storefront analytics record.
type Event struct {
	ID          uuid.UUID                `json:"eventId"`
	Type        enums.AnalyticsEventType `json:"eventType"`
	ProductID   string                   `json:"productId"`
	Interaction enums.Interaction        `json:"interaction,omitempty"`
	VisitorID   string                   `json:"visitorId"`
	OccurredAt  time.Time                `json:"occurredAt"`
}

// Handler defines how to process analytics events.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts functions to the Handler interface.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (fn HandlerFunc) Handle(ctx context.Context, event Event) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, event)
}

// LogHandler writes each event as a structured info line.
func LogHandler(logg *logger.Logger) Handler {
	return HandlerFunc(func(ctx context.Context, event Event) error {
		fields := map[string]any{
			"event_id":    event.ID.String(),
			"event_type":  event.Type.String(),
			"product_id":  event.ProductID,
			"visitor_id":  event.VisitorID,
			"occurred_at": event.OccurredAt.Format(time.RFC3339Nano),
		}
		if event.Interaction != "" {
			fields["interaction"] = event.Interaction.String()
		}
		logg.Info(logg.WithFields(ctx, fields), "analytics event")
		return nil
	})
}
