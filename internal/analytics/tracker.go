package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/luxehair/internal/identity"
	"github.com/angelmondragon/luxehair/internal/recentlyviewed"
	"github.com/angelmondragon/luxehair/pkg/enums"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/logger"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// TrackerParams groups dependencies for the tracker.
type TrackerParams struct {
	Visitor *identity.Visitor
	Recent  recentlyviewed.Service
	Handler Handler
	Logger  *logger.Logger
	Metrics *metrics.StoreMetrics
	Now     func() time.Time
}

// Tracker records product views and shopper interactions.
type Tracker struct {
	visitor *identity.Visitor
	recent  recentlyviewed.Service
	handler Handler
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	now     func() time.Time
}

func NewTracker(params TrackerParams) (*Tracker, error) {
	if params.Visitor == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "visitor is required")
	}
	handler := params.Handler
	if handler == nil {
		handler = LogHandler(params.Logger)
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Tracker{
		visitor: params.Visitor,
		recent:  params.Recent,
		handler: handler,
		logg:    params.Logger,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

// TrackProductView emits product_view and pushes the product onto the
// recently viewed list. The list is updated even when the handler fails;
// both failures are returned together.
func (t *Tracker) TrackProductView(ctx context.Context, productID string) (Event, error) {
	event, err := t.emit(ctx, enums.AnalyticsEventProductView, productID, "")
	if event.ProductID == "" {
		return event, err
	}
	if t.recent != nil {
		err = multierr.Append(err, t.recent.Add(ctx, event.ProductID))
	}
	return event, err
}

// TrackInteraction emits product_interaction for a known interaction.
func (t *Tracker) TrackInteraction(ctx context.Context, productID string, interaction enums.Interaction) (Event, error) {
	if !interaction.IsValid() {
		return Event{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown interaction").
			WithDetails(map[string]any{"interaction": interaction.String()})
	}
	return t.emit(ctx, enums.AnalyticsEventProductInteraction, productID, interaction)
}

func (t *Tracker) emit(ctx context.Context, eventType enums.AnalyticsEventType, productID string, interaction enums.Interaction) (Event, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Event{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	visitorID, err := t.visitor.ID(ctx)
	if err != nil {
		// id is still valid for this session
		t.logg.WarnErr(t.logg.WithVisitorID(ctx, visitorID), "tracking with unsaved visitor id", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	event := Event{
		ID:          id,
		Type:        eventType,
		ProductID:   productID,
		Interaction: interaction,
		VisitorID:   visitorID,
		OccurredAt:  t.now().UTC(),
	}
	t.metrics.IncEvent(eventType.String())

	if err := t.handler.Handle(ctx, event); err != nil {
		logCtx := t.logg.WithFields(ctx, map[string]any{
			"event_type": eventType.String(),
			"product_id": productID,
		})
		t.logg.WarnErr(logCtx, "analytics handler failed", err)
		return event, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "handle analytics event")
	}
	return event, nil
}
