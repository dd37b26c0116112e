package analytics

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/luxehair/internal/catalog"
	"github.com/angelmondragon/luxehair/internal/identity"
	"github.com/angelmondragon/luxehair/internal/recentlyviewed"
	"github.com/angelmondragon/luxehair/pkg/enums"
	pkgerrors "github.com/angelmondragon/luxehair/pkg/errors"
	"github.com/angelmondragon/luxehair/pkg/metrics"
	"github.com/angelmondragon/luxehair/pkg/storage"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) Handle(_ context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func (r *recorder) recorded() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

type fixture struct {
	tracker *Tracker
	recent  recentlyviewed.Service
	handler *recorder
	reg     *prometheus.Registry
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := storage.NewMemory()
	store, err := catalog.Default()
	require.NoError(t, err)

	recent, err := recentlyviewed.NewService(ctx, recentlyviewed.ServiceParams{Storage: st, Catalog: store})
	require.NoError(t, err)
	visitor, err := identity.NewVisitor(identity.Params{
		Storage: st,
		NewID:   func() string { return "anon_fixed" },
	})
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	handler := &recorder{}
	tracker, err := NewTracker(TrackerParams{
		Visitor: visitor,
		Recent:  recent,
		Handler: handler,
		Metrics: metrics.NewStoreMetrics(reg),
		Now:     func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	return fixture{tracker: tracker, recent: recent, handler: handler, reg: reg}
}

func TestTrackProductViewRecordsHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	event, err := f.tracker.TrackProductView(ctx, "wig-002")
	require.NoError(t, err)
	assert.Equal(t, enums.AnalyticsEventProductView, event.Type)
	assert.Equal(t, "anon_fixed", event.VisitorID)
	assert.Equal(t, "wig-002", event.ProductID)
	assert.Empty(t, event.Interaction)
	assert.NotEqual(t, [16]byte{}, [16]byte(event.ID))

	_, err = f.tracker.TrackProductView(ctx, "care-001")
	require.NoError(t, err)

	assert.Equal(t, []string{"care-001", "wig-002"}, f.recent.IDs())
	assert.Len(t, f.handler.recorded(), 2)
	assert.Equal(t, 2.0, eventCount(t, f.reg, "product_view"))
}

func TestTrackInteraction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	event, err := f.tracker.TrackInteraction(ctx, "wig-001", enums.InteractionAddToCart)
	require.NoError(t, err)
	assert.Equal(t, enums.AnalyticsEventProductInteraction, event.Type)
	assert.Equal(t, enums.InteractionAddToCart, event.Interaction)
	assert.Empty(t, f.recent.IDs(), "interactions do not touch history")
	assert.Equal(t, 1.0, eventCount(t, f.reg, "product_interaction"))
}

func TestTrackRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.tracker.TrackInteraction(ctx, "wig-001", enums.Interaction("share"))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = f.tracker.TrackProductView(ctx, "  ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	assert.Empty(t, f.handler.recorded())
	assert.Empty(t, f.recent.IDs())
}

func TestHandlerFailureStillRecordsHistory(t *testing.T) {
	f := newFixture(t)
	f.handler.err = errors.New("sink offline")

	_, err := f.tracker.TrackProductView(context.Background(), "wig-003")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeDependency))
	assert.Equal(t, []string{"wig-003"}, f.recent.IDs())
}

func TestNewTrackerRequiresVisitor(t *testing.T) {
	_, err := NewTracker(TrackerParams{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestLogHandlerAcceptsNilLogger(t *testing.T) {
	err := LogHandler(nil).Handle(context.Background(), Event{Type: enums.AnalyticsEventProductView, ProductID: "wig-001"})
	assert.NoError(t, err)
}

func eventCount(t *testing.T, reg *prometheus.Registry, event string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != "analytics_events_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "event" && label.GetValue() == event {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
