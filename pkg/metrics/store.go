package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records activity of the storefront's stateful stores.
type StoreMetrics struct {
	mutations       *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	checkouts       *prometheus.CounterVec
	events          *prometheus.CounterVec
	storageDuration *prometheus.HistogramVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
// A nil registerer yields a recorder whose methods do nothing.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "State changes applied by storefront stores.",
	}, []string{"store", "op"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_persistence_failures_total",
		Help: "Writes to device storage that did not succeed.",
	}, []string{"key"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_initiations_total",
		Help: "Checkout links generated, by display currency.",
	}, []string{"currency"})
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_events_total",
		Help: "Product analytics events tracked.",
	}, []string{"event"})
	storageDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storage_operation_duration_seconds",
		Help:    "Duration of storage backend operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})
	reg.MustRegister(mutations, persistFailures, checkouts, events, storageDuration)
	return &StoreMetrics{
		mutations:       mutations,
		persistFailures: persistFailures,
		checkouts:       checkouts,
		events:          events,
		storageDuration: storageDuration,
	}
}

// IncMutation counts one applied operation on the named store.
func (m *StoreMetrics) IncMutation(store, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(store), normalizeLabel(op)).Inc()
}

// IncPersistenceFailure counts a failed write of the given storage key.
func (m *StoreMetrics) IncPersistenceFailure(key string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(key)).Inc()
}

// IncCheckout counts a generated checkout link.
func (m *StoreMetrics) IncCheckout(currency string) {
	if m == nil || m.checkouts == nil {
		return
	}
	m.checkouts.WithLabelValues(normalizeLabel(currency)).Inc()
}

// IncEvent counts a tracked analytics event.
func (m *StoreMetrics) IncEvent(event string) {
	if m == nil || m.events == nil {
		return
	}
	m.events.WithLabelValues(normalizeLabel(event)).Inc()
}

// ObserveStorage records how long a storage operation took.
func (m *StoreMetrics) ObserveStorage(op string, duration time.Duration) {
	if m == nil || m.storageDuration == nil {
		return
	}
	m.storageDuration.WithLabelValues(normalizeLabel(op)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
