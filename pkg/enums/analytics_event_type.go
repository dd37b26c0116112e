package enums

import "fmt"

// AnalyticsEventType is the canonical event_type emitted by the storefront tracker.
type AnalyticsEventType string

const (
	AnalyticsEventProductView        AnalyticsEventType = "product_view"
	AnalyticsEventProductInteraction AnalyticsEventType = "product_interaction"
)

var validAnalyticsEventTypes = []AnalyticsEventType{
	AnalyticsEventProductView,
	AnalyticsEventProductInteraction,
}

func (a AnalyticsEventType) String() string {
	return string(a)
}

// IsValid reports whether the value matches the canonical analytics event_type enum.
func (a AnalyticsEventType) IsValid() bool {
	for _, candidate := range validAnalyticsEventTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAnalyticsEventType converts the raw string to AnalyticsEventType.
func ParseAnalyticsEventType(value string) (AnalyticsEventType, error) {
	for _, candidate := range validAnalyticsEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid analytics event type %q", value)
}
