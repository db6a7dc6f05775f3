package analytics

import "time"

// TopicEvents is the topic carrying portal analytics events.
const TopicEvents = "portal.events"

// EventType classifies an analytics event.
type EventType string

// Tracked event types.
const (
	EventPageView     EventType = "page_view"
	EventSearchQuery  EventType = "search_query"
	EventServiceClick EventType = "service_click"
	EventFilterUsed   EventType = "filter_used"
	EventThemeToggle  EventType = "theme_toggle"
	EventExternalLink EventType = "external_link"
)

// Valid reports whether t is a known event type.
func (t EventType) Valid() bool {
	switch t {
	case EventPageView, EventSearchQuery, EventServiceClick,
		EventFilterUsed, EventThemeToggle, EventExternalLink:
		return true
	default:
		return false
	}
}

// SearchFilters records which filters were active for a search.
type SearchFilters struct {
	Category []string `json:"category,omitempty"`
	Status   []string `json:"status,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// Event represents a single tracked portal interaction.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Path      string    `json:"path,omitempty"`
	Query     string    `json:"query,omitempty"`
	Category  string    `json:"category,omitempty"`
	ServiceID string    `json:"serviceId,omitempty"`
	Referrer  string    `json:"referrer,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
	ClientIP  string    `json:"clientIp,omitempty"`
	RequestID string    `json:"requestId,omitempty"`

	ResultsCount int            `json:"resultsCount,omitempty"`
	LatencyMs    int64          `json:"latencyMs,omitempty"`
	CacheHit     bool           `json:"cacheHit,omitempty"`
	Filters      *SearchFilters `json:"filters,omitempty"`

	OccurredAt time.Time `json:"occurredAt"`
}

// MessageMetadata exposes the event type to message consumers.
func (e *Event) MessageMetadata() map[string]string {
	return map[string]string{
		"event_id":   e.ID,
		"event_type": string(e.Type),
		"request_id": e.RequestID,
	}
}
