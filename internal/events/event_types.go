package events

import "time"

// EventType enumerates dashboard events.
type EventType string

const (
	EventTicketsLoaded        EventType = "tickets_loaded"
	EventTicketsLoadFailed    EventType = "tickets_load_failed"
	EventSearchApplied        EventType = "search_applied"
	EventTicketSelected       EventType = "ticket_selected"
	EventCommentsFetchFailed  EventType = "comments_fetch_failed"
	EventStaleDetailDiscarded EventType = "stale_detail_discarded"
)

// Event represents something that happened on a dashboard.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id,omitempty"`
	TicketID  string      `json:"ticket_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// TicketsLoadedPayload payload.
type TicketsLoadedPayload struct {
	Count      int `json:"count"`
	Duplicates int `json:"duplicates"`
}

// FailurePayload carries the error of a failed remote call.
type FailurePayload struct {
	Error string `json:"error"`
}

// SearchAppliedPayload payload.
type SearchAppliedPayload struct {
	Query   string `json:"query"`
	Matches int    `json:"matches"`
	Total   int    `json:"total"`
}

// TicketSelectedPayload payload.
type TicketSelectedPayload struct {
	Generation uint64 `json:"generation"`
	CommentIDs int    `json:"comment_ids"`
}

// StaleDetailPayload records a discarded detail result.
type StaleDetailPayload struct {
	Generation        uint64 `json:"generation"`
	CurrentGeneration uint64 `json:"current_generation"`
}
