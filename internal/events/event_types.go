package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventNoteAdded      EventType = "note_added"
	EventTicketsPurged  EventType = "tickets_purged"
	EventContactSearch  EventType = "contact_search"
	EventStatusFiltered EventType = "status_filtered"
)

// Event represents a proxy action forwarded to the helpdesk API.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID    int64  `json:"ticket_id"`
	Subject     string `json:"subject"`
	RequesterID int64  `json:"requester_id"`
}

// NoteAddedPayload payload.
type NoteAddedPayload struct {
	TicketID int64 `json:"ticket_id"`
}

// TicketsPurgedPayload payload.
type TicketsPurgedPayload struct {
	Listed  int     `json:"listed"`
	Deleted []int64 `json:"deleted"`
}

// ContactSearchPayload payload.
type ContactSearchPayload struct {
	Number  string `json:"number"`
	Matches int    `json:"matches"`
	Tickets int    `json:"tickets"`
}

// StatusFilteredPayload payload.
type StatusFilteredPayload struct {
	Status string `json:"status"`
	Code   int    `json:"code"`
}
