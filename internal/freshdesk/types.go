package freshdesk

// Ticket is the subset of the upstream ticket object the proxy reads.
type Ticket struct {
	ID              int64  `json:"id"`
	Subject         string `json:"subject"`
	DescriptionText string `json:"description_text"`
	Status          int    `json:"status"`
	Priority        int    `json:"priority"`
	RequesterID     int64  `json:"requester_id"`
}

// Contact is the subset of the upstream contact object the proxy reads.
type Contact struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Mobile string `json:"mobile"`
}

// NotePayload is the body sent to the note creation endpoint.
type NotePayload struct {
	Body     string `json:"body"`
	Incoming bool   `json:"incoming"`
}
