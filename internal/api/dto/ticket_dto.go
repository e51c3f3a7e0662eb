package dto

// CreateTicketRequest payload. Optional fields stay nil when omitted so the
// proxy forwards only what the caller actually sent.
type CreateTicketRequest struct {
	Name        *string  `json:"name"`
	Email       *string  `json:"email"`
	Phone       *string  `json:"phone"`
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	Status      *int     `json:"status"`
	Priority    *int     `json:"priority"`
	Type        *string  `json:"type"`
	Tags        []string `json:"tags"`
	CCEmails    []string `json:"cc_emails"`
}

// TicketProjectionResponse is the flattened view of a created ticket.
type TicketProjectionResponse struct {
	ID          int64  `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
	Status      int    `json:"status"`
	Priority    int    `json:"priority"`
	RequesterID int64  `json:"requester_id"`
}

// ContactTicketResponse is one row of the contact-number search result.
type ContactTicketResponse struct {
	TicketID    int64  `json:"ticket_id"`
	Subject     string `json:"subject"`
	ContactName string `json:"contact_name"`
	Mobile      string `json:"mobile"`
	Phone       string `json:"phone"`
}

// AddNoteRequest payload.
type AddNoteRequest struct {
	NoteBody string `json:"note_body"`
}

// AddNoteResponse confirms the stored note.
type AddNoteResponse struct {
	Message string `json:"message"`
	Note    string `json:"note"`
}

// DeleteAllResponse lists the ids the upstream confirmed deleted.
type DeleteAllResponse struct {
	DeletedTickets []int64 `json:"deleted_tickets"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}
