package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-proxy/internal/events"
	"github.com/spec-kit/freshdesk-proxy/internal/freshdesk"
	apperrors "github.com/spec-kit/freshdesk-proxy/pkg/util"
)

// Status tokens accepted by the filter endpoint, mapped to the upstream's
// internal status codes.
var statusCodes = map[string]int{
	"open":   2,
	"closed": 5,
}

const contactsPageSize = 100

// maxContactPages guards against an upstream that never returns an empty page.
const maxContactPages = 10000

// TicketProxyService forwards ticket operations to the helpdesk API.
type TicketProxyService struct {
	client     *freshdesk.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ProxyDependencies bundles collaborators for the proxy service.
type ProxyDependencies struct {
	Client     *freshdesk.Client
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTicketProxyService constructs the service.
func NewTicketProxyService(deps ProxyDependencies) *TicketProxyService {
	return &TicketProxyService{
		client:     deps.Client,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// TicketCreateInput describes ticket creation payload. Pointer fields are
// forwarded upstream only when the caller provided them.
type TicketCreateInput struct {
	Name        *string
	Email       *string
	Phone       *string
	Subject     string
	Description string
	Status      int
	Priority    int
	Type        *string
	Tags        []string
	CCEmails    []string
}

// TicketProjection is the flattened view of a created ticket.
type TicketProjection struct {
	ID          int64
	Subject     string
	Description string
	Status      int
	Priority    int
	RequesterID int64
}

// ContactTicketRow is one flattened row of the contact search result.
type ContactTicketRow struct {
	TicketID    int64
	Subject     string
	ContactName string
	Mobile      string
	Phone       string
}

// CreateTicket forwards all provided fields to the upstream ticket endpoint
// and projects the created ticket.
func (s *TicketProxyService) CreateTicket(ctx context.Context, input TicketCreateInput) (*TicketProjection, error) {
	fields := map[string]any{
		"subject":     input.Subject,
		"description": input.Description,
		"status":      input.Status,
		"priority":    input.Priority,
	}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Email != nil {
		fields["email"] = *input.Email
	}
	if input.Phone != nil {
		fields["phone"] = *input.Phone
	}
	if input.Type != nil {
		fields["type"] = *input.Type
	}
	if input.Tags != nil {
		fields["tags"] = input.Tags
	}
	if input.CCEmails != nil {
		fields["cc_emails"] = input.CCEmails
	}

	ticket, err := s.client.CreateTicket(ctx, fields)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	s.publish(ctx, events.EventTicketCreated, events.TicketCreatedPayload{
		TicketID:    ticket.ID,
		Subject:     ticket.Subject,
		RequesterID: ticket.RequesterID,
	})

	return &TicketProjection{
		ID:          ticket.ID,
		Subject:     ticket.Subject,
		Description: ticket.DescriptionText,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		RequesterID: ticket.RequesterID,
	}, nil
}

// FilterByStatus resolves the status token and forwards a ticket search.
// The upstream JSON is returned unchanged.
func (s *TicketProxyService) FilterByStatus(ctx context.Context, status string) (json.RawMessage, error) {
	code, ok := statusCodes[strings.ToLower(status)]
	if !ok {
		return nil, apperrors.NewValidationError("Use 'open' or 'closed'.", nil)
	}

	// the upstream search syntax wants the query wrapped in double quotes
	query := fmt.Sprintf(`"status:%d"`, code)
	result, err := s.client.SearchTickets(ctx, query)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	s.publish(ctx, events.EventStatusFiltered, events.StatusFilteredPayload{
		Status: strings.ToLower(status),
		Code:   code,
	})
	return result, nil
}

// SearchByContactNumber walks the full contacts listing, collects contacts
// whose phone or mobile equals number, and flattens their tickets. The
// returned match count distinguishes "no contact" from "contacts without
// tickets". Ticket fetch failures for individual contacts are skipped.
func (s *TicketProxyService) SearchByContactNumber(ctx context.Context, number string) ([]ContactTicketRow, int, error) {
	var matched []freshdesk.Contact
	for page := 1; page <= maxContactPages; page++ {
		contacts, err := s.client.ListContacts(ctx, page, contactsPageSize)
		if err != nil {
			return nil, 0, mapUpstreamError(err)
		}
		if len(contacts) == 0 {
			break
		}
		for _, contact := range contacts {
			if contact.Phone == number || contact.Mobile == number {
				matched = append(matched, contact)
			}
		}
	}

	results := make([]ContactTicketRow, 0)
	for _, contact := range matched {
		tickets, err := s.client.ListTicketsByRequester(ctx, contact.ID)
		if err != nil {
			s.logger.Warn("skipping contact after ticket fetch failed",
				zap.Int64("contact_id", contact.ID),
				zap.Error(err),
			)
			continue
		}
		for _, ticket := range tickets {
			results = append(results, ContactTicketRow{
				TicketID:    ticket.ID,
				Subject:     ticket.Subject,
				ContactName: contact.Name,
				Mobile:      contact.Mobile,
				Phone:       contact.Phone,
			})
		}
	}

	s.publish(ctx, events.EventContactSearch, events.ContactSearchPayload{
		Number:  number,
		Matches: len(matched),
		Tickets: len(results),
	})
	return results, len(matched), nil
}

// AddNote attaches a non-incoming note to the ticket.
func (s *TicketProxyService) AddNote(ctx context.Context, ticketID int64, noteBody string) error {
	if err := s.client.CreateNote(ctx, ticketID, noteBody); err != nil {
		return mapUpstreamError(err)
	}
	s.publish(ctx, events.EventNoteAdded, events.NoteAddedPayload{TicketID: ticketID})
	return nil
}

// DeleteAllTickets lists every ticket and deletes them one by one, returning
// the ids the upstream confirmed. Per-item failures are omitted, not fatal.
func (s *TicketProxyService) DeleteAllTickets(ctx context.Context) ([]int64, error) {
	tickets, err := s.client.ListTickets(ctx)
	if err != nil {
		var apiErr *freshdesk.APIError
		if errors.As(err, &apiErr) {
			return nil, apperrors.NewUpstreamError(apiErr.StatusCode, "Failed to fetch tickets")
		}
		return nil, apperrors.NewInternalError(err)
	}

	deleted := make([]int64, 0, len(tickets))
	for _, ticket := range tickets {
		if err := s.client.DeleteTicket(ctx, ticket.ID); err != nil {
			s.logger.Warn("ticket delete failed",
				zap.Int64("ticket_id", ticket.ID),
				zap.Error(err),
			)
			continue
		}
		deleted = append(deleted, ticket.ID)
	}

	s.publish(ctx, events.EventTicketsPurged, events.TicketsPurgedPayload{
		Listed:  len(tickets),
		Deleted: deleted,
	})
	return deleted, nil
}

// PingUpstream reports helpdesk API reachability for readiness checks.
func (s *TicketProxyService) PingUpstream(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *TicketProxyService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}

func mapUpstreamError(err error) error {
	if errors.Is(err, freshdesk.ErrNotJSON) {
		return apperrors.NewUpstreamFormatError()
	}
	var apiErr *freshdesk.APIError
	if errors.As(err, &apiErr) {
		return apperrors.NewUpstreamError(apiErr.StatusCode, apiErr.Body)
	}
	return apperrors.NewInternalError(err)
}
