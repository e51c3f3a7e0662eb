package freshdesk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-proxy/internal/config"
	"github.com/spec-kit/freshdesk-proxy/internal/observability"
)

// ErrNotJSON indicates the upstream answered with a non-JSON body, which
// Freshdesk does when a request falls through to its HTML error pages.
var ErrNotJSON = errors.New("upstream returned non-JSON response")

// APIError carries an upstream failure status and raw body.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// Client talks to the Freshdesk REST API with HTTP Basic credentials.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewClient connects to the upstream API using the provided configuration.
func NewClient(cfg config.FreshdeskConfig, logger *zap.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:    cfg.BaseURL(),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateTicket forwards the given fields to the ticket creation endpoint.
func (c *Client) CreateTicket(ctx context.Context, fields map[string]any) (*Ticket, error) {
	status, contentType, body, err := c.call(ctx, http.MethodPost, "/tickets", nil, fields)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(contentType, "application/json") {
		return nil, ErrNotJSON
	}
	if status != http.StatusCreated {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	var ticket Ticket
	if err := json.Unmarshal(body, &ticket); err != nil {
		return nil, fmt.Errorf("decode ticket: %w", err)
	}
	return &ticket, nil
}

// SearchTickets runs a ticket search query and returns the upstream JSON unchanged.
func (c *Client) SearchTickets(ctx context.Context, query string) (json.RawMessage, error) {
	params := url.Values{"query": {query}}
	status, _, body, err := c.call(ctx, http.MethodGet, "/search/tickets", params, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}
	return json.RawMessage(body), nil
}

// ListContacts fetches one page of the contacts listing.
func (c *Client) ListContacts(ctx context.Context, page, perPage int) ([]Contact, error) {
	params := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	status, _, body, err := c.call(ctx, http.MethodGet, "/contacts", params, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	var contacts []Contact
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("decode contacts: %w", err)
	}
	return contacts, nil
}

// ListTicketsByRequester fetches the tickets raised by one contact.
func (c *Client) ListTicketsByRequester(ctx context.Context, requesterID int64) ([]Ticket, error) {
	params := url.Values{"requester_id": {strconv.FormatInt(requesterID, 10)}}
	status, _, body, err := c.call(ctx, http.MethodGet, "/tickets", params, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	var tickets []Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}

// ListTickets fetches the default tickets listing.
func (c *Client) ListTickets(ctx context.Context) ([]Ticket, error) {
	status, _, body, err := c.call(ctx, http.MethodGet, "/tickets", nil, nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, &APIError{StatusCode: status, Body: string(body)}
	}

	var tickets []Ticket
	if err := json.Unmarshal(body, &tickets); err != nil {
		return nil, fmt.Errorf("decode tickets: %w", err)
	}
	return tickets, nil
}

// CreateNote attaches a private note to a ticket.
func (c *Client) CreateNote(ctx context.Context, ticketID int64, noteBody string) error {
	path := fmt.Sprintf("/tickets/%d/notes", ticketID)
	payload := NotePayload{Body: noteBody, Incoming: false}
	status, _, body, err := c.call(ctx, http.MethodPost, path, nil, payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return &APIError{StatusCode: status, Body: string(body)}
	}
	return nil
}

// DeleteTicket removes one ticket.
func (c *Client) DeleteTicket(ctx context.Context, ticketID int64) error {
	path := fmt.Sprintf("/tickets/%d", ticketID)
	status, _, body, err := c.call(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusNoContent {
		return &APIError{StatusCode: status, Body: string(body)}
	}
	return nil
}

// Ping verifies upstream reachability with a minimal listing request.
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{"per_page": {"1"}}
	status, _, body, err := c.call(ctx, http.MethodGet, "/tickets", params, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return &APIError{StatusCode: status, Body: string(body)}
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values, payload any) (int, string, []byte, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, "", nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, "", nil, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "X")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", nil, fmt.Errorf("call upstream: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, fmt.Errorf("read response: %w", err)
	}

	c.metrics.RecordUpstream(path, resp.StatusCode)
	if c.logger != nil {
		c.logger.Debug("upstream call",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
	}

	return resp.StatusCode, resp.Header.Get("Content-Type"), body, nil
}
