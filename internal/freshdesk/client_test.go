package freshdesk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/freshdesk-proxy/internal/config"
	"github.com/spec-kit/freshdesk-proxy/internal/observability"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *observability.Metrics) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	metrics := observability.NewMetrics()
	cfg := config.FreshdeskConfig{
		APIKey:          "test-key",
		BaseURLOverride: server.URL,
		TimeoutSeconds:  5,
	}
	return NewClient(cfg, zap.NewNop(), metrics), metrics
}

func TestClient_SendsBasicCredentials(t *testing.T) {
	var gotUser, gotPass string
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.ListTickets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "test-key", gotUser)
	assert.Equal(t, "X", gotPass)
}

func TestClient_CreateTicket(t *testing.T) {
	client, metrics := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/tickets", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Printer down", payload["subject"])
		assert.NotContains(t, payload, "name")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "subject": "Printer down", "description_text": "it broke", "status": 2, "priority": 1, "requester_id": 7}`))
	}))

	ticket, err := client.CreateTicket(context.Background(), map[string]any{
		"subject":     "Printer down",
		"description": "it broke",
		"status":      2,
		"priority":    1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), ticket.ID)
	assert.Equal(t, "it broke", ticket.DescriptionText)
	assert.Equal(t, int64(7), ticket.RequesterID)
	assert.Equal(t, int64(1), metrics.UpstreamCalls("/tickets", http.StatusCreated))
}

func TestClient_CreateTicketUpstreamFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"description":"Validation failed"}`))
	}))

	_, err := client.CreateTicket(context.Background(), map[string]any{"subject": "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "Validation failed")
}

func TestClient_CreateTicketNonJSONResponse(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html>login page</html>`))
	}))

	_, err := client.CreateTicket(context.Background(), map[string]any{"subject": "x"})
	assert.True(t, errors.Is(err, ErrNotJSON))
}

func TestClient_SearchTicketsPassesQueryThrough(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search/tickets", r.URL.Path)
		require.Equal(t, `"status:2"`, r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total": 1, "results": [{"id": 9}]}`))
	}))

	raw, err := client.SearchTickets(context.Background(), `"status:2"`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total": 1, "results": [{"id": 9}]}`, string(raw))
}

func TestClient_ListContactsPaginationParams(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/contacts", r.URL.Path)
		require.Equal(t, "3", r.URL.Query().Get("page"))
		require.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 1, "name": "Ada", "phone": "123", "mobile": ""}]`))
	}))

	contacts, err := client.ListContacts(context.Background(), 3, 100)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Ada", contacts[0].Name)
}

func TestClient_ListTicketsByRequester(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("requester_id"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 11, "subject": "one"}, {"id": 12, "subject": "two"}]`))
	}))

	tickets, err := client.ListTicketsByRequester(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, tickets, 2)
}

func TestClient_DeleteTicket(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/tickets/42", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.NoError(t, client.DeleteTicket(context.Background(), 42))
}

func TestClient_DeleteTicketFailure(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "gone"}`))
	}))

	err := client.DeleteTicket(context.Background(), 42)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestClient_CreateNotePayload(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets/9/notes", r.URL.Path)
		var payload NotePayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "call the customer back", payload.Body)
		assert.False(t, payload.Incoming)
		w.WriteHeader(http.StatusCreated)
	}))

	assert.NoError(t, client.CreateNote(context.Background(), 9, "call the customer back"))
}

func TestClient_PingFailsOnUpstreamError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	assert.Error(t, client.Ping(context.Background()))
}
