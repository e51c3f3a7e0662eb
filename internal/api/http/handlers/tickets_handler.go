package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-proxy/internal/api/dto"
	"github.com/spec-kit/freshdesk-proxy/internal/service"
	apperrors "github.com/spec-kit/freshdesk-proxy/pkg/util"
)

// TicketsHandler exposes the proxied ticket endpoints.
type TicketsHandler struct {
	service *service.TicketProxyService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(proxyService *service.TicketProxyService) *TicketsHandler {
	return &TicketsHandler{service: proxyService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("subject and description required", nil)
	}
	if req.Status == nil || req.Priority == nil {
		return apperrors.NewValidationError("status and priority required", nil)
	}

	input := service.TicketCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Subject:     req.Subject,
		Description: req.Description,
		Status:      *req.Status,
		Priority:    *req.Priority,
		Type:        req.Type,
		Tags:        req.Tags,
		CCEmails:    req.CCEmails,
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(ticketProjection(ticket))
}

// FilterByStatus GET /tickets/filter.
func (h *TicketsHandler) FilterByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return apperrors.NewValidationError("Use 'open' or 'closed'.", nil)
	}
	result, err := h.service.FilterByStatus(c.UserContext(), status)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(result)
}

// SearchByContact GET /tickets/search-by-contact.
func (h *TicketsHandler) SearchByContact(c *fiber.Ctx) error {
	number := c.Query("number")
	if number == "" {
		return apperrors.NewValidationError("number required", nil)
	}
	rows, matches, err := h.service.SearchByContactNumber(c.UserContext(), number)
	if err != nil {
		return err
	}
	if matches == 0 {
		return c.JSON(fiber.Map{"message": "No contact found with that number."})
	}
	items := make([]dto.ContactTicketResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.ContactTicketResponse{
			TicketID:    row.TicketID,
			Subject:     row.Subject,
			ContactName: row.ContactName,
			Mobile:      row.Mobile,
			Phone:       row.Phone,
		})
	}
	return c.JSON(items)
}

// AddNote POST /tickets/:id/add-note.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	ticketID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || ticketID <= 0 {
		return apperrors.NewValidationError("invalid ticket id", nil)
	}
	var req dto.AddNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.NoteBody) == "" {
		return apperrors.NewValidationError("note_body required", nil)
	}
	if err := h.service.AddNote(c.UserContext(), ticketID, req.NoteBody); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.AddNoteResponse{
		Message: "Note added",
		Note:    req.NoteBody,
	})
}

// DeleteAll DELETE /tickets/delete-all.
func (h *TicketsHandler) DeleteAll(c *fiber.Ctx) error {
	deleted, err := h.service.DeleteAllTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.DeleteAllResponse{DeletedTickets: deleted})
}

func ticketProjection(ticket *service.TicketProjection) dto.TicketProjectionResponse {
	return dto.TicketProjectionResponse{
		ID:          ticket.ID,
		Subject:     ticket.Subject,
		Description: ticket.Description,
		Status:      ticket.Status,
		Priority:    ticket.Priority,
		RequesterID: ticket.RequesterID,
	}
}
