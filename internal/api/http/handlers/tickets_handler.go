package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/triage-service/internal/api/dto"
	"github.com/spec-kit/triage-service/internal/service"
	apperrors "github.com/spec-kit/triage-service/pkg/util"
)

// TicketsHandler exposes the triage workflow over HTTP.
type TicketsHandler struct {
	service *service.TriageService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(triageService *service.TriageService) *TicketsHandler {
	return &TicketsHandler{service: triageService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CreateTicket(c.UserContext(), req.Description)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.service.ListTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTickets(tickets)})
}

// GetTicket GET /tickets/:no.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.UserContext(), c.Params("no"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Search POST /tickets/search.
func (h *TicketsHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tickets, facets, err := h.service.Search(c.UserContext(), req.Query)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SearchResponse{
		Status:   facets.Status,
		Severity: facets.Severity,
		Tickets:  dto.FromTickets(tickets),
	}})
}

// CloseTicket POST /tickets/:no/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	var req dto.CloseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.service.CloseManually(c.UserContext(), c.Params("no"), req.ResolutionNotes)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// Process POST /process runs one automatic processing pass.
func (h *TicketsHandler) Process(c *fiber.Ctx) error {
	processed, err := h.service.ProcessOpenTickets(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ProcessResponse{Processed: processed}})
}

// ListResolutions GET /resolutions.
func (h *TicketsHandler) ListResolutions(c *fiber.Ctx) error {
	entries, err := h.service.Resolutions(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ResolutionEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.ResolutionEntryResponse{
			TicketNo:        entry.TicketNo,
			Resolution:      entry.Resolution,
			ApprovedByHuman: entry.ApprovedByHuman,
			CreatedAt:       entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
