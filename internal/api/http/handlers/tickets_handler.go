package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// TicketsHandler manages console ticket endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
	intake  *service.IntakeService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, intake *service.IntakeService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, intake: intake}
}

// CreateTicket POST /tickets. Manual intake by a staff member (walk-in or
// phone report), so no captcha gate applies.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateStaffTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.intake.SubmitStaffTicket(c.UserContext(), service.IntakeInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		IssueAddress: req.IssueAddress,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseTicketQuery(c)
	tickets, err := h.tickets.ListTickets(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketFromDomain(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetTicket(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// UpdateStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TicketFromDomain(ticket)})
}

// UpdateNotes PATCH /tickets/:id/notes.
func (h *TicketsHandler) UpdateNotes(c *fiber.Ctx) error {
	var req dto.UpdateTicketNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.tickets.UpdateNotes(c.UserContext(), c.Params("id"), req.TreatmentNotes); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"id": c.Params("id")}})
}

// StatusCounts GET /tickets/stats/status.
func (h *TicketsHandler) StatusCounts(c *fiber.Ctx) error {
	counts, err := h.tickets.StatusCounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": counts})
}

// ListGeotagged GET /tickets/geo. Only tickets with resolved coordinates.
func (h *TicketsHandler) ListGeotagged(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListGeotagged(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.TicketFromDomain(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{Limit: 50}
	if raw := c.Query("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, domain.TicketStatus(part))
			}
		}
	}
	if raw := c.Query("priority"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Priorities = append(filter.Priorities, domain.TicketPriority(part))
			}
		}
	}
	if category := c.Query("category_id"); category != "" {
		filter.CategoryID = &category
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit <= 200 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}
