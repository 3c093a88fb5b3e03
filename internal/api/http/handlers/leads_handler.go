package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/domain"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// LeadsHandler manages console lead endpoints.
type LeadsHandler struct {
	leads *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leads *service.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// ListLeads GET /leads.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	var status *domain.LeadStatus
	if raw := c.Query("status"); raw != "" {
		value := domain.LeadStatus(raw)
		status = &value
	}
	var search *string
	if raw := c.Query("search"); raw != "" {
		search = &raw
	}
	limit := 50
	if parsed, err := strconv.Atoi(c.Query("limit")); err == nil && parsed > 0 && parsed <= 200 {
		limit = parsed
	}
	offset := 0
	if parsed, err := strconv.Atoi(c.Query("offset")); err == nil && parsed > 0 {
		offset = parsed
	}

	leads, err := h.leads.List(c.UserContext(), status, search, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, dto.LeadFromDomain(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateLead POST /leads. Manual lead entry from the console.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	lead, err := h.leads.Create(c.UserContext(), service.LeadInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
		Message:  req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.LeadFromDomain(lead)})
}

// ToggleStatus PATCH /leads/:id/status flips open and closed.
func (h *LeadsHandler) ToggleStatus(c *fiber.Ctx) error {
	lead, err := h.leads.ToggleStatus(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LeadFromDomain(lead)})
}

// DeleteLead DELETE /leads/:id.
func (h *LeadsHandler) DeleteLead(c *fiber.Ctx) error {
	if err := h.leads.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
