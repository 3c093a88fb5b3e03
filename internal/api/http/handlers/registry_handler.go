package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
)

// RegistryHandler serves the merged contact directory and the resident
// aggregation views.
type RegistryHandler struct {
	registry *service.RegistryService
}

// NewRegistryHandler constructs handler.
func NewRegistryHandler(registry *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

// ListContacts GET /contacts. Tickets and leads merged, one entry per phone.
func (h *RegistryHandler) ListContacts(c *fiber.Ctx) error {
	contacts, err := h.registry.Contacts(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, dto.ContactFromRegistry(contact))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListResidents GET /residents. Ticket reporters with per-phone report counts.
func (h *RegistryHandler) ListResidents(c *fiber.Ctx) error {
	residents, err := h.registry.Residents(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ResidentResponse, 0, len(residents))
	for _, resident := range residents {
		items = append(items, dto.ResidentFromRegistry(resident))
	}
	return c.JSON(fiber.Map{"data": items})
}
