package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

const maxPhotoBytes = 10 << 20

// IntakeHandler serves the public intake surface: categories for the form,
// ticket submission, and the contact form.
type IntakeHandler struct {
	intake     *service.IntakeService
	leads      *service.LeadService
	categories *service.CategoryService
}

// NewIntakeHandler constructs handler.
func NewIntakeHandler(intake *service.IntakeService, leads *service.LeadService, categories *service.CategoryService) *IntakeHandler {
	return &IntakeHandler{intake: intake, leads: leads, categories: categories}
}

// ListCategories GET /public/categories.
func (h *IntakeHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.categories.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.CategoryFromDomain(&categories[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SubmitTicket POST /public/tickets. Accepts multipart form data so a photo
// can ride along with the fields.
func (h *IntakeHandler) SubmitTicket(c *fiber.Ctx) error {
	var req dto.SubmitTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.IntakeInput{
		FullName:     req.FullName,
		Phone:        req.Phone,
		Email:        req.Email,
		IssueAddress: req.IssueAddress,
		CategoryID:   req.CategoryID,
		Description:  req.Description,
		CaptchaToken: req.CaptchaToken,
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		if file.Size > maxPhotoBytes {
			return apperrors.NewValidationError("photo too large", map[string]any{"max_bytes": maxPhotoBytes})
		}
		opened, err := file.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable photo", nil)
		}
		content, err := io.ReadAll(opened)
		_ = opened.Close()
		if err != nil {
			return apperrors.NewValidationError("unreadable photo", nil)
		}
		input.Photo = &service.PhotoInput{
			FileName:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Content:     content,
		}
	}

	ticket, err := h.intake.SubmitTicket(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": ticket.ID}})
}

// SubmitLead POST /public/leads.
func (h *IntakeHandler) SubmitLead(c *fiber.Ctx) error {
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
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"id": lead.ID}})
}
