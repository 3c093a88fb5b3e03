package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// CategoriesHandler manages category administration.
type CategoriesHandler struct {
	categories *service.CategoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(categories *service.CategoryService) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

// ListCategories GET /categories.
func (h *CategoriesHandler) ListCategories(c *fiber.Ctx) error {
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

// CreateCategory POST /categories.
func (h *CategoriesHandler) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.categories.Create(c.UserContext(), req.Name, req.SLAHours)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.CategoryFromDomain(category)})
}

// UpdateCategory PATCH /categories/:id.
func (h *CategoriesHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	category, err := h.categories.Update(c.UserContext(), c.Params("id"), req.Name, req.SLAHours)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CategoryFromDomain(category)})
}

// DeleteCategory DELETE /categories/:id. Refused while tickets still
// reference the category.
func (h *CategoriesHandler) DeleteCategory(c *fiber.Ctx) error {
	if err := h.categories.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
