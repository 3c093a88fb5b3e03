package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/api/dto"
	"github.com/liorkima5-coder/CityPulseAI/internal/service"
	apperrors "github.com/liorkima5-coder/CityPulseAI/pkg/util"
)

// StaffHandler manages console authentication.
type StaffHandler struct {
	auth *service.AuthService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(auth *service.AuthService) *StaffHandler {
	return &StaffHandler{auth: auth}
}

// Login handles POST /auth/staff/login.
func (h *StaffHandler) Login(c *fiber.Ctx) error {
	var req dto.StaffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	staff, token, expiresAt, err := h.auth.LoginStaff(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StaffLoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Name:      staff.Name,
		Role:      string(staff.Role),
	}})
}
