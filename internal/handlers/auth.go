package handlers

import (
	"piclips/internal/services/auth"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	account, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Created(c, account)
}

// Login handles POST /api/auth/login and returns a bearer token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.Username == "" || input.Password == "" {
		return utils.BadRequest(c, "Username and password are required")
	}

	result, err := h.authService.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, result)
}

// Logout handles POST /api/auth/logout. Every token issued to the caller stops working.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), identity(c).AccountID); err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Logged out successfully"})
}
