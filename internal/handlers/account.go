package handlers

import (
	"piclips/internal/services/account"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AccountHandler struct {
	accountService account.Service
}

func NewAccountHandler(accountService account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Me handles GET /api/accounts/me
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	acc, err := h.accountService.Me(c.UserContext(), identity(c))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, acc)
}

// AdjustTokens handles POST /api/admin/accounts/:id/tokens
func (h *AccountHandler) AdjustTokens(c *fiber.Ctx) error {
	var input struct {
		Delta int64 `json:"delta"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	acc, err := h.accountService.AdjustBalance(c.UserContext(), identity(c), c.Params("id"), input.Delta)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, acc)
}
