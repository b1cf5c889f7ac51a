package handlers

import (
	"piclips/internal/services/tip"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const HeaderIdempotencyKey = "Idempotency-Key"

type TipHandler struct {
	tipService tip.Service
}

func NewTipHandler(tipService tip.Service) *TipHandler {
	return &TipHandler{tipService: tipService}
}

// Create handles POST /api/videos/:id/tip
func (h *TipHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Amount int64 `json:"amount"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	t, err := h.tipService.Transfer(c.UserContext(), tip.TransferRequest{
		SenderID:       identity(c).AccountID,
		VideoID:        c.Params("id"),
		Amount:         input.Amount,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Created(c, t)
}

// List handles GET /api/videos/:id/tips
func (h *TipHandler) List(c *fiber.Ctx) error {
	tips, err := h.tipService.ListTips(c.UserContext(), c.Params("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, tips)
}

// Summary handles GET /api/videos/:id/tips/summary
func (h *TipHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.tipService.Summarize(c.UserContext(), c.Params("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, summary)
}
