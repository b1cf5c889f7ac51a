package handlers

import (
	"piclips/internal/services/comment"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Add handles POST /api/videos/:id/comment
func (h *CommentHandler) Add(c *fiber.Ctx) error {
	var input struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	result, err := h.commentService.Add(c.UserContext(), identity(c).AccountID, c.Params("id"), input.Content)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Created(c, result)
}

// List handles GET /api/videos/:id/comments
func (h *CommentHandler) List(c *fiber.Ctx) error {
	comments, err := h.commentService.List(c.UserContext(), c.Params("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, comments)
}

// Delete handles DELETE /api/videos/:id/comments/:commentId
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	result, err := h.commentService.Delete(c.UserContext(), identity(c).AccountID, c.Params("id"), c.Params("commentId"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, fiber.Map{
		"message":      "Comment deleted successfully",
		"commentCount": result.CommentCount,
	})
}
