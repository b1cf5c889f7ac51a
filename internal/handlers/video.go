package handlers

import (
	"piclips/internal/services/video"
	"piclips/internal/storage"
	"piclips/internal/utils"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type VideoHandler struct {
	videoService video.Service
}

func NewVideoHandler(videoService video.Service) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Create handles POST /api/videos as multipart/form-data with the file in "video"
func (h *VideoHandler) Create(c *fiber.Ctx) error {
	input := video.CreateInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Privacy:     c.FormValue("privacy"),
		Thumbnail:   c.FormValue("thumbnail"),
	}

	var upload *storage.Upload
	if fh, err := c.FormFile("video"); err == nil {
		f, err := fh.Open()
		if err != nil {
			log.WithError(err).Warn("Failed to open uploaded file")
			return utils.BadRequest(c, "File upload error")
		}
		defer f.Close()
		upload = &storage.Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Body:        f,
		}
	}

	v, err := h.videoService.Create(c.UserContext(), identity(c).AccountID, input, upload)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Created(c, v)
}

// List handles GET /api/videos with optional ?page=&limit=
func (h *VideoHandler) List(c *fiber.Ctx) error {
	p := utils.GetPagination(c, video.MaxPageSize)
	videos, err := h.videoService.ListPublic(c.UserContext(), video.Page{Limit: p.Limit, Offset: p.Offset})
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, videos)
}

// Get handles GET /api/videos/:id
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	v, err := h.videoService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, v)
}

// ListByUser handles GET /api/videos/user/:userId
func (h *VideoHandler) ListByUser(c *fiber.Ctx) error {
	videos, err := h.videoService.ListByOwner(c.UserContext(), c.Params("userId"), identity(c).AccountID)
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, videos)
}

// ListLiked handles GET /api/videos/liked/:userId
func (h *VideoHandler) ListLiked(c *fiber.Ctx) error {
	videos, err := h.videoService.ListLiked(c.UserContext(), c.Params("userId"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, videos)
}

// Delete handles DELETE /api/videos/:id
func (h *VideoHandler) Delete(c *fiber.Ctx) error {
	if err := h.videoService.Delete(c.UserContext(), identity(c).AccountID, c.Params("id")); err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, fiber.Map{"message": "Video deleted successfully"})
}

// ToggleLike handles POST /api/videos/:id/like
func (h *VideoHandler) ToggleLike(c *fiber.Ctx) error {
	result, err := h.videoService.ToggleLike(c.UserContext(), identity(c).AccountID, c.Params("id"))
	if err != nil {
		return HandleError(c, err)
	}
	return utils.Success(c, result)
}
