package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autogram/internal/models"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/maheshrc27/autogram/internal/transfer"
)

type GenerateHandler struct {
	g *service.ContentGenerator
}

func NewGenerateHandler(generator *service.ContentGenerator) *GenerateHandler {
	return &GenerateHandler{g: generator}
}

// GenerateContent previews generated caption or hashtag text without
// creating a post.
func (h *GenerateHandler) GenerateContent(c *fiber.Ctx) error {
	var req transfer.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Unable to parse json",
		})
	}

	if req.ContentType == "" {
		req.ContentType = models.ContentTypeCaption
	}

	content := h.g.Generate(c.Context(), req.ContentType, req.TemplateID)

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"content": content,
	})
}
