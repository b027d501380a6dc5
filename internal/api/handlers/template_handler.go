package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/maheshrc27/autogram/internal/transfer"
)

type TemplateHandler struct {
	s service.TemplateService
}

func NewTemplateHandler(service service.TemplateService) *TemplateHandler {
	return &TemplateHandler{s: service}
}

func (h *TemplateHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list templates",
		})
	}
	return c.Status(fiber.StatusOK).JSON(templates)
}

func (h *TemplateHandler) CreateTemplate(c *fiber.Ctx) error {
	var tc transfer.TemplateCreation
	if err := c.BodyParser(&tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Create(c.Context(), &tc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":     true,
		"template_id": id,
	})
}

func (h *TemplateHandler) UpdateTemplate(c *fiber.Ctx) error {
	templateID := c.QueryInt("id", 0)

	var tc transfer.TemplateCreation
	if err := c.BodyParser(&tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	if err := h.s.Update(c.Context(), int64(templateID), &tc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *TemplateHandler) RemoveTemplate(c *fiber.Ctx) error {
	templateID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), int64(templateID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove template",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
