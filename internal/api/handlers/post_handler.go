package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/autogram/internal/queue"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/maheshrc27/autogram/internal/transfer"
)

type PostHandler struct {
	s           service.PostService
	AsynqClient *asynq.Client
}

func NewPostHandler(service service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{s: service, AsynqClient: asynqClient}
}

// CreatePost creates a post from a caption and an optional source image and
// schedules its publish.
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	caption := c.FormValue("caption")
	scheduledTime := c.FormValue("scheduled_time")

	file, err := c.FormFile("image")
	if err != nil {
		file = nil
	}

	postID, delay, err := h.s.Create(c.Context(), &transfer.PostCreation{
		Caption:       caption,
		ScheduledTime: scheduledTime,
	}, file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	err = queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: postID}, delay)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error scheduling post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"post_id": postID,
	})
}

// PublishPost enqueues an immediate publish for an existing post.
func (h *PostHandler) PublishPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid post id",
		})
	}

	if _, err := h.s.PostInfo(c.Context(), int64(postID)); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	err = queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: int64(postID)}, 0)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Error scheduling publish",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Publish queued",
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	postID := c.QueryInt("id", 0)

	if postID != 0 {
		post, err := h.s.PostInfo(c.Context(), int64(postID))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to find post",
			})
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), int64(postID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
