package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/autogram/internal/service"
	"github.com/maheshrc27/autogram/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(service service.AccountService) *AccountHandler {
	return &AccountHandler{s: service}
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	accounts, err := h.s.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list accounts",
		})
	}
	return c.Status(fiber.StatusOK).JSON(accounts)
}

func (h *AccountHandler) AddAccount(c *fiber.Ctx) error {
	var ac transfer.AccountCreation
	if err := c.BodyParser(&ac); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	id, err := h.s.Create(c.Context(), &ac)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":    true,
		"account_id": id,
	})
}

// RefreshAccount forces a token refresh for the account.
func (h *AccountHandler) RefreshAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("id", 0)

	if err := h.s.Refresh(c.Context(), int64(accountID)); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *AccountHandler) RemoveAccount(c *fiber.Ctx) error {
	accountID := c.QueryInt("id", 0)

	if err := h.s.Remove(c.Context(), int64(accountID)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove account",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
