package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

type ContactHandler struct {
	service ports.ContactService
	log     *zap.Logger
}

func NewContactHandler(service ports.ContactService, log *zap.Logger) *ContactHandler {
	return &ContactHandler{
		service: service,
		log:     log,
	}
}

type ContactRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Notes       string `json:"notes"`
	Tags        string `json:"tags"`
}

func (h *ContactHandler) Create(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	contact := domain.Contact{
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}

	if err := h.service.Create(c.Context(), userID(c), &contact); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (h *ContactHandler) Update(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	contact := domain.Contact{
		ID:          c.Params("id"),
		Name:        req.Name,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Notes:       req.Notes,
		Tags:        req.Tags,
	}

	if err := h.service.Update(c.Context(), userID(c), &contact); err != nil {
		return err
	}

	return c.JSON(contact)
}

func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), userID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	contact, err := h.service.Get(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(contact)
}

// List handles GET /api/v1/contacts?name=...&phone=...&tags=a,b
func (h *ContactHandler) List(c *fiber.Ctx) error {
	filter := ports.ContactFilter{
		Name:  c.Query("name"),
		Phone: c.Query("phone"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}

	contacts, err := h.service.List(c.Context(), userID(c), filter)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"count":    len(contacts),
		"contacts": contacts,
	})
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}
