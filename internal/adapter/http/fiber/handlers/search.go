package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

type SearchHandler struct {
	service ports.SearchService
	log     *zap.Logger
}

func NewSearchHandler(service ports.SearchService, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		service: service,
		log:     log,
	}
}

// Search handles GET /api/v1/search?kind=phone&q=...&page=1&page_size=10
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	kind, ok := domain.ParseSearchKind(c.Query("kind", string(domain.SearchKindPhone)))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "kind must be 'phone' or 'name'"})
	}

	query := c.Query("q")
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 0)

	requester, _ := c.Locals("user").(*domain.User)

	result, err := h.service.Search(c.Context(), kind, query, requester, page, pageSize)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
