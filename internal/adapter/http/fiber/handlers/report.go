package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/callguard/internal/domain"
	"github.com/seu-repo/callguard/internal/ports"
)

type ReportHandler struct {
	service ports.ReportService
	log     *zap.Logger
}

func NewReportHandler(service ports.ReportService, log *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		log:     log,
	}
}

type ReportRequest struct {
	PhoneNumber string `json:"phone_number"`
	ReportType  string `json:"report_type"`
	Severity    int    `json:"severity"`
	Details     string `json:"details"`
	Evidence    string `json:"evidence"`
}

// Create handles POST /api/v1/reports
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var req ReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	reportType, ok := domain.ParseReportType(req.ReportType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown report type"})
	}

	reporter, _ := c.Locals("user").(*domain.User)
	snap, err := h.service.Report(c.Context(), reporter, req.PhoneNumber, reportType, req.Severity, req.Details, req.Evidence)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(snap)
}

// Check handles GET /api/v1/numbers/:number/check
func (h *ReportHandler) Check(c *fiber.Ctx) error {
	check, err := h.service.CheckNumber(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(check)
}

// ListByNumber handles GET /api/v1/numbers/:number/reports
func (h *ReportHandler) ListByNumber(c *fiber.Ctx) error {
	reports, err := h.service.ListByNumber(c.Context(), c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"count":   len(reports),
		"reports": reports,
	})
}
