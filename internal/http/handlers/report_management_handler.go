package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

const messageInvalidReportStatus = "Invalid status value. Must be 0 (Pending), 1 (UnderReview), 2 (Resolved), or 3 (Dismissed)"

type ReportManagementHandler struct {
	reports *services.ReportManagementService
	log     *zap.Logger
}

func NewReportManagementHandler(reports *services.ReportManagementService, log *zap.Logger) *ReportManagementHandler {
	return &ReportManagementHandler{reports: reports, log: log}
}

func (h *ReportManagementHandler) SearchReports(c *fiber.Ctx) error {
	req := models.ReportSearchRequest{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	}
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, messageInvalidReportStatus)
		}
		status := models.ReportStatus(n)
		req.Status = &status
	}

	reports, err := h.reports.SearchReports(c.Context(), req)
	if err != nil {
		return writeReadError(c, h.log, err, "Report not found")
	}
	return c.JSON(dto.OK("Reports retrieved successfully", reports))
}

func (h *ReportManagementHandler) GetReport(c *fiber.Ctx) error {
	report, err := h.reports.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return writeReadError(c, h.log, err, "Report not found")
	}
	return c.JSON(dto.OK("Report retrieved successfully", report))
}

func (h *ReportManagementHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.reports.Stats(c.Context())
	if err != nil {
		return writeReadError(c, h.log, err, "Report statistics not available")
	}
	return c.JSON(dto.OK("Report statistics retrieved successfully", stats))
}

func (h *ReportManagementHandler) UpdateReport(c *fiber.Ctx) error {
	var req models.UpdateReportRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	req.ReportID = c.Params("id")

	return writeOutcome(c, h.reports.UpdateReport(c.Context(), req, actorFrom(c)))
}

func (h *ReportManagementHandler) DeleteReport(c *fiber.Ctx) error {
	return writeOutcome(c, h.reports.DeleteReport(c.Context(), c.Params("id"), actorFrom(c)))
}
