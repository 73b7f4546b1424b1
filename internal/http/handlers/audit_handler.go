package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	audit *services.AuditService
	log   *zap.Logger
}

func NewAuditHandler(audit *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audit: audit, log: log}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	q := services.AuditQuery{
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "pageSize"),
		ActorID:    c.Query("actorId"),
		Action:     c.Query("action"),
		TargetType: c.Query("targetType"),
		TargetID:   c.Query("targetId"),
	}
	var err error
	if q.From, err = queryTime(c, "from"); err != nil {
		return badRequest(c, "Invalid from value")
	}
	if q.To, err = queryTime(c, "to"); err != nil {
		return badRequest(c, "Invalid to value")
	}

	page, err := h.audit.Query(c.Context(), q)
	if err != nil {
		return writeReadError(c, h.log, err, "Audit log not found")
	}
	return c.JSON(dto.OK("Audit logs retrieved successfully", page))
}

func (h *AuditHandler) Recent(c *fiber.Ctx) error {
	entries, err := h.audit.Recent(c.Context(), queryInt(c, "limit"))
	if err != nil {
		return writeReadError(c, h.log, err, "Audit log not found")
	}
	return c.JSON(dto.OK("Recent activity retrieved successfully", entries))
}

func (h *AuditHandler) Stats(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return badRequest(c, "Invalid from value")
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return badRequest(c, "Invalid to value")
	}

	stats, err := h.audit.ActionStats(c.Context(), from, to)
	if err != nil {
		return writeReadError(c, h.log, err, "Audit log not found")
	}
	return c.JSON(dto.OK("Audit statistics retrieved successfully", stats))
}
