package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

type SystemConfigHandler struct {
	configs *services.SystemConfigService
	log     *zap.Logger
}

func NewSystemConfigHandler(configs *services.SystemConfigService, log *zap.Logger) *SystemConfigHandler {
	return &SystemConfigHandler{configs: configs, log: log}
}

func (h *SystemConfigHandler) List(c *fiber.Ctx) error {
	configs, err := h.configs.List(c.Context(), c.Query("category"))
	if err != nil {
		return writeReadError(c, h.log, err, "Configuration not found")
	}
	return c.JSON(dto.OK("Configurations retrieved successfully", configs))
}

func (h *SystemConfigHandler) Get(c *fiber.Ctx) error {
	cfg, err := h.configs.Get(c.Context(), c.Params("key"))
	if err != nil {
		return writeReadError(c, h.log, err, "Configuration not found")
	}
	return c.JSON(dto.OK("Configuration retrieved successfully", cfg))
}

func (h *SystemConfigHandler) Create(c *fiber.Ctx) error {
	var req models.SystemConfigRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	return writeOutcome(c, h.configs.Create(c.Context(), req, actorFrom(c)))
}

func (h *SystemConfigHandler) Update(c *fiber.Ctx) error {
	var req models.SystemConfigRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	req.Key = c.Params("key")

	return writeOutcome(c, h.configs.Update(c.Context(), req, actorFrom(c)))
}

func (h *SystemConfigHandler) Delete(c *fiber.Ctx) error {
	return writeOutcome(c, h.configs.Delete(c.Context(), c.Params("key"), actorFrom(c)))
}
