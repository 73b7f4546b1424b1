package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

type UserManagementHandler struct {
	users *services.UserManagementService
	log   *zap.Logger
}

func NewUserManagementHandler(users *services.UserManagementService, log *zap.Logger) *UserManagementHandler {
	return &UserManagementHandler{users: users, log: log}
}

func (h *UserManagementHandler) SearchUsers(c *fiber.Ctx) error {
	req := models.UserSearchRequest{
		SearchTerm: c.Query("searchTerm"),
		Page:       queryInt(c, "page"),
		PageSize:   queryInt(c, "pageSize"),
	}
	var err error
	if req.IsActive, err = queryBool(c, "isActive"); err != nil {
		return badRequest(c, "Invalid isActive value")
	}
	if req.IsBanned, err = queryBool(c, "isBanned"); err != nil {
		return badRequest(c, "Invalid isBanned value")
	}

	result, err := h.users.SearchUsers(c.Context(), req)
	if err != nil {
		return writeReadError(c, h.log, err, "User not found")
	}
	return c.JSON(dto.OK("Users retrieved successfully", result))
}

func (h *UserManagementHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return writeReadError(c, h.log, err, "User not found")
	}
	return c.JSON(dto.OK("User details retrieved successfully", user))
}

func (h *UserManagementHandler) UpdateUser(c *fiber.Ctx) error {
	var req models.UpdateUserRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	req.UserID = c.Params("id")

	return writeOutcome(c, h.users.UpdateUser(c.Context(), req, actorFrom(c)))
}

// BanUser serves both POST /users/ban (id in body) and POST /users/:id/ban.
func (h *UserManagementHandler) BanUser(c *fiber.Ctx) error {
	var req models.BanUserRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	if id := c.Params("id"); id != "" {
		req.UserID = id
	}

	return writeOutcome(c, h.users.BanUser(c.Context(), req, actorFrom(c)))
}

func (h *UserManagementHandler) UnbanUser(c *fiber.Ctx) error {
	var req models.UnbanUserRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	if id := c.Params("id"); id != "" {
		req.UserID = id
	}

	return writeOutcome(c, h.users.UnbanUser(c.Context(), req, actorFrom(c)))
}

// ForcePasswordReset serves POST /users/force-password-reset and POST /users/:id/force-password-reset.
func (h *UserManagementHandler) ForcePasswordReset(c *fiber.Ctx) error {
	req := models.ForcePasswordResetRequest{SendEmail: true}
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	if id := c.Params("id"); id != "" {
		req.UserID = id
	}

	return writeOutcome(c, h.users.ForcePasswordReset(c.Context(), req, actorFrom(c)))
}

func (h *UserManagementHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.users.Statistics(c.Context())
	if err != nil {
		return writeReadError(c, h.log, err, "User statistics not available")
	}
	return c.JSON(dto.OK("User statistics retrieved successfully", stats))
}
