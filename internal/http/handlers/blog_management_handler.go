package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

type BlogManagementHandler struct {
	blogs *services.BlogManagementService
	log   *zap.Logger
}

func NewBlogManagementHandler(blogs *services.BlogManagementService, log *zap.Logger) *BlogManagementHandler {
	return &BlogManagementHandler{blogs: blogs, log: log}
}

func (h *BlogManagementHandler) SearchPosts(c *fiber.Ctx) error {
	req := models.BlogPostSearchRequest{
		Search:    c.Query("search"),
		AuthorID:  c.Query("authorId"),
		Page:      queryInt(c, "page"),
		PageSize:  queryInt(c, "pageSize"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}
	if v := c.Query("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return badRequest(c, "Invalid status value. Must be 0 (Draft), 1 (Published), or 2 (Deleted)")
		}
		status := models.BlogPostStatus(n)
		req.Status = &status
	}
	var err error
	if req.DateFrom, err = queryTime(c, "dateFrom"); err != nil {
		return badRequest(c, "Invalid dateFrom value")
	}
	if req.DateTo, err = queryTime(c, "dateTo"); err != nil {
		return badRequest(c, "Invalid dateTo value")
	}

	result, err := h.blogs.SearchPosts(c.Context(), req)
	if err != nil {
		return writeReadError(c, h.log, err, "Blog post not found")
	}
	return c.JSON(dto.OK("Blog posts retrieved successfully", result))
}

func (h *BlogManagementHandler) DeletePost(c *fiber.Ctx) error {
	var req models.DeleteBlogPostRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	req.BlogPostID = c.Params("id")

	return writeOutcome(c, h.blogs.DeletePost(c.Context(), req, actorFrom(c)))
}

func (h *BlogManagementHandler) UpdatePostStatus(c *fiber.Ctx) error {
	var req models.UpdateBlogPostStatusRequest
	if err := parseBody(c, &req); err != nil {
		return badRequest(c, messageInvalidBody)
	}
	req.BlogPostID = c.Params("id")

	return writeOutcome(c, h.blogs.UpdatePostStatus(c.Context(), req, actorFrom(c)))
}

func (h *BlogManagementHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.blogs.Statistics(c.Context())
	if err != nil {
		return writeReadError(c, h.log, err, "Content statistics not available")
	}
	return c.JSON(dto.OK("Content statistics retrieved successfully", stats))
}
