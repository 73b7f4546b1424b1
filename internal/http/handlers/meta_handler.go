package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/models"
	"github.com/pancakes/admin-service/internal/rbac"
)

// MetaHandler serves the fixed vocabularies the admin UI renders filters from.
type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

type MetaItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type MetaStatus struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type MetaRole struct {
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

var blogPostStatuses = []MetaStatus{
	{Value: int(models.BlogPostDraft), Label: models.BlogPostDraft.String()},
	{Value: int(models.BlogPostPublished), Label: models.BlogPostPublished.String()},
	{Value: int(models.BlogPostDeleted), Label: models.BlogPostDeleted.String()},
}

var reportStatuses = []MetaStatus{
	{Value: int(models.ReportPending), Label: models.ReportPending.String()},
	{Value: int(models.ReportUnderReview), Label: models.ReportUnderReview.String()},
	{Value: int(models.ReportResolved), Label: models.ReportResolved.String()},
	{Value: int(models.ReportDismissed), Label: models.ReportDismissed.String()},
}

var auditActions = []MetaItem{
	{ID: models.ActionUserBanned, Label: "User banned"},
	{ID: models.ActionUserUnbanned, Label: "User unbanned"},
	{ID: models.ActionUserUpdated, Label: "User updated"},
	{ID: models.ActionForcePasswordReset, Label: "Password reset forced"},
	{ID: models.ActionDeleteBlogPost, Label: "Blog post deleted"},
	{ID: models.ActionUpdateBlogPostStatus, Label: "Blog post status changed"},
	{ID: models.ActionReportUpdated, Label: "Report reviewed"},
	{ID: models.ActionReportDeleted, Label: "Report deleted"},
	{ID: models.ActionConfigCreated, Label: "Configuration created"},
	{ID: models.ActionConfigUpdated, Label: "Configuration updated"},
	{ID: models.ActionConfigDeleted, Label: "Configuration deleted"},
}

func (h *MetaHandler) GetBlogPostStatuses(c *fiber.Ctx) error {
	return c.JSON(dto.OK("", blogPostStatuses))
}

func (h *MetaHandler) GetReportStatuses(c *fiber.Ctx) error {
	return c.JSON(dto.OK("", reportStatuses))
}

func (h *MetaHandler) GetAuditActions(c *fiber.Ctx) error {
	return c.JSON(dto.OK("", auditActions))
}

func (h *MetaHandler) GetRoles(c *fiber.Ctx) error {
	roles := make([]MetaRole, 0, len(rbac.RolePermissions))
	for role, perms := range rbac.RolePermissions {
		roles = append(roles, MetaRole{Role: role, Permissions: perms})
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Role < roles[j].Role })
	return c.JSON(dto.OK("", roles))
}
