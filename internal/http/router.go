package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/http/handlers"
	"github.com/pancakes/admin-service/internal/middleware"
	"github.com/pancakes/admin-service/internal/rbac"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Users   *handlers.UserManagementHandler
	Blogs   *handlers.BlogManagementHandler
	Reports *handlers.ReportManagementHandler
	Config  *handlers.SystemConfigHandler
	Audit   *handlers.AuditHandler
	Meta    *handlers.MetaHandler
	Feed    *handlers.AuditFeed
}

// ErrorHandler renders framework errors (404 route, 405, body limits) in the admin envelope.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "An error occurred while processing the request"
		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		} else {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(dto.Fail(message))
	}
}

func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(middleware.MetricsMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	admin := app.Group("/api/v1/admin", middleware.AuthMiddleware(cfg, log))
	if rdb != nil {
		admin.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}
	registerAdminRoutes(admin, log, h)

	// WebSocket
	if h.Feed != nil {
		app.Use("/ws", handlers.WSUpgradeMiddleware())
		app.Get("/ws/audit", websocket.New(h.Feed.HandleWS))
	}
}

func registerAdminRoutes(admin fiber.Router, log *zap.Logger, h Handlers) {
	perm := func(p string) fiber.Handler { return middleware.RequirePermission(p, log) }

	// Users
	admin.Get("/users", perm(rbac.PermUsersView), h.Users.SearchUsers)
	admin.Post("/users/ban", perm(rbac.PermUsersBan), h.Users.BanUser)
	admin.Post("/users/unban", perm(rbac.PermUsersUnban), h.Users.UnbanUser)
	admin.Post("/users/force-password-reset", perm(rbac.PermUsersUpdate), h.Users.ForcePasswordReset)
	admin.Get("/users/statistics", perm(rbac.PermAnalyticsView), h.Users.Statistics)
	admin.Get("/users/:id", perm(rbac.PermUsersDetails), h.Users.GetUser)
	admin.Put("/users/:id", perm(rbac.PermUsersUpdate), h.Users.UpdateUser)
	admin.Post("/users/:id/ban", perm(rbac.PermUsersBan), h.Users.BanUser)
	admin.Post("/users/:id/unban", perm(rbac.PermUsersUnban), h.Users.UnbanUser)
	admin.Post("/users/:id/force-password-reset", perm(rbac.PermUsersUpdate), h.Users.ForcePasswordReset)

	// Blog content
	admin.Get("/blogs", perm(rbac.PermContentView), h.Blogs.SearchPosts)
	admin.Get("/blogs/statistics", perm(rbac.PermAnalyticsView), h.Blogs.Statistics)
	admin.Delete("/blogs/posts/:id", perm(rbac.PermContentDelete), h.Blogs.DeletePost)
	admin.Put("/blogs/posts/:id/status", perm(rbac.PermContentModerate), h.Blogs.UpdatePostStatus)

	// Reports
	admin.Get("/reports", perm(rbac.PermContentReports), h.Reports.SearchReports)
	admin.Get("/reports/stats", perm(rbac.PermContentReports), h.Reports.Stats)
	admin.Get("/reports/:id", perm(rbac.PermContentReports), h.Reports.GetReport)
	admin.Put("/reports/:id", perm(rbac.PermReportsManage), h.Reports.UpdateReport)
	admin.Delete("/reports/:id", perm(rbac.PermReportsManage), h.Reports.DeleteReport)

	// System configuration
	admin.Get("/config", perm(rbac.PermSystemView), h.Config.List)
	admin.Post("/config", perm(rbac.PermSystemUpdate), h.Config.Create)
	admin.Get("/config/:key", perm(rbac.PermSystemView), h.Config.Get)
	admin.Put("/config/:key", perm(rbac.PermSystemUpdate), h.Config.Update)
	admin.Delete("/config/:key", perm(rbac.PermSystemUpdate), h.Config.Delete)

	// Audit
	admin.Get("/audit-logs", perm(rbac.PermAuditView), h.Audit.List)
	admin.Get("/audit-logs/recent", perm(rbac.PermAuditView), h.Audit.Recent)
	admin.Get("/audit-logs/stats", perm(rbac.PermAuditView), h.Audit.Stats)

	// Meta (any authenticated admin)
	admin.Get("/meta/blog-statuses", h.Meta.GetBlogPostStatuses)
	admin.Get("/meta/report-statuses", h.Meta.GetReportStatuses)
	admin.Get("/meta/audit-actions", h.Meta.GetAuditActions)
	admin.Get("/meta/roles", h.Meta.GetRoles)
}
