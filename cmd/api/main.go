package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/db"
	"github.com/pancakes/admin-service/internal/events"
	apphttp "github.com/pancakes/admin-service/internal/http"
	"github.com/pancakes/admin-service/internal/http/handlers"
	"github.com/pancakes/admin-service/internal/repositories"
	"github.com/pancakes/admin-service/internal/services"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	auditRepo := repositories.NewAuditRepo(pool)
	configRepo := repositories.NewSystemConfigRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Peers
	tokens := auth.NewServiceTokenIssuer(cfg.ServiceJWTSecret, cfg.ServiceName, cfg.JWTIssuer, cfg.JWTAudience, cfg.ServiceTokenTTL)
	userClient := services.NewUserServiceClient(cfg.UserServiceURL, cfg.PeerTimeout, tokens, log)
	blogClient := services.NewBlogServiceClient(cfg.BlogServiceURL, cfg.PeerTimeout, tokens, log)

	// Services
	auditService := services.NewAuditService(auditRepo, log)
	runner := workflow.NewRunner(auditService, publisher, log)
	userService := services.NewUserManagementService(userClient, runner, log)
	blogService := services.NewBlogManagementService(blogClient, runner, log)
	reportService := services.NewReportManagementService(blogClient, runner, log)
	configService := services.NewSystemConfigService(configRepo, runner, log)

	// Handlers
	feed := handlers.NewAuditFeed(cfg, subscriber, log)
	h := apphttp.Handlers{
		Users:   handlers.NewUserManagementHandler(userService, log),
		Blogs:   handlers.NewBlogManagementHandler(blogService, log),
		Reports: handlers.NewReportManagementHandler(reportService, log),
		Config:  handlers.NewSystemConfigHandler(configService, log),
		Audit:   handlers.NewAuditHandler(auditService, log),
		Meta:    handlers.NewMetaHandler(),
		Feed:    feed,
	}

	// Start audit feed
	if err := feed.Start(ctx); err != nil {
		log.Error("audit feed subscription failed", zap.Error(err))
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler(log),
	})

	apphttp.SetupRouter(app, cfg, log, rdb, h)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting admin API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
