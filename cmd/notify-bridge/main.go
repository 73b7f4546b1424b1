package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/db"
	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/services"
	"go.uber.org/zap"
)

// Notify bridge: subscribes to admin_action events and tells blog authors
// when an administrator removed or re-statused their post.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	tokens := auth.NewServiceTokenIssuer(cfg.ServiceJWTSecret, cfg.ServiceName, cfg.JWTIssuer, cfg.JWTAudience, cfg.ServiceTokenTTL)
	users := services.NewUserServiceClient(cfg.UserServiceURL, cfg.PeerTimeout, tokens, log)
	notifier := services.NewAuthorNotifier(users, cfg.PeerTimeout, log)

	subscriber := events.NewRedisSubscriber(rdb, log)
	if err := subscriber.Subscribe(ctx, events.StreamAdmin, func(event events.Event) {
		notifier.HandleEvent(ctx, event)
	}); err != nil {
		log.Fatal("failed to subscribe", zap.String("stream", events.StreamAdmin), zap.Error(err))
	}

	log.Info("notify-bridge started", zap.String("stream", events.StreamAdmin))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down notify-bridge")
	cancel()
}
