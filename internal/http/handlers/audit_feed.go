package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/rbac"
	"go.uber.org/zap"
)

var (
	errMissingToken  = errors.New("missing token")
	errInvalidToken  = errors.New("invalid token")
	errFeedForbidden = errors.New("audit:view permission required")
)

// AuditFeed pushes admin_action events to connected admin consoles.
type AuditFeed struct {
	cfg        *config.Config
	subscriber events.Subscriber
	log        *zap.Logger
	mu         sync.RWMutex
	conns      map[*websocket.Conn]string
}

func NewAuditFeed(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *AuditFeed {
	return &AuditFeed{
		cfg:        cfg,
		subscriber: subscriber,
		log:        log,
		conns:      make(map[*websocket.Conn]string),
	}
}

func (f *AuditFeed) Start(ctx context.Context) error {
	return f.subscriber.Subscribe(ctx, events.StreamAdmin, func(event events.Event) {
		f.broadcast(event)
	})
}

func (f *AuditFeed) broadcast(event events.Event) {
	if event.Type != events.EventAdminAction {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	for conn, adminID := range f.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			f.log.Debug("audit feed write failed", zap.String("admin_id", adminID), zap.Error(err))
			// закрытие разбудит read loop в HandleWS, он и уберёт соединение
			_ = conn.Close()
		}
	}
}

// authorize checks the token passed as ?token= (browsers cannot set headers on upgrade).
func (f *AuditFeed) authorize(token string) (string, error) {
	if token == "" {
		return "", errMissingToken
	}
	claims, err := auth.ParseJWT(f.cfg.JWTSecret, f.cfg.JWTIssuer, f.cfg.JWTAudience, token)
	if err != nil {
		return "", errInvalidToken
	}
	if !rbac.HasPermission(claims.Role, rbac.PermAuditView) {
		return "", errFeedForbidden
	}
	return claims.AdminID(), nil
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (f *AuditFeed) HandleWS(conn *websocket.Conn) {
	adminID, err := f.authorize(conn.Query("token"))
	if err != nil {
		msg, _ := json.Marshal(dto.WSError{Error: err.Error()})
		_ = conn.WriteMessage(websocket.TextMessage, msg)
		conn.Close()
		return
	}

	f.mu.Lock()
	f.conns[conn] = adminID
	f.mu.Unlock()
	f.log.Info("audit feed connected", zap.String("admin_id", adminID))

	defer func() {
		f.mu.Lock()
		delete(f.conns, conn)
		f.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
