package handlers

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"testing"
	"time"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/config"
	"github.com/pancakes/admin-service/internal/events"
	"github.com/pancakes/admin-service/internal/http/dto"
	"github.com/pancakes/admin-service/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAuditFeed_Authorize(t *testing.T) {
	cfg := &config.Config{JWTSecret: "feed-secret", JWTIssuer: "pancakes-auth"}
	feed := NewAuditFeed(cfg, nil, zap.NewNop())

	viewer, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, "", "admin-7", rbac.RoleViewer, time.Hour)
	require.NoError(t, err)
	moderator, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, "", "admin-8", rbac.RoleModerator, time.Hour)
	require.NoError(t, err)
	forged, err := auth.GenerateJWT("other-secret", cfg.JWTIssuer, "", "admin-9", rbac.RoleSuperAdmin, time.Hour)
	require.NoError(t, err)

	adminID, err := feed.authorize(viewer)
	require.NoError(t, err)
	assert.Equal(t, "admin-7", adminID)

	_, err = feed.authorize(moderator)
	assert.ErrorIs(t, err, errFeedForbidden)

	_, err = feed.authorize(forged)
	assert.ErrorIs(t, err, errInvalidToken)

	_, err = feed.authorize("")
	assert.ErrorIs(t, err, errMissingToken)
}

// captureSubscriber hands the registered handler back to the test.
type captureSubscriber struct {
	mu      sync.Mutex
	stream  string
	handler func(events.Event)
}

func (s *captureSubscriber) Subscribe(_ context.Context, stream string, handler func(events.Event)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stream = stream
	s.handler = handler
	return nil
}

func (s *captureSubscriber) deliver(ev events.Event) {
	s.mu.Lock()
	h := s.handler
	s.mu.Unlock()
	h(ev)
}

func (f *AuditFeed) connCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.conns)
}

func startFeedServer(t *testing.T, feed *AuditFeed) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", WSUpgradeMiddleware())
	app.Get("/ws/audit", websocket.New(feed.HandleWS))
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.ShutdownWithTimeout(2 * time.Second) })

	return "ws://" + ln.Addr().String() + "/ws/audit"
}

func readEvent(t *testing.T, conn *fastws.Conn) events.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var ev events.Event
	require.NoError(t, json.Unmarshal(data, &ev))
	return ev
}

func TestAuditFeed_BroadcastFanOutAndCleanup(t *testing.T) {
	cfg := &config.Config{JWTSecret: "feed-secret", JWTIssuer: "pancakes-auth"}
	sub := &captureSubscriber{}
	feed := NewAuditFeed(cfg, sub, zap.NewNop())
	require.NoError(t, feed.Start(context.Background()))
	assert.Equal(t, events.StreamAdmin, sub.stream)

	url := startFeedServer(t, feed)
	token, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, "", "admin-7", rbac.RoleViewer, time.Hour)
	require.NoError(t, err)

	first, _, err := fastws.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer first.Close()
	second, _, err := fastws.DefaultDialer.Dial(url+"?token="+token, nil)
	require.NoError(t, err)
	defer second.Close()

	require.Eventually(t, func() bool { return feed.connCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	sub.deliver(events.Event{Type: "config_reloaded", Payload: map[string]any{"key": "x"}})
	sub.deliver(events.Event{Type: events.EventAdminAction, Payload: map[string]any{"action": "USER_BANNED", "target_id": "u-1"}})

	for _, conn := range []*fastws.Conn{first, second} {
		ev := readEvent(t, conn)
		assert.Equal(t, events.EventAdminAction, ev.Type)
		assert.Equal(t, "USER_BANNED", ev.String("action"))
	}

	require.NoError(t, first.Close())
	require.Eventually(t, func() bool { return feed.connCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	sub.deliver(events.Event{Type: events.EventAdminAction, Payload: map[string]any{"action": "REPORT_DELETED"}})
	assert.Equal(t, "REPORT_DELETED", readEvent(t, second).String("action"))
}

func TestAuditFeed_RejectsUnauthorizedSocket(t *testing.T) {
	cfg := &config.Config{JWTSecret: "feed-secret", JWTIssuer: "pancakes-auth"}
	feed := NewAuditFeed(cfg, &captureSubscriber{}, zap.NewNop())
	url := startFeedServer(t, feed)

	conn, _, err := fastws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg dto.WSError
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "missing token", msg.Error)

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, feed.connCount())
}
