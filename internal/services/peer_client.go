package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pancakes/admin-service/internal/auth"
	"github.com/pancakes/admin-service/internal/metrics"
	"github.com/pancakes/admin-service/internal/workflow"
	"go.uber.org/zap"
)

// peerClient is the shared transport for calls to internal peer services.
// Every request carries a freshly minted service token and is attempted once.
type peerClient struct {
	name       string
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenProvider
	log        *zap.Logger
}

func newPeerClient(name, baseURL string, timeout time.Duration, tokens auth.TokenProvider, log *zap.Logger) peerClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return peerClient{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    log,
	}
}

// do sends body as JSON and decodes a 2xx response into out (if non-nil).
// Peer statuses map onto the workflow taxonomy: 404 -> ErrNotFound,
// 403 -> ErrForbidden, other 4xx -> ErrActionFailed, anything else is unexpected.
func (c *peerClient) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	token, err := c.tokens.Token()
	if err != nil {
		return fmt.Errorf("mint service token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(op, "error")
		return fmt.Errorf("%s unavailable: %w", c.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			c.observe(op, "ok")
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.observe(op, "error")
			return fmt.Errorf("decode %s %s response: %w", c.name, op, err)
		}
		c.observe(op, "ok")
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe(op, "not_found")
		return fmt.Errorf("%s %s returned 404: %w", c.name, op, workflow.ErrNotFound)
	case resp.StatusCode == http.StatusForbidden:
		c.observe(op, "forbidden")
		return fmt.Errorf("%s %s returned 403: %w", c.name, op, workflow.ErrForbidden)
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusUnauthorized:
		c.observe(op, "rejected")
		c.log.Info("peer rejected request",
			zap.String("peer", c.name),
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", msg),
		)
		return fmt.Errorf("%s %s returned %d: %w", c.name, op, resp.StatusCode, workflow.ErrActionFailed)
	default:
		c.observe(op, "error")
		return fmt.Errorf("%s %s returned %d: %s", c.name, op, resp.StatusCode, string(msg))
	}
}

func (c *peerClient) observe(op, result string) {
	metrics.PeerRequestsTotal.WithLabelValues(c.name, op, result).Inc()
}
