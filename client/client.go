// Package client is a websocket JSON-RPC client for a running
// panresponder server. Method calls are matched to responses by
// request id; pushed gesture notifications are delivered on a
// separate channel.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/bmcmahen/panresponder/types"
	"github.com/bmcmahen/panresponder/utils"
)

// notificationBuffer bounds how many unread gesture notifications we
// hold before dropping new ones
const notificationBuffer = 256

type Client struct {
	httpURL    string
	wsURL      string
	apiKey     string
	httpClient *http.Client
	requestID  atomic.Int64

	notifications chan types.GestureNotification

	mu          sync.Mutex
	conn        *websocket.Conn
	pending     map[int64]chan jsonRPCResponse
	notifClosed bool
	closeErr    error
}

func NewClient(hostname string, port int) *Client {
	httpURL := fmt.Sprintf("http://%s:%d", hostname, port)
	wsURL := fmt.Sprintf("ws://%s:%d", hostname, port)

	return &Client{
		httpURL: httpURL,
		wsURL:   wsURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		notifications: make(chan types.GestureNotification, notificationBuffer),
		pending:       make(map[int64]chan jsonRPCResponse),
	}
}

// SetAPIKey sets the bearer key sent on websocket upgrades, for servers
// running with an API key. Must be called before the first method call.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// Notifications returns the channel that pushed gesture notifications
// arrive on after Subscribe. If the reader falls behind, newer
// notifications are dropped. The channel is closed when the connection
// drops and stays readable (yielding closed receives) until a reconnect
// replaces it with a fresh one.
func (c *Client) Notifications() <-chan types.GestureNotification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notifications
}

func (c *Client) connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	url := fmt.Sprintf("%s/ws", c.wsURL)
	var header http.Header
	if c.apiKey != "" {
		header = http.Header{"Authorization": []string{"Bearer " + c.apiKey}}
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		return fmt.Errorf("failed to connect to server WebSocket: %w", err)
	}

	if c.notifications == nil || c.notifClosed {
		c.notifications = make(chan types.GestureNotification, notificationBuffer)
		c.notifClosed = false
	}

	c.conn = conn
	c.closeErr = nil
	go c.readLoop(conn, c.notifications)

	return nil
}

func (c *Client) readLoop(conn *websocket.Conn, notifications chan types.GestureNotification) {
	for {
		var resp jsonRPCResponse
		err := conn.ReadJSON(&resp)
		if err != nil {
			c.mu.Lock()
			c.closeErr = err
			c.conn = nil
			if c.notifications == notifications {
				c.notifClosed = true
			}
			for _, ch := range c.pending {
				close(ch)
			}
			c.pending = make(map[int64]chan jsonRPCResponse)
			c.mu.Unlock()
			close(notifications)
			return
		}

		// pushed gesture notifications carry a method and no id
		if resp.Method == "gesture" {
			var n types.GestureNotification
			if err := unmarshalParams(resp.Params, &n); err != nil {
				utils.Verbose("Dropping malformed gesture notification: %v", err)
				continue
			}
			select {
			case notifications <- n:
			default:
				utils.Verbose("Notification buffer full, dropping %s for %s", n.Kind, n.EngineID)
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		if ok {
			delete(c.pending, resp.ID)
		}
		c.mu.Unlock()

		if ok {
			ch <- resp
		}
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[int64]chan jsonRPCResponse)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	for _, ch := range pending {
		close(ch)
	}
}

// HealthCheck hits the server's status banner over plain HTTP
func (c *Client) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.httpURL+"/", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) WaitForReady(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for server to be ready")
		case <-ticker.C:
			err := c.HealthCheck()
			if err != nil {
				utils.Verbose("Server not ready yet: %v", err)
				continue
			}
			utils.Verbose("Server is ready")
			return nil
		}
	}
}
