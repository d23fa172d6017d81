// Package gateway implements the chat-gateway websocket client. The
// client dials the bridge, decodes inbound JSON events into transport
// messages for the registered handler, and implements transport.Sender
// by writing outbound JSON frames. Lost connections are redialed with
// exponential backoff.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/transport"
)

// frame is one outbound gateway command.
type frame struct {
	Type    string `json:"type"`
	To      string `json:"to"`
	Text    string `json:"text,omitempty"`
	Path    string `json:"path,omitempty"`
	URL     string `json:"url,omitempty"`
	Caption string `json:"caption,omitempty"`
}

// Client is a websocket connection to the chat gateway.
type Client struct {
	url    string
	logger *zap.Logger

	initialBackoff time.Duration
	maxBackoff     time.Duration

	handler transport.Handler

	mu   sync.Mutex
	conn *websocket.Conn

	qmu      sync.Mutex
	queues   map[string][]transport.Message
	draining map[string]bool
}

// New builds a gateway client for the given websocket URL.
func New(url string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		url:            url,
		logger:         logger,
		initialBackoff: time.Second,
		maxBackoff:     30 * time.Second,
		queues:         make(map[string][]transport.Message),
		draining:       make(map[string]bool),
	}
}

// SetHandler registers the consumer of inbound messages. It must be
// called before Run.
func (c *Client) SetHandler(h transport.Handler) { c.handler = h }

// Run dials the gateway and pumps inbound events until ctx is done,
// redialing with backoff whenever the connection drops.
func (c *Client) Run(ctx context.Context) error {
	if c.handler == nil {
		return errors.New("gateway: no handler registered")
	}

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = c.initialBackoff
	retry.MaxInterval = c.maxBackoff

	for {
		err := c.listen(ctx, retry)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		wait := retry.NextBackOff()
		c.logger.Warn("gateway connection lost",
			zap.Error(err), zap.Duration("retry_in", wait))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) listen(ctx context.Context, retry *backoff.ExponentialBackOff) error {
	conn, _, err := websocket.Dial(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	retry.Reset()
	c.logger.Info("gateway connected", zap.String("url", c.url))

	c.setConn(conn)
	defer func() {
		c.setConn(nil)
		conn.Close(websocket.StatusNormalClosure, "closing")
	}()

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("gateway read: %w", err)
		}

		var msg transport.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("undecodable gateway event", zap.Error(err))
			continue
		}
		if msg.From == "" {
			continue
		}
		// Dispatch off the read loop. Per-user queues keep one user's
		// messages in arrival order; users drain concurrently.
		c.enqueue(ctx, msg)
	}
}

func (c *Client) enqueue(ctx context.Context, msg transport.Message) {
	c.qmu.Lock()
	c.queues[msg.From] = append(c.queues[msg.From], msg)
	if c.draining[msg.From] {
		c.qmu.Unlock()
		return
	}
	c.draining[msg.From] = true
	c.qmu.Unlock()

	go c.drain(ctx, msg.From)
}

// drain delivers one user's queued messages in order, then retires.
func (c *Client) drain(ctx context.Context, userID string) {
	for {
		c.qmu.Lock()
		queue := c.queues[userID]
		if len(queue) == 0 {
			delete(c.queues, userID)
			delete(c.draining, userID)
			c.qmu.Unlock()
			return
		}
		msg := queue[0]
		c.queues[userID] = queue[1:]
		c.qmu.Unlock()

		c.handler.Handle(ctx, msg)
	}
}

func (c *Client) setConn(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Client) send(ctx context.Context, f frame) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return errors.New("gateway: not connected")
	}

	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("gateway write: %w", err)
	}
	return nil
}

// SendText delivers a plain text message.
func (c *Client) SendText(ctx context.Context, to, text string) error {
	return c.send(ctx, frame{Type: "text", To: to, Text: text})
}

// SendMedia delivers media referenced by URL with a caption.
func (c *Client) SendMedia(ctx context.Context, to, url, caption string) error {
	return c.send(ctx, frame{Type: "media", To: to, URL: url, Caption: caption})
}

// SendImage delivers a local image file.
func (c *Client) SendImage(ctx context.Context, to, path string) error {
	return c.send(ctx, frame{Type: "image", To: to, Path: path})
}

// SendVideo delivers a local video file.
func (c *Client) SendVideo(ctx context.Context, to, path string) error {
	return c.send(ctx, frame{Type: "video", To: to, Path: path})
}

// SendAudio delivers a local audio file.
func (c *Client) SendAudio(ctx context.Context, to, path string) error {
	return c.send(ctx, frame{Type: "audio", To: to, Path: path})
}

// SendFile delivers a local file as a document.
func (c *Client) SendFile(ctx context.Context, to, path string) error {
	return c.send(ctx, frame{Type: "file", To: to, Path: path})
}

// SendSticker delivers a local sticker file.
func (c *Client) SendSticker(ctx context.Context, to, path string) error {
	return c.send(ctx, frame{Type: "sticker", To: to, Path: path})
}
