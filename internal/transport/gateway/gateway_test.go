package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"

	"github.com/louisbranch/questline/internal/transport"
)

type recordingHandler struct {
	messages chan transport.Message
}

func (h *recordingHandler) Handle(_ context.Context, msg transport.Message) {
	h.messages <- msg
}

// newGatewayServer runs a fake bridge that pushes one inbound event
// and then forwards every received frame to the frames channel.
func newGatewayServer(t *testing.T, inbound string, frames chan<- []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		ctx := context.Background()
		if inbound != "" {
			if err := conn.Write(ctx, websocket.MessageText, []byte(inbound)); err != nil {
				t.Errorf("server write: %v", err)
				return
			}
		}
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			frames <- data
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func newTestClient(t *testing.T, url string) (*Client, *recordingHandler, context.CancelFunc) {
	t.Helper()
	client := New(url, nil)
	client.initialBackoff = 10 * time.Millisecond
	client.maxBackoff = 50 * time.Millisecond
	handler := &recordingHandler{messages: make(chan transport.Message, 8)}
	client.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = client.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop after cancel")
		}
	})
	return client, handler, cancel
}

func waitMessage(t *testing.T, handler *recordingHandler) transport.Message {
	t.Helper()
	select {
	case msg := <-handler.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no inbound message dispatched")
		return transport.Message{}
	}
}

func TestInboundEventsAreDispatched(t *testing.T) {
	frames := make(chan []byte, 8)
	srv := newGatewayServer(t, `{"from":"u1","body":"hello","button_reply_id":"b1"}`, frames)
	_, handler, _ := newTestClient(t, wsURL(srv))

	msg := waitMessage(t, handler)
	if msg.From != "u1" || msg.Body != "hello" || msg.ButtonReplyID != "b1" {
		t.Errorf("message = %+v", msg)
	}
}

func TestSendTextWritesFrame(t *testing.T) {
	frames := make(chan []byte, 8)
	srv := newGatewayServer(t, `{"from":"u1","body":"hi"}`, frames)
	client, handler, _ := newTestClient(t, wsURL(srv))

	// The inbound dispatch guarantees the connection is established.
	waitMessage(t, handler)

	if err := client.SendText(context.Background(), "u1", "pong"); err != nil {
		t.Fatalf("SendText: %v", err)
	}

	select {
	case data := <-frames:
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		want := frame{Type: "text", To: "u1", Text: "pong"}
		if f != want {
			t.Errorf("frame = %+v, want %+v", f, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame reached the server")
	}
}

func TestSendMediaCarriesURLAndCaption(t *testing.T) {
	frames := make(chan []byte, 8)
	srv := newGatewayServer(t, `{"from":"u1","body":"hi"}`, frames)
	client, handler, _ := newTestClient(t, wsURL(srv))
	waitMessage(t, handler)

	if err := client.SendMedia(context.Background(), "u1", "https://example.com/a.jpg", "caption"); err != nil {
		t.Fatalf("SendMedia: %v", err)
	}

	select {
	case data := <-frames:
		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		if f.Type != "media" || f.URL != "https://example.com/a.jpg" || f.Caption != "caption" {
			t.Errorf("frame = %+v", f)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no frame reached the server")
	}
}

func TestSendWithoutConnectionFails(t *testing.T) {
	client := New("ws://127.0.0.1:0", nil)
	client.SetHandler(&recordingHandler{messages: make(chan transport.Message, 1)})

	if err := client.SendText(context.Background(), "u1", "hello"); err == nil {
		t.Error("expected send to fail before connecting")
	}
}

func TestReconnectAfterDrop(t *testing.T) {
	var connections atomic.Int32
	frames := make(chan []byte, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		n := connections.Add(1)
		ctx := context.Background()
		if n == 1 {
			// Drop the first connection immediately to force a redial.
			conn.Close(websocket.StatusGoingAway, "bye")
			return
		}
		if err := conn.Write(ctx, websocket.MessageText, []byte(`{"from":"u2","body":"back"}`)); err != nil {
			return
		}
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				return
			}
			frames <- data
		}
	}))
	t.Cleanup(srv.Close)

	_, handler, _ := newTestClient(t, wsURL(srv))

	msg := waitMessage(t, handler)
	if msg.From != "u2" {
		t.Errorf("message after reconnect = %+v", msg)
	}
	if connections.Load() < 2 {
		t.Errorf("connections = %d, want at least 2", connections.Load())
	}
}

// slowHandler delays every dispatch so out-of-order delivery would
// surface as a scrambled bodies slice.
type slowHandler struct {
	delay time.Duration
	want  int
	done  chan struct{}

	mu     sync.Mutex
	bodies []string
}

func (h *slowHandler) Handle(_ context.Context, msg transport.Message) {
	time.Sleep(h.delay)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bodies = append(h.bodies, msg.Body)
	if len(h.bodies) == h.want {
		close(h.done)
	}
}

func TestInboundOrderPreservedPerUser(t *testing.T) {
	const total = 5
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		ctx := context.Background()
		for i := 1; i <= total; i++ {
			payload := fmt.Sprintf(`{"from":"u1","body":"m%d"}`, i)
			if err := conn.Write(ctx, websocket.MessageText, []byte(payload)); err != nil {
				return
			}
		}
		_, _, _ = conn.Read(ctx)
	}))
	t.Cleanup(srv.Close)

	handler := &slowHandler{delay: 5 * time.Millisecond, want: total, done: make(chan struct{})}
	client := New(wsURL(srv), nil)
	client.initialBackoff = 10 * time.Millisecond
	client.maxBackoff = 50 * time.Millisecond
	client.SetHandler(handler)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		_ = client.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-stopped:
		case <-time.After(2 * time.Second):
			t.Error("Run did not stop after cancel")
		}
	})

	select {
	case <-handler.done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all messages were dispatched")
	}

	handler.mu.Lock()
	defer handler.mu.Unlock()
	for i, body := range handler.bodies {
		if want := fmt.Sprintf("m%d", i+1); body != want {
			t.Errorf("bodies[%d] = %q, want %q", i, body, want)
		}
	}
}

func TestRunRequiresHandler(t *testing.T) {
	client := New("ws://127.0.0.1:0", nil)
	if err := client.Run(context.Background()); err == nil {
		t.Error("expected Run to fail without a handler")
	}
}
