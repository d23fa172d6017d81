// Package transport defines the chat transport contract. The bot is a
// client of an external chat gateway: it receives inbound message
// events and sends replies through a Sender. The gateway subpackage
// provides the websocket implementation.
package transport

import "context"

// Message is one inbound chat event.
type Message struct {
	// From identifies the sending user.
	From string `json:"from"`
	// Body is the raw message text.
	Body string `json:"body"`
	// ButtonReplyID is set when the user tapped a structured button
	// instead of typing.
	ButtonReplyID string `json:"button_reply_id,omitempty"`
}

// Sender delivers outbound messages. All sends are fire-and-forget
// from the bot's perspective: a failed send is reported as an error
// but never retried by handlers.
type Sender interface {
	SendText(ctx context.Context, to, text string) error
	SendMedia(ctx context.Context, to, url, caption string) error
	SendImage(ctx context.Context, to, path string) error
	SendVideo(ctx context.Context, to, path string) error
	SendAudio(ctx context.Context, to, path string) error
	SendFile(ctx context.Context, to, path string) error
	SendSticker(ctx context.Context, to, path string) error
}

// Handler consumes inbound messages.
type Handler interface {
	Handle(ctx context.Context, msg Message)
}
