// Package youtube implements the video lookup and download flow. A
// Provider resolves metadata and media streams; the Handler walks the
// user through query, action menu, and related-video selection.
package youtube

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Video is the metadata shown to the user and used for downloads.
type Video struct {
	ID           string
	Title        string
	Channel      string
	Description  string
	Duration     time.Duration
	Views        int64
	Likes        int64
	ThumbnailURL string
}

// Context is the session payload while the flow owns the conversation.
// It carries the active video between the action menu and the
// related-video selection.
type Context struct {
	Video   Video
	Related []Video
}

// Provider resolves videos and media streams. Related may return an
// empty slice when the backing service cannot suggest anything.
type Provider interface {
	Lookup(ctx context.Context, query string) (Video, error)
	Related(ctx context.Context, videoID string) ([]Video, error)
	DownloadAudio(ctx context.Context, videoID string) (io.ReadCloser, error)
	DownloadVideo(ctx context.Context, videoID string) (io.ReadCloser, error)
}

// formatDuration renders a video length as m:ss or h:mm:ss.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h, m, s := total/3600, (total/60)%60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// truncate shortens a description for the info card.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
