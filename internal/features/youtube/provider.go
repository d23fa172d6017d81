package youtube

import (
	"context"
	"fmt"
	"io"

	ytdl "github.com/kkdai/youtube/v2"
)

// YTDLProvider resolves videos through the YouTube player API. It
// accepts direct URLs or video IDs; free-text search is not supported
// by the backing client.
type YTDLProvider struct {
	client ytdl.Client
}

// NewYTDLProvider builds the production provider.
func NewYTDLProvider() *YTDLProvider {
	return &YTDLProvider{}
}

// Lookup resolves a video URL or ID into metadata.
func (p *YTDLProvider) Lookup(ctx context.Context, query string) (Video, error) {
	video, err := p.client.GetVideoContext(ctx, query)
	if err != nil {
		return Video{}, fmt.Errorf("lookup video: %w", err)
	}
	return fromYTDL(video), nil
}

// Related is not supported by the player API client.
func (p *YTDLProvider) Related(_ context.Context, _ string) ([]Video, error) {
	return nil, nil
}

// DownloadAudio streams the best audio-only format.
func (p *YTDLProvider) DownloadAudio(ctx context.Context, videoID string) (io.ReadCloser, error) {
	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}

	formats := video.Formats.Type("audio")
	if len(formats) == 0 {
		formats = video.Formats.WithAudioChannels()
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no audio format for video %s", videoID)
	}

	stream, _, err := p.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("open audio stream: %w", err)
	}
	return stream, nil
}

// DownloadVideo streams an mp4 format that carries audio.
func (p *YTDLProvider) DownloadVideo(ctx context.Context, videoID string) (io.ReadCloser, error) {
	video, err := p.client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}

	formats := video.Formats.Type("video/mp4").WithAudioChannels()
	if len(formats) == 0 {
		formats = video.Formats.WithAudioChannels()
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("no video format for video %s", videoID)
	}

	stream, _, err := p.client.GetStreamContext(ctx, video, &formats[0])
	if err != nil {
		return nil, fmt.Errorf("open video stream: %w", err)
	}
	return stream, nil
}

func fromYTDL(v *ytdl.Video) Video {
	out := Video{
		ID:          v.ID,
		Title:       v.Title,
		Channel:     v.Author,
		Description: v.Description,
		Duration:    v.Duration,
		Views:       int64(v.Views),
	}
	if len(v.Thumbnails) > 0 {
		// Thumbnails are ordered smallest first; take the largest.
		out.ThumbnailURL = v.Thumbnails[len(v.Thumbnails)-1].URL
	}
	return out
}
