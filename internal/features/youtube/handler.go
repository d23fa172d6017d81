package youtube

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/transport"
)

// maxUploadBytes caps outbound video files.
const maxUploadBytes = 64 << 20

const actionMenu = "🎯 *Choose an action:*\n\n" +
	"Reply with:\n" +
	"🎵 *mp3* - Download Audio\n" +
	"🎬 *mp4* - Download Video\n" +
	"🔗 *related* - Show Related Videos\n" +
	"🖼️ *thumbnail* - Extract Thumbnail\n" +
	"❌ *cancel* - Cancel Operation"

// Handler walks a user through the video flow.
type Handler struct {
	provider Provider
	sessions *session.Table
	sender   transport.Sender
	logger   *zap.Logger
	printer  *message.Printer

	tempDir string
}

// NewHandler wires a Handler. A nil logger disables logging.
func NewHandler(provider Provider, sessions *session.Table, sender transport.Sender, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		provider: provider,
		sessions: sessions,
		sender:   sender,
		logger:   logger,
		printer:  message.NewPrinter(language.English),
		tempDir:  os.TempDir(),
	}
}

// SetDownloadDir redirects temporary media downloads. The directory
// must already exist.
func (h *Handler) SetDownloadDir(dir string) {
	if dir != "" {
		h.tempDir = dir
	}
}

// Start claims the conversation and prompts for a search query.
func (h *Handler) Start(ctx context.Context, userID string) error {
	h.sessions.SetState(userID, session.StateYouTubeQuery, nil)
	return h.sender.SendText(ctx, userID,
		"🎵 *YouTube Search*\n\n"+
			"🔍 Please send your search query.\n\n"+
			"📝 Examples:\n"+
			"• https://www.youtube.com/watch?v=dQw4w9WgXcQ\n"+
			"• youtu.be/dQw4w9WgXcQ\n"+
			"• A video ID\n\n"+
			"❌ Type \"cancel\" to abort.")
}

// HandleQuery resolves the user's query into a video and presents the
// action menu.
func (h *Handler) HandleQuery(ctx context.Context, userID, body string) error {
	input := strings.TrimSpace(body)
	if strings.EqualFold(input, "cancel") {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, "❌ YouTube search cancelled.")
	}

	if err := h.sender.SendText(ctx, userID, "🔍 Searching YouTube..."); err != nil {
		return err
	}

	video, err := h.provider.Lookup(ctx, input)
	if err != nil {
		h.logger.Warn("video lookup failed", zap.String("query", input), zap.Error(err))
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, "❌ Error searching YouTube. Please try again.")
	}

	info := fmt.Sprintf("🎬 *YouTube Video Found*\n\n"+
		"📝 *Title:* %s\n"+
		"⏱️ *Duration:* %s\n"+
		"📺 *Channel:* %s\n"+
		"👀 *Views:* %s\n"+
		"👍 *Likes:* %s\n"+
		"🆔 *Video ID:* %s\n"+
		"📝 *Description:* %s",
		video.Title, formatDuration(video.Duration), video.Channel,
		h.formatCount(video.Views), h.formatCount(video.Likes),
		video.ID, truncate(video.Description, 200))
	if err := h.sender.SendText(ctx, userID, info); err != nil {
		return err
	}
	h.sendThumbnail(ctx, userID, video)

	related, err := h.provider.Related(ctx, video.ID)
	if err != nil {
		h.logger.Warn("related lookup failed", zap.String("video", video.ID), zap.Error(err))
	}

	h.sessions.SetState(userID, session.StateYouTubeAction, &Context{Video: video, Related: related})
	return h.sender.SendText(ctx, userID, actionMenu)
}

// HandleAction runs one action-menu reply against the active video.
func (h *Handler) HandleAction(ctx context.Context, userID string, yc *Context, body string) error {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "mp3":
		return h.downloadAudio(ctx, userID, yc.Video)
	case "mp4":
		return h.downloadVideo(ctx, userID, yc.Video)
	case "related":
		if len(yc.Related) == 0 {
			return h.sender.SendText(ctx, userID, "❌ No related videos found.")
		}
		h.sessions.SetState(userID, session.StateYouTubeRelated, yc)
		return h.sender.SendText(ctx, userID, relatedList(yc.Related))
	case "thumbnail":
		return h.extractThumbnail(ctx, userID, yc.Video)
	case "cancel":
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, "❌ Operation cancelled.")
	default:
		return h.sender.SendText(ctx, userID,
			"❌ Invalid option. Please reply with:\n"+
				"🎵 mp3 | 🎬 mp4 | 🔗 related | 🖼️ thumbnail | ❌ cancel")
	}
}

// HandleRelated runs one related-selection reply.
func (h *Handler) HandleRelated(ctx context.Context, userID string, yc *Context, body string) error {
	input := strings.ToLower(strings.TrimSpace(body))

	if input == "cancel" {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, "❌ Related video selection cancelled.")
	}
	if input == "back" {
		h.sessions.SetState(userID, session.StateYouTubeAction, yc)
		return h.sender.SendText(ctx, userID, actionMenu)
	}

	index, err := strconv.Atoi(input)
	if err != nil || index < 1 || index > len(yc.Related) {
		return h.sender.SendText(ctx, userID,
			"❌ Invalid selection. Please reply with a number between 1-5, \"back\", or \"cancel\".")
	}
	selected := yc.Related[index-1]

	if err := h.sender.SendText(ctx, userID, "🔍 Loading selected video..."); err != nil {
		return err
	}
	video, err := h.provider.Lookup(ctx, selected.ID)
	if err != nil {
		h.logger.Warn("selected video lookup failed", zap.String("video", selected.ID), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Error loading video. Please try again.")
	}

	yc.Video = video
	h.sessions.SetState(userID, session.StateYouTubeAction, yc)

	info := fmt.Sprintf("🎬 *Selected Video*\n\n"+
		"📝 *Title:* %s\n"+
		"⏱️ *Duration:* %s\n"+
		"📺 *Channel:* %s\n"+
		"👀 *Views:* %s\n"+
		"👍 *Likes:* %s",
		video.Title, formatDuration(video.Duration), video.Channel,
		h.formatCount(video.Views), h.formatCount(video.Likes))
	if err := h.sender.SendText(ctx, userID, info); err != nil {
		return err
	}
	h.sendThumbnail(ctx, userID, video)
	return h.sender.SendText(ctx, userID, actionMenu)
}

func (h *Handler) downloadAudio(ctx context.Context, userID string, video Video) error {
	if err := h.sender.SendText(ctx, userID, "🎵 Downloading audio... Please wait."); err != nil {
		return err
	}

	path, _, err := h.downloadToFile(ctx, video.ID, "mp3", h.provider.DownloadAudio)
	if err != nil {
		h.logger.Warn("audio download failed", zap.String("video", video.ID), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Error downloading audio. Please try again.")
	}
	defer func() { _ = os.Remove(path) }()

	if err := h.sender.SendFile(ctx, userID, path); err != nil {
		return err
	}
	if err := h.sender.SendText(ctx, userID,
		fmt.Sprintf("🎵 *%s*\n✅ Audio downloaded successfully!", video.Title)); err != nil {
		return err
	}
	return h.completeOperation(ctx, userID)
}

func (h *Handler) downloadVideo(ctx context.Context, userID string, video Video) error {
	if err := h.sender.SendText(ctx, userID, "🎬 Downloading video... Please wait (this may take a while)."); err != nil {
		return err
	}

	path, size, err := h.downloadToFile(ctx, video.ID, "mp4", h.provider.DownloadVideo)
	if err != nil {
		h.logger.Warn("video download failed", zap.String("video", video.ID), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Error downloading video. Please try again.")
	}
	defer func() { _ = os.Remove(path) }()

	if size > maxUploadBytes {
		// Stay on the action menu so the user can pick mp3 instead.
		return h.sender.SendText(ctx, userID, fmt.Sprintf(
			"❌ Video is too large (%.1fMB). The upload limit is 64MB.\n\n"+
				"Would you like to download as audio instead? Reply with \"mp3\" or \"cancel\".",
			float64(size)/(1024*1024)))
	}

	if err := h.sender.SendVideo(ctx, userID, path); err != nil {
		return err
	}
	if err := h.sender.SendText(ctx, userID,
		fmt.Sprintf("🎬 *%s*\n✅ Video downloaded successfully!", video.Title)); err != nil {
		return err
	}
	return h.completeOperation(ctx, userID)
}

func (h *Handler) extractThumbnail(ctx context.Context, userID string, video Video) error {
	if err := h.sender.SendText(ctx, userID, "🖼️ Extracting thumbnail..."); err != nil {
		return err
	}
	if video.ThumbnailURL == "" {
		return h.sender.SendText(ctx, userID, "❌ No thumbnail available for this video.")
	}

	caption := fmt.Sprintf("🖼️ *Thumbnail Extracted*\n\n📝 *Title:* %s\n📺 *Channel:* %s",
		video.Title, video.Channel)
	if err := h.sender.SendMedia(ctx, userID, video.ThumbnailURL, caption); err != nil {
		h.logger.Warn("thumbnail send failed", zap.String("video", video.ID), zap.Error(err))
		return h.sender.SendText(ctx, userID, "❌ Error extracting thumbnail. Please try again.")
	}
	return h.completeOperation(ctx, userID)
}

// completeOperation releases the conversation after a finished action.
func (h *Handler) completeOperation(ctx context.Context, userID string) error {
	h.sessions.Reset(userID)
	return h.sender.SendText(ctx, userID,
		"✅ Operation completed. Type \"youtube\" to search for another video.")
}

func (h *Handler) downloadToFile(ctx context.Context, videoID, ext string, open func(context.Context, string) (io.ReadCloser, error)) (string, int64, error) {
	stream, err := open(ctx, videoID)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = stream.Close() }()

	path := filepath.Join(h.tempDir, videoID+"."+ext)
	file, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}

	size, err := io.Copy(file, stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("write media file: %w", err)
	}
	return path, size, nil
}

func (h *Handler) sendThumbnail(ctx context.Context, userID string, video Video) {
	if video.ThumbnailURL == "" {
		return
	}
	if err := h.sender.SendMedia(ctx, userID, video.ThumbnailURL, "🖼️ Video Thumbnail"); err != nil {
		h.logger.Warn("thumbnail send failed", zap.String("video", video.ID), zap.Error(err))
	}
}

func (h *Handler) formatCount(v int64) string {
	if v <= 0 {
		return "N/A"
	}
	return h.printer.Sprintf("%d", v)
}

func relatedList(related []Video) string {
	var b strings.Builder
	b.WriteString("🔗 *Related Videos:*\n\n")

	limit := len(related)
	if limit > 5 {
		limit = 5
	}
	for i, video := range related[:limit] {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "*%d.* %s\n", i+1, video.Title)
		fmt.Fprintf(&b, "   ⏱️ Duration: %s\n", formatDuration(video.Duration))
		fmt.Fprintf(&b, "   📺 Channel: %s\n", video.Channel)
		fmt.Fprintf(&b, "   🆔 Video ID: %s", video.ID)
	}

	b.WriteString("\n\n📱 *Reply with:*\n")
	b.WriteString("• A number (1-5) to select a video\n")
	b.WriteString("• \"back\" to return to previous video\n")
	b.WriteString("• \"cancel\" to exit")
	return b.String()
}
