// Package bot routes inbound chat messages. Dispatch order follows the
// conversation model: button replies, typed adventure choices, the
// feature owning the session, and finally verb commands.
package bot

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/adventure"
	"github.com/louisbranch/questline/internal/features/chessgame"
	"github.com/louisbranch/questline/internal/features/economy"
	"github.com/louisbranch/questline/internal/features/graph"
	"github.com/louisbranch/questline/internal/features/league"
	"github.com/louisbranch/questline/internal/features/youtube"
	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/transport"
)

const footballMenu = "⚽ *FOOTBALL LEAGUES MENU*\n\n" +
	"🏴󠁧󠁢󠁥󠁮󠁧󠁿 **English Premier League (2018/19)**\n" +
	"• .epl or .premier or .league\n\n" +
	"🇪🇸 **Spanish La Liga (2018/19)**\n" +
	"• .laliga or .liga or .spanish\n\n" +
	"🇮🇹 **Italian Serie A (2018/19)**\n" +
	"• .seriea or .seria or .italian\n\n" +
	"📊 *Each league offers:*\n" +
	"• League tables and standings\n" +
	"• Team statistics and match data\n" +
	"• Head-to-head results\n" +
	"• Goals, shots, and card statistics\n\n" +
	"💡 *Example queries:*\n" +
	"• \"show table\" - League standings\n" +
	"• \"list teams\" - All team names\n" +
	"• \"How many goals did Barcelona score?\"\n" +
	"• \"Real Madrid vs Barcelona\"\n\n" +
	"❌ Type \"cancel\" to exit"

const unknownCommandHelp = "❌ Unknown command. Available commands:\n\n" +
	"**⚽ Football Commands:**\n" +
	"• football - Show league menu\n" +
	"• epl - Premier League 2018/19\n" +
	"• laliga - Spanish La Liga 2018/19\n" +
	"• seriea - Italian Serie A 2018/19\n\n" +
	"**🎵 YouTube Commands:**\n" +
	"• youtube <video URL or ID>\n" +
	"• mp3, mp4, related, thumbnail\n\n" +
	"**🎮 RPG Game Commands:**\n" +
	"• game - Show game menu\n" +
	"• profile, inventory, adventure\n" +
	"• blacksmith, shop, fishing, pet\n\n" +
	"**♟️ Other Features:**\n" +
	"• chess - Play against the computer\n" +
	"• graph - Linear function calculator\n\n" +
	"**🔧 Utility:**\n" +
	"• cancel - Cancel current operation"

// Handlers collects the feature handlers the router dispatches to.
type Handlers struct {
	Adventure *adventure.Handler
	Economy   *economy.Handler
	League    *league.Handler
	Chess     *chessgame.Handler
	Graph     *graph.Handler
	YouTube   *youtube.Handler
}

// Router owns message dispatch. Messages from the same user are
// serialized; different users proceed concurrently.
type Router struct {
	sessions *session.Table
	sender   transport.Sender
	logger   *zap.Logger
	tracer   trace.Tracer
	handlers Handlers

	mu    sync.Mutex
	users map[string]*sync.Mutex
}

// NewRouter wires the router.
func NewRouter(sessions *session.Table, sender transport.Sender, handlers Handlers, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		sessions: sessions,
		sender:   sender,
		logger:   logger,
		tracer:   otel.Tracer("questline/bot"),
		handlers: handlers,
		users:    make(map[string]*sync.Mutex),
	}
}

// Handle implements transport.Handler.
func (r *Router) Handle(ctx context.Context, msg transport.Message) {
	if msg.From == "" {
		return
	}

	lock := r.userLock(msg.From)
	lock.Lock()
	defer lock.Unlock()

	ctx, span := r.tracer.Start(ctx, "bot.dispatch",
		trace.WithAttributes(
			attribute.String("user.id", msg.From),
			attribute.Bool("message.button", msg.ButtonReplyID != ""),
		))
	defer span.End()

	if err := r.dispatch(ctx, msg); err != nil {
		span.RecordError(err)
		r.logger.Error("dispatch failed",
			zap.String("user", msg.From), zap.String("body", msg.Body), zap.Error(err))
		if err := r.sender.SendText(ctx, msg.From, "❌ An error occurred. Please try again."); err != nil {
			r.logger.Warn("error reply failed", zap.String("user", msg.From), zap.Error(err))
		}
	}
}

func (r *Router) userLock(userID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.users[userID]
	if !ok {
		lock = &sync.Mutex{}
		r.users[userID] = lock
	}
	return lock
}

func (r *Router) dispatch(ctx context.Context, msg transport.Message) error {
	if msg.ButtonReplyID != "" {
		_, err := r.handlers.Adventure.HandleButtonReply(ctx, msg.From, msg.ButtonReplyID)
		return err
	}

	if handled, err := r.handlers.Adventure.HandleTextChoice(ctx, msg.From, msg.Body); handled || err != nil {
		return err
	}

	if handled, err := r.dispatchSession(ctx, msg); handled || err != nil {
		return err
	}
	return r.dispatchCommand(ctx, msg)
}

// dispatchSession forwards the message to the feature owning the
// session, if any. A stale payload releases the session and falls back
// to command parsing.
func (r *Router) dispatchSession(ctx context.Context, msg transport.Message) (bool, error) {
	sess := r.sessions.GetOrCreate(msg.From)
	switch sess.State {
	case session.StateLeagueQuery:
		qc, ok := sess.Payload.(league.QueryContext)
		if !ok {
			break
		}
		return true, r.handlers.League.HandleQuery(ctx, msg.From, qc.League, msg.Body)

	case session.StateLeagueAnalysis:
		ac, ok := sess.Payload.(league.AnalysisContext)
		if !ok {
			break
		}
		return true, r.handlers.League.HandleAnalysis(ctx, msg.From, ac.League, msg.Body)

	case session.StateChess:
		return true, r.handlers.Chess.HandleMove(ctx, msg.From, msg.Body)

	case session.StateGraph:
		return true, r.handlers.Graph.HandleInput(ctx, msg.From, msg.Body)

	case session.StateYouTubeQuery:
		return true, r.handlers.YouTube.HandleQuery(ctx, msg.From, msg.Body)

	case session.StateYouTubeRelated:
		yc, ok := sess.Payload.(*youtube.Context)
		if !ok {
			break
		}
		return true, r.handlers.YouTube.HandleRelated(ctx, msg.From, yc, msg.Body)

	case session.StateYouTubeAction:
		yc, ok := sess.Payload.(*youtube.Context)
		if !ok {
			break
		}
		return true, r.handlers.YouTube.HandleAction(ctx, msg.From, yc, msg.Body)

	default:
		return false, nil
	}

	r.logger.Warn("stale session payload dropped",
		zap.String("user", msg.From), zap.Stringer("state", sess.State))
	r.sessions.Reset(msg.From)
	return false, nil
}

func (r *Router) dispatchCommand(ctx context.Context, msg transport.Message) error {
	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return nil
	}
	fields := strings.Fields(strings.ToLower(body))
	verb := strings.TrimPrefix(fields[0], ".")
	args := fields[1:]

	switch verb {
	// Football league Q&A.
	case "epl", "premier", "league":
		return r.handlers.League.StartQuery(ctx, msg.From, "epl")
	case "laliga", "liga", "spanish":
		return r.handlers.League.StartQuery(ctx, msg.From, "laliga")
	case "seriea", "seria", "italian":
		return r.handlers.League.StartQuery(ctx, msg.From, "seriea")
	case "football", "soccer":
		r.sessions.Reset(msg.From)
		return r.sender.SendText(ctx, msg.From, footballMenu)

	// League analysis.
	case "serieanalysis", "saanalysis", "analysis":
		return r.handlers.League.StartAnalysis(ctx, msg.From, "seriea")
	case "eplanalysis", "premieranalysis", "planalysis":
		return r.handlers.League.StartAnalysis(ctx, msg.From, "epl")
	case "laligaanalysis", "ligaanalysis", "spanishanalysis":
		return r.handlers.League.StartAnalysis(ctx, msg.From, "laliga")
	case "bundesligaanalysis", "germananalysis", "bundanalysis":
		return r.handlers.League.StartAnalysis(ctx, msg.From, "bundesliga")
	case "ligue1analysis", "frenchanalysis", "l1analysis":
		return r.handlers.League.StartAnalysis(ctx, msg.From, "ligue1")

	case "chess":
		return r.handlers.Chess.Start(ctx, msg.From)
	case "graph":
		return r.handlers.Graph.Start(ctx, msg.From)

	// YouTube: a bare verb prompts for a query, a verb with an
	// argument resolves it directly.
	case "youtube":
		if len(args) > 0 {
			r.sessions.Reset(msg.From)
			return r.handlers.YouTube.HandleQuery(ctx, msg.From, strings.Join(args, " "))
		}
		return r.handlers.YouTube.Start(ctx, msg.From)
	case "mp3", "mp4", "thumbnail":
		// Reaching here means no video flow is active.
		return r.sender.SendText(ctx, msg.From, "❌ No video selected. Use .youtube first to search for a video.")
	case "related":
		return r.sender.SendText(ctx, msg.From, "❌ No related videos available. Search for a video first.")

	// RPG economy.
	case "game", "menu", "help":
		return r.handlers.Economy.Menu(ctx, msg.From)
	case "profile":
		return r.handlers.Economy.Profile(ctx, msg.From)
	case "inventory":
		return r.handlers.Economy.Inventory(ctx, msg.From)
	case "blacksmith":
		return r.handlers.Economy.Blacksmith(ctx, msg.From, args)
	case "createsword", "createarmor", "createpickaxe", "createfishingrod":
		return r.handlers.Economy.Blacksmith(ctx, msg.From, append([]string{verb}, args...))
	case "shop":
		return r.handlers.Economy.Shop(ctx, msg.From, args)
	case "buy", "sell":
		return r.handlers.Economy.Shop(ctx, msg.From, append([]string{verb}, args...))
	case "open":
		return r.handlers.Economy.Open(ctx, msg.From, args)
	case "heal":
		return r.handlers.Economy.Heal(ctx, msg.From, args)
	case "fishing":
		return r.handlers.Economy.Fishing(ctx, msg.From)
	case "pet":
		return r.handlers.Economy.Pet(ctx, msg.From, args)
	case "adventure":
		return r.handlers.Adventure.HandleCommand(ctx, msg.From, args)

	case "cancel":
		r.sessions.Reset(msg.From)
		return r.sender.SendText(ctx, msg.From, "❌ Operation cancelled.")
	}

	return r.sender.SendText(ctx, msg.From, unknownCommandHelp)
}
