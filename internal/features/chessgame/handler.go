package chessgame

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/louisbranch/questline/internal/session"
	"github.com/louisbranch/questline/internal/transport"
	"github.com/notnil/chess"
)

const welcomeMessage = "♟️ *Chess Game Started!*\n\n" +
	"🏳️ You are playing as *White*. Enter moves in any format:\n" +
	"   • a2-a3  (with dash)\n" +
	"   • a2 a3  (with space)\n" +
	"   • a2a3   (compact)\n\n" +
	"📖 Available commands:\n" +
	"• *moves* - See move examples\n" +
	"• *board* - Show current position\n" +
	"• *help* - Show all commands\n" +
	"• *history* - Show game history\n" +
	"• *status* - Show game status\n" +
	"• *quit* - Exit chess game\n\n" +
	"🎯 *White to move*\n" +
	"Enter your move:"

const movesMessage = "📋 *CHESS MOVE EXAMPLES*\n\n" +
	"♟️ *PAWN MOVES:*\n" +
	"• e2-e4 → King's Pawn opening\n" +
	"• d2-d4 → Queen's Pawn opening\n" +
	"• c2-c4 → English Opening\n" +
	"• a2-a3 → Slow pawn advance\n\n" +
	"♞ *KNIGHT MOVES:*\n" +
	"• g1-f3 → Develop kingside knight\n" +
	"• b1-c3 → Develop queenside knight\n" +
	"• f3-e5 → Knight to center\n\n" +
	"♝ *BISHOP MOVES:*\n" +
	"• f1-c4 → Italian Game setup\n" +
	"• f1-b5 → Spanish Opening\n" +
	"• c1-f4 → Develop light bishop\n\n" +
	"♛ *QUEEN MOVES:*\n" +
	"• d1-h5 → Early queen attack\n" +
	"• d1-d2 → Queen development\n\n" +
	"♚ *KING MOVES & CASTLING:*\n" +
	"• e1-g1 → Castles kingside\n" +
	"• e1-c1 → Castles queenside\n" +
	"• e1-f1 → King move"

const helpMessage = "🎮 *CHESS GAME COMMANDS*\n\n" +
	"📖 *moves* → Show move examples\n" +
	"♟️ *board* → Display current position\n" +
	"📜 *history* → Show game move history\n" +
	"🔄 *status* → Show current game status\n" +
	"❓ *help* → Show this help menu\n" +
	"🚪 *quit* → Exit the chess game\n\n" +
	"🎯 *To make a move:*\n" +
	"Use any format:\n" +
	"• a2-a3 (with dash)\n" +
	"• a2 a3 (with space)\n" +
	"• a2a3 (compact)\n\n" +
	"📝 *Special Moves:*\n" +
	"• Castling: e1-g1 (kingside)\n" +
	"• Castling: e1-c1 (queenside)\n" +
	"• En Passant: automatic if legal"

// Handler drives the chess conversation while the session is in the
// chess state.
type Handler struct {
	sessions *session.Table
	sender   transport.Sender
	logger   *zap.Logger
	intn     func(n int) int
}

// NewHandler wires the chess handler. A nil intn falls back to the
// shared math/rand source.
func NewHandler(sessions *session.Table, sender transport.Sender, logger *zap.Logger, intn func(n int) int) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if intn == nil {
		intn = rand.Intn
	}
	return &Handler{sessions: sessions, sender: sender, logger: logger, intn: intn}
}

// Start abandons any in-flight feature and begins a fresh match.
func (h *Handler) Start(ctx context.Context, userID string) error {
	game := NewGame(h.intn)
	h.sessions.SetState(userID, session.StateChess, game)
	h.logger.Info("chess game started", zap.String("user", userID))

	if err := h.sender.SendText(ctx, userID, welcomeMessage); err != nil {
		return fmt.Errorf("chess start: %w", err)
	}
	return h.sendBoard(ctx, userID, game, "♟️ Initial chess position")
}

// HandleMove processes the user's message while a match is active:
// game commands first, anything else parsed as an origin-destination
// move.
func (h *Handler) HandleMove(ctx context.Context, userID, body string) error {
	sess := h.sessions.GetOrCreate(userID)
	game, ok := sess.Payload.(*Game)
	if !ok {
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, `❌ No active chess game. Type "chess" to start one.`)
	}

	input := strings.ToLower(strings.TrimSpace(body))
	switch input {
	case "quit", "exit":
		h.sessions.Reset(userID)
		return h.sender.SendText(ctx, userID, "👋 Chess game ended. Thanks for playing!")
	case "board":
		return h.sendBoard(ctx, userID, game, "♟️ "+game.Status())
	case "moves":
		return h.sender.SendText(ctx, userID, movesMessage)
	case "help":
		return h.sender.SendText(ctx, userID, helpMessage)
	case "history":
		return h.sendHistory(ctx, userID, game)
	case "status":
		return h.sendStatus(ctx, userID, game)
	}

	from, to, recognized := parseMove(input)
	if !recognized {
		return h.sender.SendText(ctx, userID,
			"❌ Invalid move format! Use one of these formats:\n"+
				"   • a2-a3  (with dash)\n"+
				"   • a2 a3  (with space)\n"+
				"   • a2a3   (no separator)\n\n"+
				"💡 Type *help* for all commands")
	}
	if len(from) != 2 || len(to) != 2 {
		return h.sender.SendText(ctx, userID,
			"❌ Invalid squares! Use format like: a2-a3, e2-e4, d1-h5\n"+
				"💡 Type *moves* to see all possible moves")
	}

	if err := game.PlayerMove(from, to); err != nil {
		h.logger.Debug("rejected move",
			zap.String("user", userID), zap.String("from", from), zap.String("to", to), zap.Error(err))
		return h.sender.SendText(ctx, userID,
			"❌ Invalid move! Try again.\n💡 Type *moves* to see move examples")
	}

	if err := h.sendBoard(ctx, userID, game, "♟️ "+game.Status()); err != nil {
		return err
	}
	if game.Over() {
		return h.gameOver(ctx, userID, game)
	}

	if err := h.sender.SendText(ctx, userID, "🤖 Computer is thinking..."); err != nil {
		return err
	}
	reply, err := game.ComputerMove()
	if err != nil {
		return fmt.Errorf("chess: %w", err)
	}
	h.logger.Info("computer moved", zap.String("user", userID), zap.String("move", reply))

	if err := h.sendBoard(ctx, userID, game, "♟️ "+game.Status()); err != nil {
		return err
	}
	if game.Over() {
		return h.gameOver(ctx, userID, game)
	}
	return h.sender.SendText(ctx, userID, fmt.Sprintf("🎯 %s\nEnter your next move:", game.Status()))
}

func (h *Handler) sendBoard(ctx context.Context, userID string, game *Game, caption string) error {
	return h.sender.SendText(ctx, userID, fmt.Sprintf("%s\n```\n%s\n```", caption, game.BoardText()))
}

func (h *Handler) sendHistory(ctx context.Context, userID string, game *Game) error {
	pgn := game.PGN()
	if pgn == "" {
		pgn = "No moves yet"
	}
	return h.sender.SendText(ctx, userID, fmt.Sprintf(
		"📜 *Game History*\n\n📈 Moves played: %d\n📝 PGN: %s\n\n🎯 %s",
		game.MoveCount(), pgn, game.Status()))
}

func (h *Handler) sendStatus(ctx context.Context, userID string, game *Game) error {
	inCheck := "No"
	if game.InCheck() {
		inCheck = "Yes"
	}
	return h.sender.SendText(ctx, userID, fmt.Sprintf(
		"📊 *Game Status*\n\n🎯 %s\n📈 Moves played: %d\n⚪ Current turn: %s\n⚠️ In check: %s\n🎮 Game active: Yes",
		game.Status(), game.MoveCount(), game.Turn(), inCheck))
}

func (h *Handler) gameOver(ctx context.Context, userID string, game *Game) error {
	outcome, method := game.Result()

	var b strings.Builder
	b.WriteString("🏁 *Game Over!*\n\n")
	switch {
	case method == chess.Checkmate && outcome == chess.WhiteWon:
		b.WriteString("👑 *Checkmate!* White wins!\n")
	case method == chess.Checkmate && outcome == chess.BlackWon:
		b.WriteString("👑 *Checkmate!* Black wins!\n")
	case method == chess.Stalemate:
		b.WriteString("🤝 *Stalemate!* Draw!\n")
	case method == chess.ThreefoldRepetition:
		b.WriteString("🔄 *Threefold repetition!* Draw!\n")
	case method == chess.InsufficientMaterial:
		b.WriteString("⚖️ *Insufficient material!* Draw!\n")
	default:
		b.WriteString("🤝 *Draw!*\n")
	}
	fmt.Fprintf(&b, "\n📜 Final PGN:\n%s", game.PGN())

	if err := h.sender.SendText(ctx, userID, b.String()); err != nil {
		return err
	}
	h.sessions.Reset(userID)
	return h.sender.SendText(ctx, userID, "Thanks for playing! Type *chess* to start a new game.")
}

// parseMove splits a move into origin and destination squares. It
// accepts "a2-a3", "a2 a3", and "a2a3"; any other shape is reported as
// unrecognized.
func parseMove(input string) (from, to string, recognized bool) {
	switch {
	case strings.Contains(input, "-"):
		parts := strings.SplitN(input, "-", 2)
		return parts[0], parts[1], true
	case strings.Contains(input, " "):
		parts := strings.Fields(input)
		if len(parts) < 2 {
			return "", "", true
		}
		return parts[0], parts[1], true
	case len(input) == 4:
		return input[:2], input[2:], true
	}
	return "", "", false
}
