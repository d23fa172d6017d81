package chessgame

import (
	"context"
	"strings"
	"testing"

	"github.com/louisbranch/questline/internal/session"
)

type fakeSender struct {
	texts []string
}

func (s *fakeSender) SendText(_ context.Context, _, text string) error {
	s.texts = append(s.texts, text)
	return nil
}

func (s *fakeSender) SendMedia(_ context.Context, _, _, _ string) error { return nil }
func (s *fakeSender) SendImage(_ context.Context, _, _ string) error    { return nil }
func (s *fakeSender) SendVideo(_ context.Context, _, _ string) error    { return nil }
func (s *fakeSender) SendAudio(_ context.Context, _, _ string) error    { return nil }
func (s *fakeSender) SendFile(_ context.Context, _, _ string) error     { return nil }
func (s *fakeSender) SendSticker(_ context.Context, _, _ string) error  { return nil }

func (s *fakeSender) lastText(t *testing.T) string {
	t.Helper()
	if len(s.texts) == 0 {
		t.Fatal("no text was sent")
	}
	return s.texts[len(s.texts)-1]
}

func (s *fakeSender) contains(substr string) bool {
	for _, text := range s.texts {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

// firstMove always picks the first legal move, keeping the computer
// deterministic.
func firstMove(_ int) int { return 0 }

func newTestHandler(t *testing.T) (*Handler, *fakeSender, *session.Table) {
	t.Helper()
	sender := &fakeSender{}
	sessions := session.NewTable()
	return NewHandler(sessions, sender, nil, firstMove), sender, sessions
}

func startedHandler(t *testing.T) (*Handler, *fakeSender, *session.Table) {
	t.Helper()
	h, sender, sessions := newTestHandler(t)
	if err := h.Start(context.Background(), "u1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sender.texts = nil
	return h, sender, sessions
}

func activeGame(t *testing.T, sessions *session.Table) *Game {
	t.Helper()
	game, ok := sessions.GetOrCreate("u1").Payload.(*Game)
	if !ok {
		t.Fatal("session payload is not a chess game")
	}
	return game
}

func TestStartClaimsSessionAndSendsBoard(t *testing.T) {
	h, sender, sessions := newTestHandler(t)

	if err := h.Start(context.Background(), "u1"); err != nil {
		t.Fatalf("Start: %v", err)
	}

	s := sessions.GetOrCreate("u1")
	if s.State != session.StateChess {
		t.Errorf("state = %v, want chess", s.State)
	}
	if _, ok := s.Payload.(*Game); !ok {
		t.Errorf("payload = %T, want *Game", s.Payload)
	}
	if len(sender.texts) != 2 {
		t.Fatalf("sent %d messages, want welcome and board", len(sender.texts))
	}
	if !strings.Contains(sender.texts[0], "Chess Game Started") {
		t.Errorf("welcome missing: %q", sender.texts[0])
	}
	if !strings.Contains(sender.texts[1], "Initial chess position") {
		t.Errorf("board caption missing: %q", sender.texts[1])
	}
}

func TestHandleMovePlaysAndComputerReplies(t *testing.T) {
	h, sender, sessions := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2-e4"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if game := activeGame(t, sessions); game.MoveCount() != 2 {
		t.Errorf("moves played = %d, want player + computer", game.MoveCount())
	}
	if !sender.contains("🤖 Computer is thinking...") {
		t.Error("missing thinking message")
	}
	if !strings.Contains(sender.lastText(t), "Enter your next move:") {
		t.Errorf("missing next-move prompt: %q", sender.lastText(t))
	}
}

func TestHandleMoveAcceptsAllFormats(t *testing.T) {
	for _, input := range []string{"e2-e4", "e2 e4", "e2e4"} {
		t.Run(input, func(t *testing.T) {
			h, _, sessions := startedHandler(t)

			if err := h.HandleMove(context.Background(), "u1", input); err != nil {
				t.Fatalf("HandleMove(%q): %v", input, err)
			}
			if game := activeGame(t, sessions); game.MoveCount() != 2 {
				t.Errorf("moves played = %d, want 2", game.MoveCount())
			}
		})
	}
}

func TestHandleMoveRejectsBadFormat(t *testing.T) {
	h, sender, sessions := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2e"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if !strings.Contains(sender.lastText(t), "Invalid move format") {
		t.Errorf("got %q, want format error", sender.lastText(t))
	}
	if game := activeGame(t, sessions); game.MoveCount() != 0 {
		t.Errorf("moves played = %d, want none", game.MoveCount())
	}
}

func TestHandleMoveRejectsBadSquares(t *testing.T) {
	h, sender, _ := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2-e"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if !strings.Contains(sender.lastText(t), "Invalid squares") {
		t.Errorf("got %q, want squares error", sender.lastText(t))
	}
}

func TestHandleMoveRejectsIllegalMove(t *testing.T) {
	h, sender, sessions := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2-e5"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if !strings.Contains(sender.lastText(t), "Invalid move! Try again.") {
		t.Errorf("got %q, want illegal-move error", sender.lastText(t))
	}
	if game := activeGame(t, sessions); game.MoveCount() != 0 {
		t.Errorf("moves played = %d, want none", game.MoveCount())
	}
}

func TestQuitEndsGame(t *testing.T) {
	h, sender, sessions := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "quit"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if !strings.Contains(sender.lastText(t), "Chess game ended") {
		t.Errorf("got %q, want end message", sender.lastText(t))
	}
	if s := sessions.GetOrCreate("u1"); s.State != session.StateIdle {
		t.Errorf("state = %v, want idle", s.State)
	}
}

func TestCommandsReport(t *testing.T) {
	tests := []struct {
		command string
		want    string
	}{
		{"board", "White to move"},
		{"moves", "CHESS MOVE EXAMPLES"},
		{"help", "CHESS GAME COMMANDS"},
		{"history", "PGN: No moves yet"},
		{"status", "Current turn: White"},
	}
	for _, tc := range tests {
		t.Run(tc.command, func(t *testing.T) {
			h, sender, _ := startedHandler(t)

			if err := h.HandleMove(context.Background(), "u1", tc.command); err != nil {
				t.Fatalf("HandleMove(%q): %v", tc.command, err)
			}
			if !strings.Contains(sender.lastText(t), tc.want) {
				t.Errorf("got %q, want it to mention %q", sender.lastText(t), tc.want)
			}
		})
	}
}

func TestHistoryAfterMoves(t *testing.T) {
	h, sender, _ := startedHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2-e4"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}
	if err := h.HandleMove(context.Background(), "u1", "history"); err != nil {
		t.Fatalf("history: %v", err)
	}

	got := sender.lastText(t)
	if !strings.Contains(got, "Moves played: 2") {
		t.Errorf("got %q, want two moves reported", got)
	}
	if strings.Contains(got, "No moves yet") {
		t.Errorf("got %q, want a real PGN", got)
	}
}

func TestHandleMoveWithoutGame(t *testing.T) {
	h, sender, sessions := newTestHandler(t)

	if err := h.HandleMove(context.Background(), "u1", "e2-e4"); err != nil {
		t.Fatalf("HandleMove: %v", err)
	}

	if !strings.Contains(sender.lastText(t), "No active chess game") {
		t.Errorf("got %q, want missing-game error", sender.lastText(t))
	}
	if s := sessions.GetOrCreate("u1"); s.State != session.StateIdle {
		t.Errorf("state = %v, want idle", s.State)
	}
}
