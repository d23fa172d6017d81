package chessgame

import (
	"strings"
	"testing"
)

// applyMoves plays both sides through PlayerMove, which accepts any
// legal move for the side to move.
func applyMoves(t *testing.T, game *Game, moves ...[2]string) {
	t.Helper()
	for _, m := range moves {
		if err := game.PlayerMove(m[0], m[1]); err != nil {
			t.Fatalf("PlayerMove(%s-%s): %v", m[0], m[1], err)
		}
	}
}

func TestPlayerMoveRejectsIllegal(t *testing.T) {
	game := NewGame(firstMove)

	if err := game.PlayerMove("e2", "e5"); err == nil {
		t.Error("expected pawn triple-step to be rejected")
	}
	if err := game.PlayerMove("e7", "e5"); err == nil {
		t.Error("expected black move on white's turn to be rejected")
	}
	if game.MoveCount() != 0 {
		t.Errorf("moves played = %d, want none", game.MoveCount())
	}
}

func TestStatusTracksTurnAndCheck(t *testing.T) {
	game := NewGame(firstMove)

	if got := game.Status(); got != "White to move" {
		t.Fatalf("initial status = %q", got)
	}

	applyMoves(t, game, [2]string{"e2", "e4"})
	if got := game.Status(); got != "Black to move" {
		t.Errorf("status after e4 = %q", got)
	}

	// 1.e4 e5 2.Bc4 Nc6 3.Qh5 a6 and Qxf7 delivers mate.
	applyMoves(t, game,
		[2]string{"e7", "e5"},
		[2]string{"f1", "c4"},
		[2]string{"b8", "c6"},
		[2]string{"d1", "h5"},
		[2]string{"a7", "a6"},
		[2]string{"h5", "f7"},
	)

	if !game.Over() {
		t.Fatal("expected scholar's mate to end the game")
	}
	if got := game.Status(); got != "Checkmate! White wins!" {
		t.Errorf("final status = %q", got)
	}
	if !game.InCheck() {
		t.Error("mated side should be in check")
	}
	if game.PGN() == "" {
		t.Error("expected a PGN move list")
	}
}

func TestComputerMovePicksLegalReply(t *testing.T) {
	game := NewGame(firstMove)
	applyMoves(t, game, [2]string{"e2", "e4"})

	move, err := game.ComputerMove()
	if err != nil {
		t.Fatalf("ComputerMove: %v", err)
	}
	if len(move) < 4 {
		t.Errorf("move = %q, want coordinate notation", move)
	}
	if game.MoveCount() != 2 {
		t.Errorf("moves played = %d, want 2", game.MoveCount())
	}
	if game.Turn() != "White" {
		t.Errorf("turn = %q, want back to White", game.Turn())
	}
}

func TestBoardTextShowsRanks(t *testing.T) {
	game := NewGame(firstMove)

	board := game.BoardText()
	for _, rank := range []string{"8", "1"} {
		if !strings.Contains(board, rank) {
			t.Errorf("board diagram missing rank %s:\n%s", rank, board)
		}
	}
}
