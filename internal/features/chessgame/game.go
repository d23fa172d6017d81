// Package chessgame implements a single-player chess match. The user
// plays White; the computer answers every move with a uniformly random
// legal reply.
package chessgame

import (
	"errors"
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// Game wraps one match and the move source for the computer side.
type Game struct {
	inner *chess.Game
	intn  func(n int) int
}

// NewGame starts a match from the initial position. intn supplies the
// computer's move selection and must return a value in [0, n).
func NewGame(intn func(n int) int) *Game {
	return &Game{inner: chess.NewGame(), intn: intn}
}

// PlayerMove applies a move given as origin and destination squares,
// e.g. "e2" and "e4". Pawn moves reaching the last rank promote to a
// queen.
func (g *Game) PlayerMove(from, to string) error {
	notation := chess.UCINotation{}
	move, err := notation.Decode(g.inner.Position(), from+to)
	if err != nil {
		move, err = notation.Decode(g.inner.Position(), from+to+"q")
		if err != nil {
			return fmt.Errorf("move %s-%s: %w", from, to, err)
		}
	}
	if err := g.inner.Move(move); err != nil {
		return fmt.Errorf("move %s-%s: %w", from, to, err)
	}
	return nil
}

// ComputerMove picks and applies a random legal move, returning it in
// coordinate notation.
func (g *Game) ComputerMove() (string, error) {
	moves := g.inner.ValidMoves()
	if len(moves) == 0 {
		return "", errors.New("no legal moves")
	}
	move := moves[g.intn(len(moves))]
	if err := g.inner.Move(move); err != nil {
		return "", fmt.Errorf("computer move: %w", err)
	}
	return move.String(), nil
}

// Over reports whether the match has reached a decisive or drawn
// outcome.
func (g *Game) Over() bool {
	return g.inner.Outcome() != chess.NoOutcome
}

// Result exposes the outcome and the method that produced it.
func (g *Game) Result() (chess.Outcome, chess.Method) {
	return g.inner.Outcome(), g.inner.Method()
}

// Turn names the side to move.
func (g *Game) Turn() string {
	return g.inner.Position().Turn().Name()
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	moves := g.inner.Moves()
	if len(moves) == 0 {
		return false
	}
	return moves[len(moves)-1].HasTag(chess.Check)
}

// MoveCount reports the number of half-moves played.
func (g *Game) MoveCount() int {
	return len(g.inner.Moves())
}

// PGN renders the move list in portable game notation.
func (g *Game) PGN() string {
	return strings.TrimSpace(g.inner.String())
}

// Status is the one-line game summary shown under board renders.
func (g *Game) Status() string {
	switch g.inner.Outcome() {
	case chess.WhiteWon:
		return "Checkmate! White wins!"
	case chess.BlackWon:
		return "Checkmate! Black wins!"
	case chess.Draw:
		return "Draw!"
	}
	if g.InCheck() {
		return fmt.Sprintf("%s to move (check!)", g.Turn())
	}
	return fmt.Sprintf("%s to move", g.Turn())
}

// BoardText renders the current position as a monospace diagram.
func (g *Game) BoardText() string {
	return g.inner.Position().Board().Draw()
}
