// Package rules adapts a full chess rules implementation behind the small
// surface the puzzle pipeline needs: position parsing, legal move
// application, and conversion between coordinate and algebraic notation.
// Rule enforcement itself is delegated to github.com/notnil/chess.
package rules

import (
	"fmt"

	"github.com/notnil/chess"

	"puzzlebook/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Color identifies the side to move.
type Color int8

const (
	White Color = iota
	Black
)

// String returns the conventional lowercase color name.
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Board is a single chess position that can be advanced one move at a time.
// Implementations must apply only legal moves and report everything else
// as an error wrapping errors.ErrIllegalMove.
type Board interface {
	// FEN returns the current position in Forsyth-Edwards notation.
	FEN() string

	// SideToMove reports whose turn it is.
	SideToMove() Color

	// Push applies a coordinate (UCI) move, advancing the position.
	Push(uciMove string) error

	// SAN renders a coordinate move in standard algebraic notation for the
	// current position, without advancing it.
	SAN(uciMove string) (string, error)

	// UCI converts a standard algebraic move back to coordinate form for
	// the current position, without advancing it.
	UCI(sanMove string) (string, error)
}

// Engine parses position notation into playable boards.
type Engine interface {
	// ParsePosition builds a Board from a FEN string.
	ParsePosition(fen string) (Board, error)
}

// NewEngine returns the notnil/chess-backed Engine.
func NewEngine() Engine {
	return notnilEngine{}
}

type notnilEngine struct{}

func (notnilEngine) ParsePosition(fen string) (Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", errors.ErrInvalidFEN, fen, err)
	}
	return &notnilBoard{game: chess.NewGame(opt)}, nil
}

// notnilBoard wraps a notnil/chess game, using only its position state.
type notnilBoard struct {
	game *chess.Game
}

func (b *notnilBoard) FEN() string {
	return b.game.Position().String()
}

func (b *notnilBoard) SideToMove() Color {
	if b.game.Position().Turn() == chess.White {
		return White
	}
	return Black
}

func (b *notnilBoard) Push(uciMove string) error {
	move, err := chess.UCINotation{}.Decode(b.game.Position(), uciMove)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", errors.ErrIllegalMove, uciMove, err)
	}
	// Game.Move rejects moves not in the legal move set for the position.
	if err := b.game.Move(move); err != nil {
		return fmt.Errorf("%w: %q: %v", errors.ErrIllegalMove, uciMove, err)
	}
	return nil
}

func (b *notnilBoard) SAN(uciMove string) (string, error) {
	pos := b.game.Position()
	move, err := chess.UCINotation{}.Decode(pos, uciMove)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", errors.ErrIllegalMove, uciMove, err)
	}
	legal := findLegal(pos, move)
	if legal == nil {
		return "", fmt.Errorf("%w: %q is not legal in %s", errors.ErrIllegalMove, uciMove, pos.String())
	}
	return chess.AlgebraicNotation{}.Encode(pos, legal), nil
}

func (b *notnilBoard) UCI(sanMove string) (string, error) {
	pos := b.game.Position()
	move, err := chess.AlgebraicNotation{}.Decode(pos, sanMove)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", errors.ErrIllegalMove, sanMove, err)
	}
	return chess.UCINotation{}.Encode(pos, move), nil
}

// findLegal returns the position's legal move matching the decoded move, or
// nil if there is none. UCINotation.Decode only checks the move's shape: the
// move it returns lacks the check tag, so encoding it directly would drop
// the + and # suffixes from algebraic output. Moves from ValidMoves carry
// the full tag set.
func findLegal(pos *chess.Position, move *chess.Move) *chess.Move {
	for _, valid := range pos.ValidMoves() {
		if valid.S1() == move.S1() && valid.S2() == move.S2() && valid.Promo() == move.Promo() {
			return valid
		}
	}
	return nil
}
