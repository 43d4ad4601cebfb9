// Package translate renders coordinate move sequences in standard algebraic
// notation by replaying them against the board one move at a time.
package translate

import (
	"strings"

	"puzzlebook/internal/errors"
	"puzzlebook/internal/rules"
)

// Moves converts a space-separated coordinate move sequence, starting from
// fen, into standard algebraic notation. Each move is rendered against the
// position it is played from, so disambiguation and check/mate suffixes are
// correct, then applied before the next move is processed.
//
// An empty sequence yields an empty string. An illegal or malformed move is
// a hard failure: the error carries the offending ply and move text, and no
// partial output is returned.
func Moves(eng rules.Engine, fen, moves string) (string, error) {
	fields := strings.Fields(moves)
	if len(fields) == 0 {
		return "", nil
	}

	board, err := eng.ParsePosition(fen)
	if err != nil {
		return "", err
	}

	san := make([]string, 0, len(fields))
	for i, move := range fields {
		s, err := board.SAN(move)
		if err != nil {
			return "", &errors.RowError{Err: err, Ply: i + 1, MoveText: move}
		}
		san = append(san, s)

		if err := board.Push(move); err != nil {
			return "", &errors.RowError{Err: err, Ply: i + 1, MoveText: move}
		}
	}
	return strings.Join(san, " "), nil
}
