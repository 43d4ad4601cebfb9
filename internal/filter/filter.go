// Package filter selects puzzles by rating and theme and advances each
// retained puzzle past the opponent's first move, so the stored position is
// the one the solver actually faces.
package filter

import (
	"fmt"
	"strconv"
	"strings"

	"puzzlebook/internal/dataset"
	"puzzlebook/internal/errors"
	"puzzlebook/internal/rules"
)

// Criteria holds the active filter settings for one pass.
type Criteria struct {
	MinRating *int   // inclusive lower bound, nil = no bound
	MaxRating *int   // inclusive upper bound, nil = no bound
	Themes    string // whitespace-separated tags, empty = no theme filter
	AllThemes bool   // true = every tag must match, false = any tag suffices
	Limit     int    // result cap, must be positive
}

// Validate rejects criteria the pipeline cannot honor. The result cap is
// required and must be positive; it is never interpreted as "no limit".
func (c Criteria) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: result cap must be a positive integer, got %d",
			errors.ErrInvalidConfig, c.Limit)
	}
	if c.MinRating != nil && c.MaxRating != nil && *c.MinRating > *c.MaxRating {
		return fmt.Errorf("%w: min rating %d exceeds max rating %d",
			errors.ErrInvalidConfig, *c.MinRating, *c.MaxRating)
	}
	return nil
}

// Status classifies what happened to a retained row.
type Status int

const (
	// Ok means the row was advanced one ply.
	Ok Status = iota

	// SkippedInsufficientMoves means the row had fewer than two moves and
	// was retained unmodified: there is no remaining sequence to show as a
	// solution once the first move is stripped.
	SkippedInsufficientMoves
)

// Skip identifies a retained row that could not be advanced.
type Skip struct {
	Row       int // 1-based position within the rows passing rating and theme filters
	MoveCount int // number of moves the row actually had
}

// Result is the output of one filtering pass.
type Result struct {
	Puzzles []dataset.Puzzle
	Skipped []Skip
}

// Apply runs the full filtering pass: rating bounds, theme matching,
// one-ply advancement, and the result cap, in that order. The input slice
// is not modified; retained rows are copied into the result.
//
// A malformed FEN or illegal first move aborts the whole pass: the error is
// returned with row context and no partial result. Rows with fewer than two
// moves are retained unmodified and reported in Result.Skipped.
func Apply(puzzles []dataset.Puzzle, c Criteria, eng rules.Engine) (Result, error) {
	if err := c.Validate(); err != nil {
		return Result{}, err
	}

	tags := strings.Fields(c.Themes)

	var out Result
	for _, p := range puzzles {
		if !matchRating(p.Rating, c.MinRating, c.MaxRating) {
			continue
		}
		if !matchThemes(p.Themes, tags, c.AllThemes) {
			continue
		}

		row := len(out.Puzzles) + 1
		advanced, status, err := advance(p, eng)
		if err != nil {
			return Result{}, &errors.RowError{Err: err, Row: row}
		}
		if status == SkippedInsufficientMoves {
			out.Skipped = append(out.Skipped, Skip{Row: row, MoveCount: len(strings.Fields(p.Moves))})
		}
		out.Puzzles = append(out.Puzzles, advanced)
	}

	// The cap takes a prefix in original order. Skip diagnostics cover the
	// whole pass, including rows beyond the cap, matching the source data
	// quality report a full pass produces.
	if len(out.Puzzles) > c.Limit {
		out.Puzzles = out.Puzzles[:c.Limit]
	}
	return out, nil
}

// matchRating applies the optional inclusive rating bounds. A rating that
// does not parse as an integer is treated as missing: it fails any active
// bound but passes when no bounds are set.
func matchRating(raw string, min, max *int) bool {
	if min == nil && max == nil {
		return true
	}
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if min != nil && rating < *min {
		return false
	}
	if max != nil && rating > *max {
		return false
	}
	return true
}

// matchThemes tests each tag as a substring of the row's Themes field and
// combines the per-tag results with AND (all=true) or OR (all=false).
// An absent Themes field matches no tag.
func matchThemes(themes string, tags []string, all bool) bool {
	if len(tags) == 0 {
		return true
	}
	if all {
		for _, tag := range tags {
			if !strings.Contains(themes, tag) {
				return false
			}
		}
		return true
	}
	for _, tag := range tags {
		if strings.Contains(themes, tag) {
			return true
		}
	}
	return false
}

// advance replays the first move of the puzzle's sequence so that Position
// holds the state after the opponent's move and Moves holds only the
// solver's line. Rows with fewer than two moves come back unchanged.
func advance(p dataset.Puzzle, eng rules.Engine) (dataset.Puzzle, Status, error) {
	moves := strings.Fields(p.Moves)
	if len(moves) < 2 {
		return p, SkippedInsufficientMoves, nil
	}

	board, err := eng.ParsePosition(p.FEN)
	if err != nil {
		return dataset.Puzzle{}, Ok, err
	}
	if err := board.Push(moves[0]); err != nil {
		return dataset.Puzzle{}, Ok, err
	}

	p.FEN = board.FEN()
	p.Moves = strings.Join(moves[1:], " ")
	return p, Ok, nil
}
