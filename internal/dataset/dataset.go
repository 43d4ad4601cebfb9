// Package dataset loads the Lichess puzzle table into memory.
//
// The input is the published puzzle dump: a zstandard-compressed CSV with a
// header row. The loader maps columns by name, so extra columns in the dump
// are ignored and column order does not matter.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"puzzlebook/internal/errors"
)

// Puzzle is one row of the puzzle table. Rating is kept as the raw string;
// coercion to a number happens during filtering, where unparseable values
// get their defined treatment.
type Puzzle struct {
	ID      string // PuzzleId column, empty if the column is absent
	FEN     string
	Rating  string
	Themes  string
	Moves   string
	GameURL string // GameUrl column, empty if the column is absent
}

// requiredColumns must all be present in the header row.
var requiredColumns = []string{"FEN", "Rating", "Themes", "Moves"}

// Load reads the puzzle table from path. Files ending in .zst are
// decompressed as a zstandard stream; anything else is read as plain CSV.
func Load(path string) ([]Puzzle, error) {
	f, err := os.Open(path) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "opening zstd stream %s", path)
		}
		defer dec.Close()
		r = dec
	}

	puzzles, err := Read(r)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	return puzzles, nil
}

// Read parses a CSV puzzle table with a header row into memory.
func Read(r io.Reader) ([]Puzzle, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var puzzles []Puzzle
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		puzzles = append(puzzles, Puzzle{
			ID:      field(record, "PuzzleId"),
			FEN:     field(record, "FEN"),
			Rating:  field(record, "Rating"),
			Themes:  field(record, "Themes"),
			Moves:   field(record, "Moves"),
			GameURL: field(record, "GameUrl"),
		})
	}
	return puzzles, nil
}
