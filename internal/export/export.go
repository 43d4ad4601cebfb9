// Package export persists a filtered puzzle set as a parquet file, so a
// curated selection can be fed back into other tooling without refiltering
// the full dump.
package export

import (
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"puzzlebook/internal/dataset"
	"puzzlebook/internal/errors"
)

// Record is the parquet row schema for an exported puzzle. Positions and
// moves are stored exactly as filtered: FEN already advanced one ply, the
// move list already stripped of the opponent's first move.
type Record struct {
	PuzzleID string `parquet:"name=puzzle_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	FEN      string `parquet:"name=fen, type=BYTE_ARRAY, convertedtype=UTF8"`
	Moves    string `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8"`
	Rating   string `parquet:"name=rating, type=BYTE_ARRAY, convertedtype=UTF8"`
	Themes   string `parquet:"name=themes, type=BYTE_ARRAY, convertedtype=UTF8"`
	GameURL  string `parquet:"name=game_url, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// Write stores the puzzles at path in parquet format.
func Write(path string, puzzles []dataset.Puzzle) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}

	pw, err := writer.NewParquetWriter(fw, new(Record), 1)
	if err != nil {
		fw.Close() //nolint:errcheck,gosec // G104: cleanup on failure path
		return errors.Wrap(err, "creating parquet writer")
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, p := range puzzles {
		rec := Record{
			PuzzleID: p.ID,
			FEN:      p.FEN,
			Moves:    p.Moves,
			Rating:   p.Rating,
			Themes:   p.Themes,
			GameURL:  p.GameURL,
		}
		if err := pw.Write(rec); err != nil {
			fw.Close() //nolint:errcheck,gosec // G104: cleanup on failure path
			return errors.Wrapf(err, "writing puzzle %s", p.ID)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close() //nolint:errcheck,gosec // G104: cleanup on failure path
		return errors.Wrap(err, "finalizing parquet file")
	}
	return fw.Close()
}
