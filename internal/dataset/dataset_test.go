package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"

	"puzzlebook/internal/errors"
	"puzzlebook/internal/testutil"
)

const sampleCSV = `PuzzleId,FEN,Moves,Rating,RatingDeviation,Popularity,NbPlays,Themes,GameUrl
00sHx,q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B2P4/P1P1K1PP/8 b k - 0 17,e8d7 a2e6 d7d8 f7f8,1760,80,83,72,mate mateIn2 middlegame short,https://lichess.org/yyznGmXs/black#34
00sJ9,r3r1k1/p4ppp/2p2n2/1p6/3P1qb1/2NQR3/PPB2PP1/R1B3K1 w - - 5 18,e3g3 e8e1 g1h2 e1c1,2671,105,87,325,crushing hangingPiece long middlegame,https://lichess.org/gyFeQsOE#35
`

func TestRead(t *testing.T) {
	puzzles, err := Read(strings.NewReader(sampleCSV))
	testutil.AssertNoError(t, err)

	want := []Puzzle{
		{
			ID:      "00sHx",
			FEN:     "q3k1nr/1pp1nQpp/3p4/1P2p3/4P3/B2P4/P1P1K1PP/8 b k - 0 17",
			Rating:  "1760",
			Themes:  "mate mateIn2 middlegame short",
			Moves:   "e8d7 a2e6 d7d8 f7f8",
			GameURL: "https://lichess.org/yyznGmXs/black#34",
		},
		{
			ID:      "00sJ9",
			FEN:     "r3r1k1/p4ppp/2p2n2/1p6/3P1qb1/2NQR3/PPB2PP1/R1B3K1 w - - 5 18",
			Rating:  "2671",
			Themes:  "crushing hangingPiece long middlegame",
			Moves:   "e3g3 e8e1 g1h2 e1c1",
			GameURL: "https://lichess.org/gyFeQsOE#35",
		},
	}
	testutil.AssertEqual(t, puzzles, want)
}

func TestRead_ColumnOrderIndependent(t *testing.T) {
	csvData := "Moves,Themes,Rating,FEN\ne2e4 e7e5,fork,1500," + startFEN + "\n"

	puzzles, err := Read(strings.NewReader(csvData))
	testutil.AssertNoError(t, err)

	want := []Puzzle{{FEN: startFEN, Rating: "1500", Themes: "fork", Moves: "e2e4 e7e5"}}
	testutil.AssertEqual(t, puzzles, want)
}

func TestRead_MissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"no FEN", "PuzzleId,Moves,Rating,Themes"},
		{"no Rating", "FEN,Moves,Themes"},
		{"no Themes", "FEN,Moves,Rating"},
		{"no Moves", "FEN,Rating,Themes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.header + "\n"))
			testutil.AssertErrorIs(t, err, errors.ErrMissingColumn)
		})
	}
}

func TestRead_EmptyTable(t *testing.T) {
	puzzles, err := Read(strings.NewReader("FEN,Moves,Rating,Themes\n"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(puzzles), 0)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	testutil.AssertError(t, err)
}

func TestLoad_Zstd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.csv.zst")

	f, err := os.Create(path)
	testutil.AssertNoError(t, err)
	enc, err := zstd.NewWriter(f)
	testutil.AssertNoError(t, err)
	_, err = enc.Write([]byte(sampleCSV))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, enc.Close())
	testutil.AssertNoError(t, f.Close())

	puzzles, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(puzzles), 2)
	testutil.AssertEqual(t, puzzles[0].ID, "00sHx")
}

func TestLoad_PlainCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "puzzles.csv")
	testutil.AssertNoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	puzzles, err := Load(path)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(puzzles), 2)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv.zst"))
	testutil.AssertError(t, err)
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
