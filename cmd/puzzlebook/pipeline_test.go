package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"puzzlebook/internal/config"
	"puzzlebook/internal/dataset"
	"puzzlebook/internal/filter"
	"puzzlebook/internal/render"
	"puzzlebook/internal/rules"
	"puzzlebook/internal/testutil"
)

const fixtureCSV = `PuzzleId,FEN,Moves,Rating,Themes,GameUrl
p1,rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1,e2e4 e7e5 g1f3,1500,fork endgame,https://lichess.org/p1
p2,rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1,d2d4 d7d5,2400,mate opening,https://lichess.org/p2
p3,rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1,g1f3,1400,fork,https://lichess.org/p3
`

// writeFixture compresses the fixture CSV into a temp .zst dataset.
func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "puzzles.csv.zst")

	f, err := os.Create(path)
	testutil.AssertNoError(t, err)
	enc, err := zstd.NewWriter(f)
	testutil.AssertNoError(t, err)
	_, err = enc.Write([]byte(fixtureCSV))
	testutil.AssertNoError(t, err)
	testutil.AssertNoError(t, enc.Close())
	testutil.AssertNoError(t, f.Close())
	return path
}

func TestPipeline_EndToEnd(t *testing.T) {
	dataFile := writeFixture(t)

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	contents := "min_rating: 1000\nmax_rating: 2000\nthemes: fork\nall_themes: true\nn: 10\ndataset: " +
		dataFile + "\n"
	testutil.AssertNoError(t, os.WriteFile(configFile, []byte(contents), 0o644))

	cfg, err := config.Load(configFile)
	testutil.AssertNoError(t, err)

	puzzles, err := dataset.Load(cfg.Dataset)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(puzzles), 3)

	eng := rules.NewEngine()
	result, err := filter.Apply(puzzles, cfg.Criteria(), eng)
	testutil.AssertNoError(t, err)

	// p2 is excluded by rating and theme; p1 advances, p3 is retained
	// unmodified with a skip diagnostic.
	testutil.AssertEqual(t, len(result.Puzzles), 2)
	testutil.AssertEqual(t, result.Puzzles[0].ID, "p1")
	testutil.AssertEqual(t, result.Puzzles[0].Moves, "e7e5 g1f3")
	testutil.AssertEqual(t, result.Puzzles[1].ID, "p3")
	testutil.AssertEqual(t, result.Puzzles[1].Moves, "g1f3")
	testutil.AssertEqual(t, result.Skipped, []filter.Skip{{Row: 2, MoveCount: 1}})

	var buf bytes.Buffer
	meta := render.Meta{Themes: cfg.Themes, MinRating: cfg.MinRating, MaxRating: cfg.MaxRating}
	testutil.AssertNoError(t, render.NewWriter(&buf, eng).Write(result.Puzzles, meta))

	doc := buf.String()
	testutil.AssertContains(t, doc,
		`\section*{The Lichess Book of 2 Puzzles covering fork theme(s) from 1000 to 2000}`)
	testutil.AssertContains(t, doc, `\textbf{\#1} \blackcircle`)
	testutil.AssertContains(t, doc, `\textbf{\#1} ... e5 Nf3`)
	testutil.AssertContains(t, doc, `\textbf{\#2} Nf3`)
	testutil.AssertContains(t, doc, `\end{document}`)
}

func TestPipeline_CapTakesPrefix(t *testing.T) {
	dataFile := writeFixture(t)

	puzzles, err := dataset.Load(dataFile)
	testutil.AssertNoError(t, err)

	result, err := filter.Apply(puzzles, filter.Criteria{Limit: 1}, rules.NewEngine())
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, len(result.Puzzles), 1)
	testutil.AssertEqual(t, result.Puzzles[0].ID, "p1")
}
