// puzzlebook filters the Lichess puzzle dump by rating and theme and renders
// the selection as a printable LaTeX document of diagrams and solutions.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"puzzlebook/internal/config"
	"puzzlebook/internal/dataset"
	"puzzlebook/internal/export"
	"puzzlebook/internal/filter"
	"puzzlebook/internal/render"
	"puzzlebook/internal/rules"
)

const programVersion = "0.1.0"

var (
	configPath = flag.String("config", "config.yaml", "path to the YAML configuration file")
	dataPath   = flag.String("data", "", "puzzle dataset path (overrides config)")
	outputPath = flag.String("o", "", "output document path (overrides config)")
	quiet      = flag.Bool("quiet", false, "only log warnings and errors")
	version    = flag.Bool("version", false, "print version and exit")
)

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("puzzlebook version %s\n", programVersion)
		os.Exit(0)
	}

	log := setupLogger(*quiet)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("loading configuration")
	}
	if *dataPath != "" {
		cfg.Dataset = *dataPath
	}
	if *outputPath != "" {
		cfg.Output = *outputPath
	}

	puzzles, err := dataset.Load(cfg.Dataset)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Dataset).Msg("loading dataset")
	}
	log.Info().Int("rows", len(puzzles)).Str("path", cfg.Dataset).Msg("dataset loaded")

	eng := rules.NewEngine()

	result, err := filter.Apply(puzzles, cfg.Criteria(), eng)
	if err != nil {
		log.Fatal().Err(err).Msg("filtering puzzles")
	}
	for _, skip := range result.Skipped {
		log.Warn().
			Int("row", skip.Row).
			Int("moves", skip.MoveCount).
			Msg("skipping row: insufficient moves")
	}
	log.Info().
		Int("matched", len(result.Puzzles)).
		Int("skipped", len(result.Skipped)).
		Msg("filtering complete")

	if err := writeDocument(cfg, result.Puzzles, eng); err != nil {
		log.Fatal().Err(err).Str("path", cfg.Output).Msg("writing document")
	}
	log.Info().Str("path", cfg.Output).Msg("document written")

	if cfg.Export != "" {
		if err := export.Write(cfg.Export, result.Puzzles); err != nil {
			log.Fatal().Err(err).Str("path", cfg.Export).Msg("exporting filtered puzzles")
		}
		log.Info().Str("path", cfg.Export).Msg("filtered puzzles exported")
	}
}

// writeDocument renders the LaTeX source for the filtered puzzles to the
// configured output file.
func writeDocument(cfg *config.Config, puzzles []dataset.Puzzle, eng rules.Engine) error {
	out, err := os.Create(cfg.Output)
	if err != nil {
		return err
	}

	meta := render.Meta{
		Themes:    cfg.Themes,
		MinRating: cfg.MinRating,
		MaxRating: cfg.MaxRating,
	}
	if err := render.NewWriter(out, eng).Write(puzzles, meta); err != nil {
		out.Close() //nolint:errcheck,gosec // G104: cleanup on failure path
		return err
	}
	return out.Close()
}

func setupLogger(quiet bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: puzzlebook [options]\n\n")
	fmt.Fprintf(os.Stderr, "Renders a filtered set of Lichess puzzles as a LaTeX document.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
