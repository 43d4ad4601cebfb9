// Package render produces the printable LaTeX puzzle book: a grid of board
// diagrams followed by a two-column solution list in algebraic notation.
package render

import (
	"io"
	"strconv"
	"text/template"

	"puzzlebook/internal/dataset"
	"puzzlebook/internal/errors"
	"puzzlebook/internal/rules"
	"puzzlebook/internal/translate"
)

// TurnIndicator returns the diagram caption symbol for the side to move.
func TurnIndicator(side rules.Color) string {
	if side == rules.White {
		return `\whitecircle`
	}
	return `\blackcircle`
}

// SolutionPrefix returns the prefix for a solution line: an ellipsis when
// the second player is to move, nothing otherwise.
func SolutionPrefix(side rules.Color) string {
	if side == rules.White {
		return ""
	}
	return "... "
}

// Meta describes the filter settings named on the title page.
type Meta struct {
	Themes    string
	MinRating *int
	MaxRating *int
}

// Writer renders filtered puzzles as a LaTeX document.
type Writer struct {
	w   io.Writer
	eng rules.Engine
}

// NewWriter creates a Writer that emits LaTeX source to w, using eng to
// derive turn indicators and algebraic solutions.
func NewWriter(w io.Writer, eng rules.Engine) *Writer {
	return &Writer{w: w, eng: eng}
}

type diagram struct {
	Number     int
	Indicator  string
	FEN        string
	LeftColumn bool // odd-numbered diagrams open a two-diagram row
	PageBreak  bool // set after every sixth diagram
}

type solution struct {
	Number int
	Prefix string
	Moves  string
}

type bookData struct {
	Count     int
	Themes    string
	MinRating string
	MaxRating string
	Diagrams  []diagram
	Solutions []solution
}

// Write renders the document for the given puzzles. Puzzle positions are
// expected to already be advanced past the opponent's first move; the
// solution line for each puzzle is its remaining move sequence translated
// to algebraic notation.
func (bw *Writer) Write(puzzles []dataset.Puzzle, meta Meta) error {
	data := bookData{
		Count:     len(puzzles),
		Themes:    themesLabel(meta.Themes),
		MinRating: ratingLabel(meta.MinRating),
		MaxRating: ratingLabel(meta.MaxRating),
	}

	for i, p := range puzzles {
		number := i + 1

		board, err := bw.eng.ParsePosition(p.FEN)
		if err != nil {
			return &errors.RowError{Err: err, Row: number}
		}
		side := board.SideToMove()

		data.Diagrams = append(data.Diagrams, diagram{
			Number:     number,
			Indicator:  TurnIndicator(side),
			FEN:        p.FEN,
			LeftColumn: number%2 == 1,
			PageBreak:  number%6 == 0,
		})

		moves, err := translate.Moves(bw.eng, p.FEN, p.Moves)
		if err != nil {
			return errors.Wrapf(err, "translating solution for puzzle %d", number)
		}
		data.Solutions = append(data.Solutions, solution{
			Number: number,
			Prefix: SolutionPrefix(side),
			Moves:  moves,
		})
	}

	return bookTemplate.Execute(bw.w, data)
}

// ratingLabel formats an optional rating bound for the title line.
func ratingLabel(r *int) string {
	if r == nil {
		return "any"
	}
	return strconv.Itoa(*r)
}

// themesLabel names the theme selection on the title line.
func themesLabel(themes string) string {
	if themes == "" {
		return "all"
	}
	return themes
}

var bookTemplate = template.Must(template.New("book").Parse(`\documentclass{article}
\usepackage{skak}
\usepackage{graphicx}
\usepackage[margin=1.5cm, a4paper]{geometry}
\usepackage{multicol}
\usepackage{tikz}

% Define the scaling factor
\newcommand{\chessScaleFactor}{0.7}
\newcommand{\NumberDiagramSpace}{\vspace{0.2cm}}
\newcommand{\whitecircle}{\tikz\draw[black,fill=white] (0,0) circle (3pt);}
\newcommand{\blackcircle}{\tikz\draw[black,fill=black] (0,0) circle (3pt);}

\begin{document}

{\centering \section*{The Lichess Book of {{.Count}} Puzzles covering {{.Themes}} theme(s) from {{.MinRating}} to {{.MaxRating}}}}

\vspace{1cm}
{{range .Diagrams}}{{if .LeftColumn}}
\noindent
{{end}}\parbox[t]{0.48\textwidth}{%
\centering
\textbf{\#{{.Number}}} {{.Indicator}}\\
\NumberDiagramSpace
\resizebox{\chessScaleFactor\linewidth}{!}{%
\newgame
\fenboard{ {{- .FEN -}} }
\showboard
}
}{{if .LeftColumn}}\hfill{{end}}{{if .PageBreak}}
\vspace{1cm}
\newpage
{{else if not .LeftColumn}}
\vfill
{{end}}{{end}}
\newpage
\begin{multicols}{2}
{{range .Solutions}}\textbf{\#{{.Number}}} {{.Prefix}}{{.Moves}}\\

{{end}}\end{multicols}
\end{document}
`))
