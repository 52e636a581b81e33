package client

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"text/template"

	"blockfall/scoreboard"
	"blockfall/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"
	Grey    = "37"

	resetPos    = "\033[H"  // Reset cursor position to 0,0
	clearScreen = "\033[2J" // Clear the whole screen
	clearLine   = "\033[K"  // Clear from the cursor to the end of the line

	empty = "  "
	ghost = "[]"

	boxWidth  = 38
	boxRow    = 9
	boxCol    = 3
	scoresRow = 2

	// keys 1 to 9 select a pending score.
	maxPending = 9
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Kind]string{
	tetris.I: Cyan,
	tetris.J: Blue,
	tetris.L: Orange,
	tetris.O: Yellow,
	tetris.S: Green,
	tetris.Z: Red,
	tetris.T: Magenta,
}

type templateData struct {
	Game    *tetris.Snapshot
	Name    string
	NoGhost bool
}

type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template
	*templateData

	mu sync.Mutex
}

func newRender(l *slog.Logger, noGhost bool, name string) (*render, error) {
	tmp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{
		writer:   os.Stdout,
		logger:   l,
		template: tmp,
		templateData: &templateData{
			Name:    name,
			NoGhost: noGhost,
		},
	}, nil
}

// game draws a new frame of the running game.
func (r *render) game(s *tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Game = s
	r.frame()
}

// lobby draws the last frame with a message box on top.
func (r *render) lobby(m message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame()
	fmt.Fprint(r.writer, box(m...))
}

// scores draws the saved scores and, below them, the numbered pending ones.
func (r *render) scores(saved, pending []scoreboard.Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frame()
	fmt.Fprint(r.writer, boxAt(scoresRow, scoreLines(saved, pending)...))
}

func (r *render) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templateData.Game = nil
	fmt.Fprint(r.writer, clearScreen)
}

func (r *render) frame() {
	fmt.Fprint(r.writer, resetPos)
	if err := r.template.Execute(r.writer, r.templateData); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"board": board,
		"panel": panel,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	l = strings.ReplaceAll(l, "Blockfall", "\033[1mBlockfall\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(l)
}

func cell(color string) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", color)
}

// board renders every cell of the playfield: locked tiles in grey,
// the active piece in its color and the ghost piece as an outline.
func board(t *templateData) [tetris.Height][tetris.Width]string {
	rendered := [tetris.Height][tetris.Width]string{}
	for y := range rendered {
		for x := range rendered[y] {
			rendered[y][x] = empty
		}
	}
	if t == nil || t.Game == nil {
		return rendered
	}

	for y, row := range t.Game.Board {
		for x, occupied := range row {
			if occupied {
				rendered[y][x] = cell(Grey)
			}
		}
	}
	if !t.NoGhost && !t.Game.GameOver {
		for _, p := range t.Game.Ghost {
			if !t.Game.Board[p.Y][p.X] {
				rendered[p.Y][p.X] = ghost
			}
		}
	}
	for _, p := range t.Game.Active {
		rendered[p.Y][p.X] = cell(colorMap[t.Game.ActiveKind])
	}
	return rendered
}

// nextPiece renders k in two rows of four cells, centered when its box is
// narrower than four.
func nextPiece(k tetris.Kind) []string {
	offsets := k.Offsets(0)
	left := (4 - k.BoxSize()) / 2
	top := offsets[0].Y
	for _, p := range offsets {
		top = min(top, p.Y)
	}
	rows := [2][4]string{}
	for y := range rows {
		for x := range rows[y] {
			rows[y][x] = empty
		}
	}
	for _, p := range offsets {
		rows[p.Y-top][p.X+left] = cell(colorMap[k])
	}
	return []string{strings.Join(rows[0][:], ""), strings.Join(rows[1][:], "")}
}

// panel returns the side panel, one line per row of the board.
func panel(t *templateData) [tetris.Height]string {
	var lines [tetris.Height]string
	lines[0] = "Player: " + t.Name
	if t.Game == nil {
		lines[2] = "Score:  0"
		lines[3] = "Lines:  0"
		lines[4] = "Level:  0"
		lines[7], lines[8] = strings.Repeat(empty, 4), strings.Repeat(empty, 4)
	} else {
		lines[2] = fmt.Sprintf("Score:  %d", t.Game.Score)
		lines[3] = fmt.Sprintf("Lines:  %d", t.Game.LinesCleared)
		lines[4] = fmt.Sprintf("Level:  %d", t.Game.Level)
		next := nextPiece(t.Game.Next)
		lines[7], lines[8] = next[0], next[1]
	}
	lines[6] = "Next:"
	lines[10] = "Statistics:"
	for i, k := range tetris.Kinds {
		n := 0
		if t.Game != nil {
			n = t.Game.Stats[k]
		}
		lines[11+i] = fmt.Sprintf("%s %3d", cell(colorMap[k]), n)
	}
	for i := range lines {
		lines[i] += clearLine
	}
	return lines
}

func scoreLines(saved, pending []scoreboard.Entry) []string {
	lines := []string{"Scoreboard", ""}
	if len(saved) == 0 && len(pending) == 0 {
		lines = append(lines, "no scores yet")
	}
	for i, e := range saved {
		lines = append(lines, scoreLine(fmt.Sprintf("%2d.", i+1), e))
	}
	if len(pending) > 0 {
		lines = append(lines, "", "Unsaved, press a number to drop it")
		for i, e := range pending[:min(len(pending), maxPending)] {
			lines = append(lines, scoreLine(fmt.Sprintf("(%d)", i+1), e))
		}
	}
	return append(lines, "", "press any key")
}

func scoreLine(prefix string, e scoreboard.Entry) string {
	return fmt.Sprintf("%3s %-12.12s %7d %4d", prefix, e.Name, e.Score, e.LinesCleared)
}

// box draws lines centered in a frame over the board.
func box(lines ...string) string { return boxAt(boxRow, lines...) }

// boxAt draws the box with its top border on the given screen row.
func boxAt(row int, lines ...string) string {
	var b strings.Builder
	border := "+" + strings.Repeat("-", boxWidth) + "+"
	fmt.Fprintf(&b, "\033[%d;%dH%s", row, boxCol, border)
	for i, l := range lines {
		if len(l) > boxWidth {
			l = l[:boxWidth]
		}
		left := (boxWidth - len(l)) / 2
		right := boxWidth - len(l) - left
		fmt.Fprintf(&b, "\033[%d;%dH|%s%s%s|", row+1+i, boxCol, strings.Repeat(" ", left), l, strings.Repeat(" ", right))
	}
	fmt.Fprintf(&b, "\033[%d;%dH%s", row+1+len(lines), boxCol, border)
	return b.String()
}

type message []string

const (
	menu   = "(p)lay   (b)oard   (q)uit"
	noSave = "(Q)uit without saving"
)

func defaultLobby() message {
	return message{"Welcome to Blockfall", "", menu, noSave}
}

func gameOver(score int) message {
	return message{"Game Over :)", fmt.Sprintf("score %d", score), "", menu, noSave}
}

func errorMessage() message {
	return message{"something went wrong :(", "", menu, noSave}
}
