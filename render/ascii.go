package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lguibr/asciiring/helpers"

	"github.com/lguibr/fuzzpong/game"
)

const (
	ballRune   = 'O'
	racketRune = '='
	emptyRune  = ' '
)

// Cell is one character of a rasterized frame.
type Cell struct {
	Rune  rune
	Color [3]int
}

// Grid is the character resolution a board is scaled onto.
type Grid struct {
	Cols, Rows int
}

func (g Grid) col(board game.Board, x int) int {
	return scale(x, board.Width, g.Cols)
}

func (g Grid) row(board game.Board, y int) int {
	return scale(y, board.Height, g.Rows)
}

func scale(v, from, to int) int {
	if from <= 0 || to <= 0 {
		return 0
	}
	s := v * to / from
	if s < 0 {
		return 0
	}
	if s >= to {
		return to - 1
	}
	return s
}

// Rasterize draws the rackets and the ball of frame onto a grid. The ball is
// drawn last so it stays visible when it overlaps a racket.
func Rasterize(frame game.Frame, grid Grid) [][]Cell {
	cells := make([][]Cell, grid.Rows)
	for row := range cells {
		cells[row] = make([]Cell, grid.Cols)
		for col := range cells[row] {
			cells[row][col] = Cell{Rune: emptyRune}
		}
	}
	if grid.Rows == 0 || grid.Cols == 0 {
		return cells
	}

	board := frame.Board
	for _, r := range frame.Rackets {
		for row := grid.row(board, r.Y); row <= grid.row(board, r.Y+r.Height-1); row++ {
			for col := grid.col(board, r.X); col <= grid.col(board, r.X+r.Width-1); col++ {
				cells[row][col] = Cell{Rune: racketRune, Color: r.Color}
			}
		}
	}

	ball := frame.Ball
	cells[grid.row(board, ball.CenterY())][grid.col(board, ball.CenterX())] = Cell{Rune: ballRune, Color: ball.Color}
	return cells
}

// rgbToAnsi converts a colour to an ANSI truecolor escape code.
func rgbToAnsi(color [3]int) string {
	return fmt.Sprintf("\033[38;2;%d;%d;%dm", color[0], color[1], color[2])
}

// RenderToASCII renders frame as text. With color set, every non-empty cell
// carries its ANSI colour.
func RenderToASCII(frame game.Frame, grid Grid, color bool) string {
	var ascii strings.Builder
	border := "+" + strings.Repeat("-", grid.Cols) + "+\n"

	ascii.WriteString(border)
	for _, row := range Rasterize(frame, grid) {
		ascii.WriteByte('|')
		for _, cell := range row {
			if color && cell.Rune != emptyRune {
				ascii.WriteString(rgbToAnsi(cell.Color) + string(cell.Rune) + "\033[0m")
			} else {
				ascii.WriteRune(cell.Rune)
			}
		}
		ascii.WriteString("|\n")
	}
	ascii.WriteString(border)
	fmt.Fprintf(&ascii, "tick %d  ball (%d, %d)  v (%.2f, %.2f)\n", frame.Tick, frame.Ball.X, frame.Ball.Y, frame.Ball.Vx, frame.Ball.Vy)
	return ascii.String()
}

// ASCIIRenderer prints every frame to a writer. It reads no input.
type ASCIIRenderer struct {
	out   io.Writer
	grid  Grid
	color bool
	clear func()
}

func NewASCIIRenderer(out io.Writer, grid Grid) *ASCIIRenderer {
	return &ASCIIRenderer{
		out:   out,
		grid:  grid,
		color: true,
		clear: func() { helpers.ClearScreen() },
	}
}

// Run prints frames until the session is over or ctx is cancelled.
func (r *ASCIIRenderer) Run(ctx context.Context, sink *game.FrameSink) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sink.Over():
			return nil
		case frame := <-sink.Frames():
			if r.clear != nil {
				r.clear()
			}
			if _, err := io.WriteString(r.out, RenderToASCII(frame, r.grid, r.color)); err != nil {
				return err
			}
		}
	}
}
