package render

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lguibr/fuzzpong/game"
)

// TerminalRenderer draws frames on a tcell screen and turns arrow keys into
// key snapshots. The caller owns the screen's Init and Fini.
type TerminalRenderer struct {
	screen tcell.Screen
	quit   chan struct{}
}

func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	return &TerminalRenderer{
		screen: screen,
		quit:   make(chan struct{}),
	}
}

// Run draws frames and forwards key snapshots to onKeys until the user
// quits, the session is over, or ctx is cancelled.
func (r *TerminalRenderer) Run(ctx context.Context, sink *game.FrameSink, onKeys func(game.KeyState)) error {
	go r.handleInput(onKeys)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.quit:
			return nil
		case <-sink.Over():
			return nil
		case frame := <-sink.Frames():
			r.Draw(frame)
		}
	}
}

// handleInput polls tcell for events. PollEvent returns nil once the screen
// is finalized.
func (r *TerminalRenderer) handleInput(onKeys func(game.KeyState)) {
	for {
		ev := r.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			r.screen.Sync()
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC,
				ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				close(r.quit)
				return
			case ev.Key() == tcell.KeyLeft:
				onKeys(game.KeyState{Left: true})
			case ev.Key() == tcell.KeyRight:
				onKeys(game.KeyState{Right: true})
			}
		}
	}
}

// Draw renders one frame, leaving the last screen row for a status line.
func (r *TerminalRenderer) Draw(frame game.Frame) {
	r.screen.Clear()
	width, height := r.screen.Size()
	if height < 2 || width < 1 {
		r.screen.Show()
		return
	}

	grid := Grid{Cols: width, Rows: height - 1}
	for row, cells := range Rasterize(frame, grid) {
		for col, cell := range cells {
			if cell.Rune == emptyRune {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(cell.Color[0]), int32(cell.Color[1]), int32(cell.Color[2])))
			r.screen.SetContent(col, row, cell.Rune, nil, style)
		}
	}

	status := fmt.Sprintf("tick %d  speed %.2f  <-/-> move  q quit", frame.Tick, frame.Ball.Speed())
	drawText(r.screen, 0, height-1, width, status, tcell.StyleDefault.Reverse(true))
	r.screen.Show()
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		if i >= maxWidth {
			return
		}
		s.SetContent(x+i, y, ch, nil, style)
	}
}
