package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

// Visual characters for rendering
const (
	BlockChar = '█'
	GhostChar = '░'
	EmptyChar = '·'
)

// Layout in screen cells. Each board cell is two characters wide so blocks
// look square in a terminal.
const (
	cellW  = 2
	boardW = engine.Width*cellW + 2 // including the frame
	boardH = engine.Height + 2
	hudW   = 20
	gap    = 2
)

func (g *Game) minSize() (w, h int) {
	if g.mode == engine.ModeBattle {
		return boardW*2 + gap, boardH + 2
	}
	return boardW + gap + hudW, boardH + 1
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		w, h := g.minSize()
		g.drawCenteredMessage(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h))
		return
	}

	if g.battle != nil {
		g.renderBattle(dst)
	} else {
		g.renderSingle(dst)
	}

	// Draw overlays
	switch {
	case g.result != nil:
		title := "CPU WINS!"
		if g.result.PlayerWon {
			title = "YOU WIN!"
		}
		g.drawCenteredMessage(dst, title,
			fmt.Sprintf("%d - %d  |  R restart  B menu", g.result.PlayerScore, g.result.CPUScore))
	case g.session.Over():
		g.drawCenteredMessage(dst, "GAME OVER",
			fmt.Sprintf("Score: %d  |  R restart  B menu", g.session.Score()))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) renderSingle(dst *core.Screen) {
	totalW := boardW + gap + hudW
	x0 := (dst.Width() - totalW) / 2
	y0 := (dst.Height() - boardH) / 2

	drawSession(dst, g.session, x0, y0, core.ColorWhite)
	g.renderHUD(dst, x0+boardW+gap, y0)
}

func (g *Game) renderBattle(dst *core.Screen) {
	totalW := boardW*2 + gap
	x0 := (dst.Width() - totalW) / 2
	y0 := (dst.Height()-boardH)/2 + 1

	opp := g.battle.Opponent()
	left := fmt.Sprintf("YOU %d  L%d", g.session.Score(), g.session.Lines())
	right := fmt.Sprintf("CPU %d  L%d", opp.Score(), opp.Lines())
	dst.DrawTextColor(x0+1, y0-1, left, core.ColorBrightGreen)
	dst.DrawTextColor(x0+boardW+gap+1, y0-1, right, core.ColorBrightRed)

	drawSession(dst, g.session, x0, y0, core.ColorWhite)
	drawSession(dst, opp, x0+boardW+gap, y0, core.ColorGray)
}

// renderHUD draws the side panel.
func (g *Game) renderHUD(dst *core.Screen, x, y int) {
	type hudLine struct {
		text  string
		color core.Color
	}

	s := g.session
	lines := []hudLine{
		{g.Title(), core.ColorBrightCyan},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score  %d", s.Score()), core.ColorBrightYellow},
		{fmt.Sprintf("Lines  %d", s.Lines()), core.ColorDefault},
		{fmt.Sprintf("Speed  %dms", s.Interval().Milliseconds()), core.ColorDefault},
		{fmt.Sprintf("Level  %s", g.preset), core.ColorDefault},
	}
	if sp, ok := s.Policy().(*engine.Speed); ok {
		lines = append(lines, hudLine{fmt.Sprintf("Next   %d/%d", sp.Pending(), sp.Threshold), core.ColorDefault})
	}
	for i, l := range lines {
		dst.DrawTextColor(x, y+i, l.text, l.color)
	}

	help := []string{"p  pause", "r  restart", "b  menu", "q  quit"}
	for i, h := range help {
		dst.DrawTextColor(x, y+boardH-len(help)-1+i, h, core.ColorGray)
	}
}

// drawSession draws a framed board with its locked cells, ghost and live piece.
func drawSession(dst *core.Screen, s *engine.Session, x, y int, frame core.Color) {
	dst.DrawBoxColor(core.NewRect(x, y, boardW, boardH), frame)

	board := s.Board()
	for by := 0; by < engine.Height; by++ {
		for bx := 0; bx < engine.Width; bx++ {
			c := board[by][bx]
			if c.Filled {
				drawBlock(dst, x, y, bx, by, BlockChar, c.Color)
			} else {
				dst.SetColor(x+1+bx*cellW+1, y+1+by, EmptyChar, core.ColorGray)
			}
		}
	}

	p := s.Piece()
	if p == nil {
		return
	}
	if gy, ok := s.GhostY(); ok && gy != p.Y {
		ghost := p.Clone()
		ghost.Y = gy
		for _, b := range ghost.Blocks() {
			if b.Y >= 0 && !board[b.Y][b.X].Filled {
				drawBlock(dst, x, y, b.X, b.Y, GhostChar, core.ColorGray)
			}
		}
	}
	for _, b := range p.Blocks() {
		if b.Y >= 0 {
			drawBlock(dst, x, y, b.X, b.Y, BlockChar, p.Color)
		}
	}
}

func drawBlock(dst *core.Screen, x, y, bx, by int, r rune, c core.Color) {
	sx := x + 1 + bx*cellW
	sy := y + 1 + by
	for i := 0; i < cellW; i++ {
		dst.SetColor(sx+i, sy, r, c)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := max(len([]rune(title)), len([]rune(subtitle))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), boxW, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColor(box.X+(boxW-len([]rune(title)))/2, box.Y+1, title, core.ColorBrightYellow)
	dst.DrawText(box.X+(boxW-len([]rune(subtitle)))/2, box.Y+3, subtitle)
}
