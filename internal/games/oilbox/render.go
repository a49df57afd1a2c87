package oilbox

import (
	"fmt"

	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox/maze"
)

const scorePanelWidth = 26

// Render draws the maze, the box, the hint and the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || g.grid == nil {
		g.renderTooSmall(dst)
		return
	}

	boardW := g.grid.Cols() * cellWidth
	withPanel := dst.Width() >= boardW+2+scorePanelWidth

	boardX := (dst.Width() - boardW) / 2
	if withPanel {
		boardX = (dst.Width() - boardW - 2 - scorePanelWidth) / 2
	}
	boardX = core.Max(boardX, 0)
	boardY := 1

	g.renderHUD(dst, boardX, boardY)
	g.renderBoard(dst, boardX, boardY)
	g.renderHint(dst, boardX, boardY)
	g.renderPlayer(dst, boardX, boardY)
	if withPanel {
		g.renderScores(dst, boardX+boardW+2, boardY)
	}
	g.renderOverlay(dst, boardX, boardY, boardW)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen, x, boardY int) {
	dst.DrawTextColored(x, 0, "OILBOX", core.ColorOrange)
	info := fmt.Sprintf("Streak: %d  Best: %d  Map #%d", g.streak, g.scores.Best(), g.maps)
	dst.DrawText(x+8, 0, info)

	statusY := boardY + g.grid.Rows()
	switch {
	case !g.solvable:
		dst.DrawTextColored(x, statusY, "No solvable maze found. T for a new one", core.ColorRed)
	case len(g.hint) > 0:
		dst.DrawTextColored(x, statusY, fmt.Sprintf("Hint: %d moves, streak forfeited", len(g.hint)), core.ColorBrightYellow)
	case g.hintUsed:
		dst.DrawTextColored(x, statusY, "Hint used: this maze does not count", core.ColorGray)
	}

	dst.DrawTextColored(x, statusY+1, "arrows/WASD slide  R retry  T new map  HH hint  P pause  Q quit", core.ColorGray)
}

func (g *Game) renderBoard(dst *core.Screen, x0, y0 int) {
	for r := 0; r < g.grid.Rows(); r++ {
		for c := 0; c < g.grid.Cols(); c++ {
			x := x0 + c*cellWidth
			y := y0 + r
			switch g.grid.At(maze.At(r, c)) {
			case maze.Wall:
				dst.DrawTextColored(x, y, "██", core.ColorGray)
			case maze.Start:
				dst.DrawTextColored(x, y, "··", core.ColorGray)
			case maze.Goal:
				dst.DrawTextColored(x, y, "<>", core.ColorBrightGreen)
			}
		}
	}
}

func (g *Game) renderHint(dst *core.Screen, x0, y0 int) {
	for i, c := range g.hint {
		label := fmt.Sprintf("%2d", i+1)
		if i+1 > 99 {
			label = "**"
		}
		dst.DrawTextColored(x0+c.Col*cellWidth, y0+c.Row, label, core.ColorBrightYellow)
	}
}

func (g *Game) renderPlayer(dst *core.Screen, x0, y0 int) {
	tile := g.cfg.Board.TileSize
	// Two screen columns per tile give half-cell horizontal steps while sliding.
	x := x0 + g.player.Pos.X*cellWidth/tile
	y := y0 + (g.player.Pos.Y+tile/2)/tile
	dst.DrawTextColored(x, y, "[]", core.ColorOrange)
}

func (g *Game) renderScores(dst *core.Screen, x, y int) {
	dst.DrawTextColored(x, y, "TOP 10", core.ColorBrightWhite)
	records := g.scores.List()
	if len(records) == 0 {
		dst.DrawTextColored(x, y+2, "No records yet", core.ColorGray)
		return
	}
	for i, r := range records {
		line := fmt.Sprintf("%2d. %3d clears %s", i+1, r.Score, r.Date)
		dst.DrawText(x, y+2+i, line)
	}
}

func (g *Game) renderOverlay(dst *core.Screen, boardX, boardY, boardW int) {
	var msg string
	color := core.ColorBrightGreen
	switch {
	case g.paused:
		msg, color = "PAUSED", core.ColorBrightWhite
	case g.state == StateCleared && g.hintUsed:
		msg, color = "Cleared with a hint, no credit", core.ColorYellow
	case g.state == StateCleared:
		msg = fmt.Sprintf("Cleared! (#%d)", g.streak)
	default:
		return
	}

	text := "  " + msg + "  "
	x := boardX + (boardW-len([]rune(text)))/2
	y := boardY + g.grid.Rows()/2
	dst.DrawTextColored(x, y, text, color)
}
