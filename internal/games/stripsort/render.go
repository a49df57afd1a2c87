package stripsort

import (
	"fmt"

	"github.com/vovakirdan/oilbox/internal/core"
)

// Render draws one bar per strip, its height and color given by the strip id.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall || dst.Width() < minWidth || dst.Height() < minHeight {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBars(dst)

	if g.paused {
		dst.DrawTextCenteredColored(dst.Height()/2, "  PAUSED  ", core.ColorBrightWhite)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, "STRIPSORT", core.ColorBrightCyan)
	info := fmt.Sprintf("%s  Segments: %d  Steps: %d", g.algo.Title(), len(g.order), g.steps)
	dst.DrawText(12, 0, info)

	h := dst.Height()
	dst.DrawTextColored(1, h-2, g.status, g.statusColor)
	dst.DrawTextColored(1, h-1, "X shuffle  Enter sort/stop  Tab algorithm  Up/Down segments  R reset  Q quit", core.ColorGray)
}

func (g *Game) renderBars(dst *core.Screen) {
	n := len(g.order)
	if n == 0 {
		return
	}
	maxH := dst.Height() - hudRows
	barW := core.Max((dst.Width()-2)/n, 1)
	x0 := (dst.Width() - barW*n) / 2
	bottom := maxH // last bar row, the title sits on row 0

	touched := make(map[int]bool, len(g.touched))
	for _, i := range g.touched {
		touched[i] = true
	}

	for pos, id := range g.order {
		height := core.Max((id+1)*maxH/n, 1)
		color := core.SpectrumAt(id, n)
		if touched[pos] {
			color = core.ColorBrightWhite
		}
		bar := core.NewRect(x0+pos*barW, bottom-height+1, core.Max(barW-1, 1), height)
		dst.DrawRectColored(bar, '█', color)
	}
}
