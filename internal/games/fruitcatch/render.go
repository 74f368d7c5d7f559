package fruitcatch

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/fruit-catch/internal/catch"
	"github.com/vovakirdan/fruit-catch/internal/core"
)

// Visual characters for rendering
const (
	LaneChar      = '│'
	CatchLineChar = '┈'
	HeartFull     = '♥'
	HeartEmpty    = '♡'
	basketSprite  = `\___/`
)

// Screen rows reserved around the playfield.
const (
	hudRows    = 2 // HUD line and separator
	footerRows = 3 // Catch line, basket, key hints
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	st := g.engine.State()
	w, h := dst.Width(), dst.Height()

	g.drawHUD(dst, st)

	field := core.NewRect(0, hudRows, w, core.Max(h-hudRows-footerRows, 1))
	lanes := field.SplitColumns(len(catch.Zones))
	catchY := field.Bottom()

	// Lane dividers
	for i := 1; i < len(lanes); i++ {
		dst.DrawVLine(lanes[i].X, field.Y, field.H, LaneChar, core.ColorGray)
	}
	dst.DrawHLine(0, catchY, w, CatchLineChar, core.ColorGray)

	for _, it := range g.engine.Items() {
		lane := lanes[it.Zone]
		y := field.Y + int(it.Progress*float64(field.H))
		y = core.Clamp(y, field.Y, field.Bottom()-1)
		dst.SetColored(lane.CenterX(), y, it.Kind.Rune, kindColor(it.Kind))
	}

	for _, f := range g.flashes {
		lane := lanes[f.zone]
		dst.DrawTextColored(lane.CenterX()-len(f.text)/2, catchY-1, f.text, f.color)
	}

	basket := lanes[st.BasketZone]
	basketColor := core.ColorBrightYellow
	if g.over && g.reason == ReasonBomb {
		basketColor = core.ColorOrange
	}
	dst.DrawTextColored(basket.CenterX()-len(basketSprite)/2, catchY+1, basketSprite, basketColor)

	dst.DrawTextColored(1, h-1, "←/a ↓/s →/d move  P pause  Q quit", core.ColorGray)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.over {
		g.drawCenteredMessage(dst, g.reason.Message(),
			fmt.Sprintf("Score: %d  Level: %d  |  Press R to restart", st.Score, st.Level))
	}
}

// drawHUD renders score, level, time and the remaining misses as hearts.
func (g *Game) drawHUD(dst *core.Screen, st catch.State) {
	hud := fmt.Sprintf(" Score: %d  Level: %d  Time: %ds ", st.Score, st.Level, st.TimeRemaining)
	dst.DrawTextColored(1, 0, hud, core.ColorWhite)

	timeColor := core.ColorGreen
	if st.TimeRemaining <= 10 {
		timeColor = core.ColorRed
	}
	// Recolor the time field.
	if i := strings.Index(hud, "Time:"); i >= 0 {
		dst.DrawTextColored(1+i, 0, hud[i:len(hud)-1], timeColor)
	}

	hearts := []rune(strings.Repeat(string(HeartFull), core.Max(st.MaxMisses-st.MissCount, 0)) +
		strings.Repeat(string(HeartEmpty), core.Max(st.MissCount, 0)))
	x := dst.Width() - len(hearts) - 2
	for i, r := range hearts {
		c := core.ColorRed
		if r == HeartEmpty {
			c = core.ColorGray
		}
		dst.SetColored(x+i, 0, r, c)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorGray)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}

// kindColor picks a terminal color for an item kind.
func kindColor(k catch.ItemKind) core.Color {
	if k.Bomb {
		return core.ColorWhite
	}
	switch k.ID {
	case "apple":
		return core.ColorBrightRed
	case "banana":
		return core.ColorYellow
	case "grape":
		return core.ColorMagenta
	default:
		return core.ColorBrightGreen
	}
}
