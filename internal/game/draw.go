package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	groundColour   = color.RGBA{R: 38, G: 46, B: 34, A: 255}
	gridLineColour = color.RGBA{R: 255, G: 255, B: 255, A: 14}
)

// drawWorld renders the level in world coordinates.
func (g *Game) drawWorld(dst *ebiten.Image) {
	lv := g.level
	cfg := lv.Config
	ww, wh := float32(cfg.WorldWidth()), float32(cfg.WorldHeight())

	vector.FillRect(dst, 0, 0, ww, wh, groundColour, false)
	for _, p := range g.patches {
		vector.FillRect(dst, p.x, p.y, p.w, p.h, color.RGBA{R: 38 + p.shade, G: 46 + p.shade, B: 34, A: 255}, false)
	}
	drawGridOffset(dst, 0, 0, int(ww), int(wh), cfg.TileSize, gridLineColour)

	if g.showGrid {
		g.drawOccupancy(dst)
	}
	if g.showFlow && lv.PlayerField != nil {
		drawFlowArrows(dst, lv.PlayerField, color.RGBA{R: 120, G: 200, B: 255, A: 120})
	}
	if g.retreatView >= 0 && g.retreatView < len(lv.RetreatFields) {
		drawFlowArrows(dst, lv.RetreatFields[g.retreatView], color.RGBA{R: 255, G: 160, B: 80, A: 120})
	}

	// Static first so mobile entities draw on top.
	ents := lv.Registry.Snapshot()
	for _, e := range ents {
		if e.Base().Static {
			e.Draw(dst, cfg)
		}
	}
	for _, e := range ents {
		if !e.Base().Static {
			e.Draw(dst, cfg)
		}
	}
	g.effects.Draw(dst)

	if !lv.IsDay() {
		drawNight(dst, lv, ww, wh)
	}
}

// drawOccupancy tints each tile by its grid state and labels zombie refs.
func (g *Game) drawOccupancy(dst *ebiten.Image) {
	lv := g.level
	cfg := lv.Config
	ts := float32(cfg.TileSize)
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			t := lv.Grid.At(GridPos{X: x, Y: y})
			px, py := float32(x)*ts, float32(y)*ts
			switch {
			case t.State == TileBlocked:
				vector.FillRect(dst, px, py, ts, ts, color.RGBA{R: 200, G: 40, B: 40, A: 50}, false)
			case t.State == TileOccupiedByPlayer:
				vector.FillRect(dst, px, py, ts, ts, color.RGBA{R: 240, G: 220, B: 80, A: 60}, false)
			case t.Ref != NoEntity:
				vector.FillRect(dst, px, py, ts, ts, color.RGBA{R: 80, G: 220, B: 80, A: 40}, false)
				ebitenutil.DebugPrintAt(dst, fmt.Sprint(t.Ref), int(px)+2, int(py)+2)
			}
		}
	}
}

// drawFlowArrows draws one short arrow per reached tile pointing at its
// next tile.
func drawFlowArrows(dst *ebiten.Image, f *FlowField, c color.RGBA) {
	cfg := f.Config()
	arm := float64(cfg.TileSize) * 0.3
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			p := GridPos{X: x, Y: y}
			d := f.Direction(p)
			if d.IsZero() {
				continue
			}
			centre := cfg.GridToWorldCentered(p)
			a := math.Atan2(float64(d.DY), float64(d.DX))
			tip := RayEnd(centre, a, arm)
			tail := RayEnd(centre, a+math.Pi, arm)
			vector.StrokeLine(dst, float32(tail.X), float32(tail.Y), float32(tip.X), float32(tip.Y), 1, c, false)
			for _, side := range []float64{2.5, -2.5} {
				barb := RayEnd(tip, a+side, arm*0.5)
				vector.StrokeLine(dst, float32(tip.X), float32(tip.Y), float32(barb.X), float32(barb.Y), 1, c, false)
			}
		}
	}
}

// drawNight darkens the world and leaves a soft light around the player.
func drawNight(dst *ebiten.Image, lv *Level, ww, wh float32) {
	vector.FillRect(dst, 0, 0, ww, wh, color.RGBA{R: 0, G: 0, B: 20, A: 120}, false)
	if p := lv.Player(); p != nil {
		x, y := float32(p.Pos.X), float32(p.Pos.Y)
		vector.DrawFilledCircle(dst, x, y, 90, color.RGBA{R: 255, G: 240, B: 200, A: 14}, true)
		vector.DrawFilledCircle(dst, x, y, 50, color.RGBA{R: 255, G: 240, B: 200, A: 18}, true)
	}
}

// drawVignette darkens the viewport edges.
func drawVignette(screen *ebiten.Image, offX, offY, w, h int) {
	ox, oy := float32(offX), float32(offY)
	gw, gh := float32(w), float32(h)

	outer := float32(30)
	outerDark := color.RGBA{R: 0, G: 0, B: 0, A: 80}
	vector.FillRect(screen, ox, oy, gw, outer, outerDark, false)
	vector.FillRect(screen, ox, oy+gh-outer, gw, outer, outerDark, false)
	vector.FillRect(screen, ox, oy, outer, gh, outerDark, false)
	vector.FillRect(screen, ox+gw-outer, oy, outer, gh, outerDark, false)

	inner := float32(90)
	innerDark := color.RGBA{R: 0, G: 0, B: 0, A: 30}
	vector.FillRect(screen, ox, oy, gw, inner, innerDark, false)
	vector.FillRect(screen, ox, oy+gh-inner, gw, inner, innerDark, false)
	vector.FillRect(screen, ox, oy, inner, gh, innerDark, false)
	vector.FillRect(screen, ox+gw-inner, oy, inner, gh, innerDark, false)
}

func drawGridOffset(screen *ebiten.Image, offX, offY, w, h, spacing int, c color.Color) {
	if spacing <= 0 {
		return
	}
	ox, oy := float32(offX), float32(offY)
	for x := 0; x <= w; x += spacing {
		xf := ox + float32(x)
		vector.StrokeLine(screen, xf, oy, xf, oy+float32(h), 1.0, c, false)
	}
	for y := 0; y <= h; y += spacing {
		yf := oy + float32(y)
		vector.StrokeLine(screen, ox, yf, ox+float32(w), yf, 1.0, c, false)
	}
}
