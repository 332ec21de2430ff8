package game

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	uiFontOnce   sync.Once
	uiFontSource *text.GoTextFaceSource
)

func uiFace(size float64) *text.GoTextFace {
	uiFontOnce.Do(func() {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("hud: loading font: %v", err)
			return
		}
		uiFontSource = src
	})
	if uiFontSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: uiFontSource, Size: size}
}

// drawText draws s with its top-left corner at (x, y). Falls back to the
// debug font if the UI font failed to load.
func drawText(dst *ebiten.Image, s string, x, y int, size float64, c color.Color) {
	face := uiFace(size)
	if face == nil {
		ebitenutil.DebugPrintAt(dst, s, x, y)
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, face, op)
}

// drawHUD renders the status panel in the top-left of the viewport and the
// key legend along the bottom.
func (g *Game) drawHUD(screen *ebiten.Image) {
	lv := g.level
	s := lv.Settings()
	ox, oy := g.offX, g.offY

	hp, maxHP := 0.0, s.PlayerHealth
	if p := lv.Player(); p != nil {
		hp, maxHP = p.Health, p.MaxHealth
	}

	vector.FillRect(screen, float32(ox+6), float32(oy+6), 230, 86, color.RGBA{R: 6, G: 10, B: 6, A: 200}, false)
	vector.StrokeRect(screen, float32(ox+6), float32(oy+6), 230, 86, 1, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	// Health bar.
	frac := float32(0)
	if maxHP > 0 {
		frac = float32(hp / maxHP)
	}
	vector.FillRect(screen, float32(ox+14), float32(oy+14), 150, 10, color.RGBA{R: 60, G: 0, B: 0, A: 255}, false)
	vector.FillRect(screen, float32(ox+14), float32(oy+14), 150*frac, 10, color.RGBA{R: 220, G: 50, B: 50, A: 255}, false)
	drawText(screen, fmt.Sprintf("%.0f", hp), ox+172, oy+10, 13, color.White)

	phase := fmt.Sprintf("%s %d  %.0fs", lv.Cycle.Phase(), lv.Cycle.Night(), lv.Cycle.Remaining(s))
	phaseCol := color.RGBA{R: 240, G: 220, B: 120, A: 255}
	if !lv.IsDay() {
		phaseCol = color.RGBA{R: 140, G: 160, B: 255, A: 255}
	}
	drawText(screen, phase, ox+14, oy+30, 14, phaseCol)
	drawText(screen, fmt.Sprintf("coins %d  (block %d)", lv.Wallet.Coins(), s.BlockCost), ox+14, oy+50, 13, color.RGBA{R: 240, G: 200, B: 40, A: 255})
	drawText(screen, fmt.Sprintf("zombies %d  kills %d", lv.Registry.CountKind(KindZombie), lv.Stats.Kills), ox+14, oy+68, 13, color.White)

	if g.showHelp {
		speed := "1x"
		switch {
		case g.simSpeed == 0:
			speed = "PAUSED"
		case g.simSpeed != 1:
			speed = fmt.Sprintf("%gx", g.simSpeed)
		}
		legend := fmt.Sprintf("WASD move  LMB fire  RMB/B block  | P pause ,/. speed [%s]  G grid  F flow  R retreat  N night  M mute  C copy report  H help", speed)
		drawText(screen, legend, ox+8, oy+g.viewH-20, 12, color.RGBA{R: 200, G: 210, B: 200, A: 220})
	}

	if g.statusTimer > 0 {
		drawText(screen, g.status, ox+g.viewW/2-120, oy+12, 14, color.RGBA{R: 255, G: 255, B: 180, A: 255})
	}

	if lv.GameOver {
		cx, cy := ox+g.viewW/2, oy+g.viewH/2
		vector.FillRect(screen, float32(cx-190), float32(cy-40), 380, 80, color.RGBA{R: 0, G: 0, B: 0, A: 200}, false)
		drawText(screen, "YOU DID NOT SEE THE DAWN", cx-150, cy-28, 22, color.RGBA{R: 220, G: 60, B: 60, A: 255})
		drawText(screen, fmt.Sprintf("survived %d night(s), %d kills - Enter to restart", lv.Cycle.Night(), lv.Stats.Kills), cx-170, cy+6, 13, color.White)
	}
}
