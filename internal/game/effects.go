package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var effectLifetimes = [effectKindCount]float64{
	EffectTracer: 0.08,
	EffectBlood:  0.5,
	EffectDeath:  0.7,
	EffectDebris: 0.6,
}

type liveEffect struct {
	Effect
	age float64
}

// EffectLayer keeps short-lived visual effects. It is a Notifier so the
// level can spawn effects without knowing about rendering.
type EffectLayer struct {
	live []liveEffect
}

func (l *EffectLayer) PlaySound(Sound) {}

func (l *EffectLayer) SpawnEffect(e Effect) {
	if e.Kind >= effectKindCount {
		return
	}
	l.live = append(l.live, liveEffect{Effect: e})
}

// Len returns the number of live effects.
func (l *EffectLayer) Len() int { return len(l.live) }

// Update ages effects and drops expired ones.
func (l *EffectLayer) Update(dt float64) {
	kept := l.live[:0]
	for _, e := range l.live {
		e.age += dt
		if e.age < effectLifetimes[e.Kind] {
			kept = append(kept, e)
		}
	}
	l.live = kept
}

// Clear drops every effect.
func (l *EffectLayer) Clear() { l.live = l.live[:0] }

// Draw renders live effects in world coordinates.
func (l *EffectLayer) Draw(dst *ebiten.Image) {
	for _, e := range l.live {
		t := e.age / effectLifetimes[e.Kind]
		fade := uint8(255 * (1 - t))
		x, y := float32(e.From.X), float32(e.From.Y)
		switch e.Kind {
		case EffectTracer:
			vector.StrokeLine(dst, x, y, float32(e.To.X), float32(e.To.Y), 2,
				color.RGBA{R: 255, G: 230, B: 120, A: fade}, true)
		case EffectBlood:
			for i := 0; i < 5; i++ {
				a := float64(i) * 2 * math.Pi / 5
				d := float32(4 + 10*t)
				vector.DrawFilledCircle(dst, x+d*float32(math.Cos(a)), y+d*float32(math.Sin(a)), 2,
					color.RGBA{R: 160, G: 20, B: 20, A: fade}, true)
			}
		case EffectDeath:
			vector.StrokeCircle(dst, x, y, float32(8+20*t), 2, color.RGBA{R: 120, G: 200, B: 90, A: fade}, true)
		case EffectDebris:
			for i := 0; i < 6; i++ {
				a := float64(i)*math.Pi/3 + 0.4
				d := float32(6 + 16*t)
				vector.FillRect(dst, x+d*float32(math.Cos(a))-2, y+d*float32(math.Sin(a))-2, 4, 4,
					color.RGBA{R: 140, G: 100, B: 60, A: fade}, false)
			}
		}
	}
}
