package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Collectable is a coin dropped by a dead zombie.
type Collectable struct {
	Body
	Value int
	ttl   float64
}

const collectableLifetime = 30.0

// NewCollectable creates a coin drop worth value.
func NewCollectable(p WorldPos, value int) *Collectable {
	return &Collectable{
		Body:  Body{Kind: KindCollectable, Pos: p, Health: 1, MaxHealth: 1},
		Value: value,
		ttl:   collectableLifetime,
	}
}

func (c *Collectable) Base() *Body { return &c.Body }

// Update expires the coin or hands it to a player standing close enough.
func (c *Collectable) Update(lv *Level, dt float64) {
	c.ttl -= dt
	if c.ttl <= 0 {
		c.Destroy(lv)
		return
	}
	p := lv.Player()
	if p == nil || p.Pos.DistanceTo(c.Pos) > lv.Settings().PickupRadius {
		return
	}
	lv.Wallet.Deposit(c.Value)
	lv.Notify.PlaySound(SoundPickup)
	lv.Log.Add(lv.Tick, p.Label(), "pickup", "coin", fmt.Sprintf("+%d → %d", c.Value, lv.Wallet.Coins()), float64(c.Value))
	c.Destroy(lv)
}

// Damage does nothing; coins cannot be shot.
func (c *Collectable) Damage(*Level, float64) {}

// Destroy removes the coin.
func (c *Collectable) Destroy(lv *Level) {
	lv.Registry.Remove(c.ID)
}

// Draw renders a small blinking coin; it blinks faster near expiry.
func (c *Collectable) Draw(dst *ebiten.Image, cfg GridConfig) {
	if c.ttl < 5 && int(c.ttl*6)%2 == 0 {
		return
	}
	r := float32(cfg.TileSize) / 6
	x, y := float32(c.Pos.X), float32(c.Pos.Y)
	vector.DrawFilledCircle(dst, x, y, r, color.RGBA{R: 240, G: 200, B: 40, A: 255}, true)
	vector.StrokeCircle(dst, x, y, r, 1, color.RGBA{R: 150, G: 110, B: 20, A: 255}, true)
}
