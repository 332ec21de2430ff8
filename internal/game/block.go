package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Block is a static obstacle occupying one tile. Permanent blocks are level
// geometry and ignore damage; placed blocks can be broken down.
type Block struct {
	Body
	Permanent bool
}

// NewBlock creates a block centred on p.
func NewBlock(p WorldPos, health float64, permanent bool) *Block {
	if permanent {
		health = 1
	}
	return &Block{
		Body:      Body{Kind: KindBlock, Pos: p, Health: health, MaxHealth: health, Static: true},
		Permanent: permanent,
	}
}

func (b *Block) Base() *Body { return &b.Body }

// Update does nothing; blocks only react to damage.
func (b *Block) Update(*Level, float64) {}

// Damage wears the block down and removes it at zero health. The next grid
// rebuild frees its tile.
func (b *Block) Damage(lv *Level, amount float64) {
	if b.Permanent || !b.Alive() || amount <= 0 {
		return
	}
	b.Health -= amount
	if b.Health > 0 {
		return
	}
	b.Health = 0
	lv.Stats.BlocksLost++
	lv.Notify.PlaySound(SoundBlockBroken)
	lv.Notify.SpawnEffect(Effect{Kind: EffectDebris, From: b.Pos})
	tp := lv.Config.WorldToGrid(b.Pos)
	lv.event(b.Label(), "block", "destroyed", fmt.Sprintf("tile (%d,%d)", tp.X, tp.Y), 0)
	b.Destroy(lv)
}

// Destroy removes the block from the level.
func (b *Block) Destroy(lv *Level) {
	lv.Registry.Remove(b.ID)
}

// blockDrawSize leaves a one-pixel gap on each side of the tile.
func blockDrawSize(cfg GridConfig) float32 {
	return float32(cfg.TileSize) - 2
}

// Draw renders the block as a crate, shaded by remaining health.
func (b *Block) Draw(dst *ebiten.Image, cfg GridConfig) {
	size := blockDrawSize(cfg)
	x := float32(b.Pos.X) - size/2
	y := float32(b.Pos.Y) - size/2
	fill := color.RGBA{R: 70, G: 70, B: 78, A: 255}
	if !b.Permanent {
		shade := uint8(60 + 70*b.Health/b.MaxHealth)
		fill = color.RGBA{R: 90 + shade/2, G: 60 + shade/3, B: 30, A: 255}
	}
	vector.FillRect(dst, x, y, size, size, fill, false)
	vector.StrokeRect(dst, x, y, size, size, 1, color.RGBA{R: 20, G: 20, B: 20, A: 255}, false)
	if !b.Permanent {
		vector.StrokeLine(dst, x, y, x+size, y+size, 1, color.RGBA{R: 40, G: 30, B: 20, A: 200}, false)
		vector.StrokeLine(dst, x+size, y, x, y+size, 1, color.RGBA{R: 40, G: 30, B: 20, A: 200}, false)
	}
}
