package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Command is one tick of player intent.
type Command struct {
	MoveX, MoveY float64 // direction; normalised by the player
	Aim          float64 // radians
	HasAim       bool
	Fire         bool
	Build        bool // place a block on the aimed tile
}

// InputSource produces player commands. The live game reads the keyboard;
// the headless harness uses scripted sources.
type InputSource interface {
	Poll(lv *Level, p *Player) Command
}

// Player is the survivor the zombies hunt.
type Player struct {
	Body

	input     InputSource
	facing    float64
	fireTimer float64
	hurtTimer float64
}

// NewPlayer creates a player. A nil input leaves the player standing still.
func NewPlayer(p WorldPos, health float64, input InputSource) *Player {
	return &Player{
		Body:  Body{Kind: KindPlayer, Pos: p, Health: health, MaxHealth: health},
		input: input,
	}
}

func (p *Player) Base() *Body { return &p.Body }

// Facing returns the aim heading in radians.
func (p *Player) Facing() float64 { return p.facing }

// SetInput swaps the command source.
func (p *Player) SetInput(in InputSource) { p.input = in }

// Update applies one tick of input: movement, aiming, firing and building.
func (p *Player) Update(lv *Level, dt float64) {
	if !p.Alive() {
		return
	}
	s := lv.Settings()
	p.fireTimer = math.Max(0, p.fireTimer-dt)
	p.hurtTimer = math.Max(0, p.hurtTimer-dt)
	if p.input == nil {
		return
	}
	cmd := p.input.Poll(lv, p)

	if l := math.Hypot(cmd.MoveX, cmd.MoveY); l > 1e-9 {
		step := s.PlayerSpeed * dt / l
		desired := WorldPos{X: p.Pos.X + cmd.MoveX*step, Y: p.Pos.Y + cmd.MoveY*step}
		p.Pos = ResolveCollision(desired, lv.Grid, lv.Config, true)
	}
	if cmd.HasAim {
		p.facing = cmd.Aim
	}
	if cmd.Fire && p.fireTimer <= 0 {
		p.fire(lv)
		p.fireTimer = s.FireInterval
	}
	if cmd.Build {
		p.placeBlock(lv)
	}
}

// fire is a hit-scan shot: walls come from the grid raycast, zombies from a
// ray/circle test in front of the wall.
func (p *Player) fire(lv *Level) {
	s := lv.Settings()
	lv.Stats.ShotsFired++
	limit := s.WeaponRange
	if hit, ok := Raycast(p.Pos, p.facing, s.WeaponRange, lv.Grid); ok {
		limit = hit.Distance
	}

	var target *Zombie
	best := limit
	r := EntityRadius(lv.Config)
	for _, z := range lv.Registry.Zombies() {
		if z.State() == ZombieWaitingForNight {
			continue
		}
		if t, ok := rayCircleT(p.Pos, p.facing, z.Pos, r); ok && t <= best {
			best = t
			target = z
		}
	}

	end := RayEnd(p.Pos, p.facing, best)
	lv.Notify.PlaySound(SoundShot)
	lv.Notify.SpawnEffect(Effect{Kind: EffectTracer, From: p.Pos, To: end})
	if target == nil {
		return
	}
	lv.Stats.ShotsHit++
	lv.Notify.SpawnEffect(Effect{Kind: EffectBlood, From: end})
	lv.Log.Add(lv.Tick, p.Label(), "combat", "shot_hit", target.Label(), s.WeaponDamage)
	target.Damage(lv, s.WeaponDamage)
}

// placeBlock buys a block on the tile one step along the aim, if it is free.
func (p *Player) placeBlock(lv *Level) bool {
	cfg := lv.Config
	tp := cfg.WorldToGrid(RayEnd(p.Pos, p.facing, float64(cfg.TileSize)))
	if tp == cfg.WorldToGrid(p.Pos) {
		return false
	}
	t := lv.Grid.At(tp)
	if t == nil || t.State != TileAvailable || t.Ref != NoEntity {
		return false
	}
	if !lv.Wallet.Spend(lv.Settings().BlockCost) {
		return false
	}
	b := lv.AddBlock(tp)
	lv.Stats.BlocksBuilt++
	lv.Notify.PlaySound(SoundBlockPlaced)
	lv.event(b.Label(), "block", "placed", fmt.Sprintf("tile (%d,%d)", tp.X, tp.Y), 0)
	return true
}

// Damage reduces health; at zero the run is over.
func (p *Player) Damage(lv *Level, amount float64) {
	if !p.Alive() || amount <= 0 {
		return
	}
	p.Health -= amount
	p.hurtTimer = 0.2
	lv.Stats.DamageTaken += amount
	lv.Notify.PlaySound(SoundPlayerHurt)
	lv.Notify.SpawnEffect(Effect{Kind: EffectBlood, From: p.Pos})
	if p.Health > 0 {
		return
	}
	p.Health = 0
	lv.GameOver = true
	lv.event(p.Label(), "state", "death", fmt.Sprintf("night %d", lv.Cycle.Night()), 0)
	p.Destroy(lv)
}

// Destroy removes the player from the level.
func (p *Player) Destroy(lv *Level) {
	lv.Registry.Remove(p.ID)
}

// Draw renders the player with an aim line.
func (p *Player) Draw(dst *ebiten.Image, cfg GridConfig) {
	c := color.RGBA{R: 220, G: 200, B: 120, A: 255}
	if p.hurtTimer > 0 {
		c = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	}
	r := EntityRadius(cfg)
	x, y := float32(p.Pos.X), float32(p.Pos.Y)
	aim := RayEnd(p.Pos, p.facing, 1.7*r)
	vector.StrokeLine(dst, x, y, float32(aim.X), float32(aim.Y), 3, color.RGBA{R: 40, G: 40, B: 40, A: 255}, true)
	vector.DrawFilledCircle(dst, x, y, float32(r), c, true)
	vector.StrokeCircle(dst, x, y, float32(r)+1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 160}, true)
}
