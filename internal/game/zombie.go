package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	reevaluateInterval = 0.5 // seconds between unforced move-target picks
	attackDuration     = 0.6 // seconds per attack
	attackHitFraction  = 0.5 // damage lands at this fraction of the attack
	retreatChipDPS     = 8.0 // health per second lost while retreating in daylight
	zombieTurnRate     = 8.0 // radians per second
)

// ZombieState is the behaviour the zombie is running.
type ZombieState uint8

const (
	ZombieChasingPlayer ZombieState = iota
	ZombieWandering
	ZombieAttacking
	ZombieRetreating
	ZombieWaitingForNight
	zombieStateCount
)

func (s ZombieState) String() string {
	switch s {
	case ZombieChasingPlayer:
		return "chasing"
	case ZombieWandering:
		return "wandering"
	case ZombieAttacking:
		return "attacking"
	case ZombieRetreating:
		return "retreating"
	case ZombieWaitingForNight:
		return "waiting"
	default:
		return "unknown"
	}
}

// Zombie is the enemy. It chases the player along the player flow field,
// attacks in melee range and leaves the map along a retreat field by day.
type Zombie struct {
	Body

	state   ZombieState
	facing  float64
	walking bool

	// Chase target: centre of the flow-field tile being walked to.
	hasTarget     bool
	targetTile    GridPos
	target        WorldPos
	retargetTimer float64

	attackTarget  EntityRef
	attackTimer   float64
	attackHitDone bool
	cooldown      float64
}

// NewZombie creates a zombie in the chasing state.
func NewZombie(p WorldPos, health float64) *Zombie {
	return &Zombie{
		Body: Body{Kind: KindZombie, Pos: p, Health: health, MaxHealth: health},
	}
}

func (z *Zombie) Base() *Body { return &z.Body }

// State returns the current behaviour state.
func (z *Zombie) State() ZombieState { return z.state }

// Facing returns the heading in radians.
func (z *Zombie) Facing() float64 { return z.facing }

// Cooldown returns the seconds left before the zombie may attack again.
func (z *Zombie) Cooldown() float64 { return z.cooldown }

func (z *Zombie) setState(lv *Level, s ZombieState) {
	if s == z.state {
		return
	}
	lv.Log.Add(lv.Tick, z.Label(), "state", "change", fmt.Sprintf("%s → %s", z.state, s), 0)
	z.state = s
	z.hasTarget = false
	z.walking = false
	if s != ZombieAttacking {
		z.attackTarget = NoEntity
	}
}

// Update runs one tick of the state machine.
func (z *Zombie) Update(lv *Level, dt float64) {
	if !z.Alive() {
		return
	}
	if z.cooldown > 0 {
		z.cooldown = math.Max(0, z.cooldown-dt)
	}
	z.walking = false
	switch z.state {
	case ZombieChasingPlayer:
		z.updateChasing(lv, dt)
	case ZombieAttacking:
		z.updateAttacking(lv, dt)
	case ZombieRetreating, ZombieWandering:
		// Wandering has no behaviour of its own yet and retreats.
		z.updateRetreating(lv, dt)
	case ZombieWaitingForNight:
	}
}

func (z *Zombie) updateChasing(lv *Level, dt float64) {
	p := lv.Player()
	if p == nil {
		return
	}
	s := lv.Settings()
	cfg := lv.Config
	step := s.ZombieSpeed * dt
	dist := z.Pos.DistanceTo(p.Pos)

	if dist <= s.EngageDistance {
		z.turnToward(z.Pos.AngleTo(p.Pos), dt)
		if z.cooldown <= 0 {
			z.beginAttack(lv, p.ID)
			return
		}
		// Close the gap while cooling down, but never walk into the player.
		contact := 2 * EntityRadius(cfg)
		if dist > contact {
			z.moveTo(lv, moveToward(z.Pos, p.Pos, math.Min(step, dist-contact)), dt, true)
		}
		return
	}

	tile := cfg.WorldToGrid(z.Pos)
	field := lv.PlayerField
	if field != nil && cfg.IsInside(tile) && field.Reached(tile) {
		if next, ok := field.NextTile(tile); ok {
			z.retargetTimer -= dt
			if !z.hasTarget || z.retargetTimer <= 0 || field.Distance(next) < field.Distance(z.targetTile) {
				z.targetTile = next
				z.target = cfg.GridToWorldCentered(next)
				z.hasTarget = true
				z.retargetTimer = reevaluateInterval
			}
			z.moveTo(lv, moveToward(z.Pos, z.target, step), dt, true)
			return
		}
	} else if field != nil && cfg.IsInside(tile) && s.BlockDestruction && z.tryBreach(lv, p) {
		return
	}

	z.hasTarget = false
	z.moveTo(lv, moveToward(z.Pos, p.Pos, step), dt, true)
}

// tryBreach starts an attack on a destructible block between the zombie and
// the player. Used when the player field cannot reach the zombie.
func (z *Zombie) tryBreach(lv *Level, p *Player) bool {
	if z.cooldown > 0 {
		return false
	}
	// Face distance within engage range keeps the block centre inside the
	// attack reach used by updateAttacking.
	hit, ok := Raycast(z.Pos, z.Pos.AngleTo(p.Pos), lv.Settings().EngageDistance, lv.Grid)
	if !ok || hit.Ref == NoEntity {
		return false
	}
	e, ok := lv.Registry.Get(hit.Ref)
	if !ok {
		return false
	}
	b, ok := e.(*Block)
	if !ok || b.Permanent {
		return false
	}
	z.beginAttack(lv, b.ID)
	return true
}

func (z *Zombie) beginAttack(lv *Level, target EntityRef) {
	z.setState(lv, ZombieAttacking)
	z.attackTarget = target
	z.attackTimer = 0
	z.attackHitDone = false
	lv.Notify.PlaySound(SoundZombieAttack)
}

func (z *Zombie) updateAttacking(lv *Level, dt float64) {
	e, ok := lv.Registry.Get(z.attackTarget)
	if !ok || !e.Base().Alive() {
		z.setState(lv, ZombieChasingPlayer)
		return
	}
	tb := e.Base()
	z.turnToward(z.Pos.AngleTo(tb.Pos), dt)
	z.attackTimer += dt

	if !z.attackHitDone && z.attackTimer >= attackDuration*attackHitFraction {
		z.attackHitDone = true
		s := lv.Settings()
		reach := s.EngageDistance
		if tb.Kind == KindBlock {
			reach += float64(lv.Config.TileSize) / 2
		}
		if z.Pos.DistanceTo(tb.Pos) <= reach {
			lv.Stats.ZombieHits++
			lv.Log.Add(lv.Tick, z.Label(), "combat", "hit", tb.Label(), s.AttackDamage)
			e.Damage(lv, s.AttackDamage)
		} else {
			lv.Log.Add(lv.Tick, z.Label(), "combat", "whiff", tb.Label(), 0)
		}
	}

	if z.attackTimer >= attackDuration {
		z.cooldown = lv.Settings().AttackCooldown
		z.setState(lv, ZombieChasingPlayer)
	}
}

func (z *Zombie) updateRetreating(lv *Level, dt float64) {
	cfg := lv.Config
	tile := cfg.WorldToGrid(z.Pos)
	if !cfg.IsInside(tile) {
		z.Pos = lv.randomInteriorPosition()
		lv.Stats.Retreated++
		z.setState(lv, ZombieWaitingForNight)
		return
	}
	if lv.IsDay() {
		z.Damage(lv, retreatChipDPS*dt)
		if !z.Alive() {
			return
		}
	}

	step := lv.Settings().ZombieSpeed * dt
	fields := lv.RetreatFields
	if len(fields) == 0 {
		return
	}
	idx := int(z.ID) % len(fields)
	field := fields[idx]
	edge := Edge(idx % int(edgeCount))

	var target WorldPos
	switch next, ok := field.NextTile(tile); {
	case ok:
		target = cfg.GridToWorldCentered(next)
	case field.Distance(tile) == 0:
		target = cfg.GridToWorldCentered(tile.Add(edge.Outward()))
	default:
		// Walled in from this exit: head straight for the edge.
		out := edge.Outward()
		ts := float64(cfg.TileSize)
		target = WorldPos{X: z.Pos.X + float64(out.DX)*ts, Y: z.Pos.Y + float64(out.DY)*ts}
	}
	z.moveTo(lv, moveToward(z.Pos, target, step), dt, false)
}

// moveTo resolves the desired position against the grid and turns toward
// the direction of travel.
func (z *Zombie) moveTo(lv *Level, desired WorldPos, dt float64, clamp bool) {
	next := ResolveCollision(desired, lv.Grid, lv.Config, clamp)
	if d := z.Pos.DistanceTo(next); d > 1e-6 {
		z.turnToward(z.Pos.AngleTo(next), dt)
		z.walking = true
	}
	z.Pos = next
}

func (z *Zombie) turnToward(heading, dt float64) {
	diff := math.Remainder(heading-z.facing, 2*math.Pi)
	maxTurn := zombieTurnRate * dt
	if math.Abs(diff) <= maxTurn {
		z.facing = heading
		return
	}
	z.facing += math.Copysign(maxTurn, diff)
}

// Damage reduces health; at zero the zombie dies and drops a reward.
func (z *Zombie) Damage(lv *Level, amount float64) {
	if !z.Alive() || amount <= 0 {
		return
	}
	z.Health -= amount
	if z.Health > 0 {
		return
	}
	z.Health = 0
	lv.Stats.Kills++
	lv.Notify.PlaySound(SoundZombieDeath)
	lv.Notify.SpawnEffect(Effect{Kind: EffectDeath, From: z.Pos})
	lv.Registry.Add(NewCollectable(z.Pos, lv.Settings().RewardCoins))
	lv.event(z.Label(), "state", "death", fmt.Sprintf("died while %s", z.state), 0)
	z.Destroy(lv)
}

// Destroy removes the zombie from the level.
func (z *Zombie) Destroy(lv *Level) {
	lv.Registry.Remove(z.ID)
}

// Draw renders the zombie as a green body with arms reaching forward.
func (z *Zombie) Draw(dst *ebiten.Image, cfg GridConfig) {
	if z.state == ZombieWaitingForNight {
		return
	}
	body := color.RGBA{R: 70, G: 140, B: 60, A: 255}
	switch z.state {
	case ZombieAttacking:
		body = color.RGBA{R: 150, G: 160, B: 50, A: 255}
	case ZombieRetreating, ZombieWandering:
		body = color.RGBA{R: 60, G: 100, B: 60, A: 200}
	}
	rf := EntityRadius(cfg)
	r := float32(rf)
	x, y := float32(z.Pos.X), float32(z.Pos.Y)

	reach := 1.1 * rf
	if z.state == ZombieAttacking {
		t := z.attackTimer / attackDuration
		reach += 0.75 * rf * math.Sin(t*math.Pi)
	}
	for _, side := range []float64{-0.45, 0.45} {
		ax := z.Pos.X + math.Cos(z.facing+side)*0.6*rf
		ay := z.Pos.Y + math.Sin(z.facing+side)*0.6*rf
		hx := ax + math.Cos(z.facing)*reach
		hy := ay + math.Sin(z.facing)*reach
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(hx), float32(hy), 3, body, true)
	}
	vector.DrawFilledCircle(dst, x, y, r, body, true)

	if z.Health < z.MaxHealth {
		frac := float32(z.Health / z.MaxHealth)
		vector.FillRect(dst, x-r, y-r-6, 2*r, 3, color.RGBA{R: 60, G: 0, B: 0, A: 200}, false)
		vector.FillRect(dst, x-r, y-r-6, 2*r*frac, 3, color.RGBA{R: 220, G: 40, B: 40, A: 255}, false)
	}
}
