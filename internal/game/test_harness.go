package game

import (
	"fmt"
	"math"
	"math/rand"
)

// TestSim is a headless harness around a Level, used by tests and the
// headless report. It has no window and runs with deterministic seeds.
type TestSim struct {
	Level  *Level
	SimLog *SimLog
	Notify *NotifyCounter

	settings    Settings
	seed        int64
	blocked     []GridPos
	layoutRuins int
	playerStart *GridPos
	input       InputSource
	atNight     bool
	notify      []Notifier
	feed        *EventFeed
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra  simOptionKind = iota // settings, seed, geometry, input; applied before the level loads
	simOptEntity                      // zombies, blocks, coins; applied to the loaded level
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the grid dimensions and tile size.
func WithGridSize(w, h, tileSize int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.settings.GridWidth = w
		ts.settings.GridHeight = h
		ts.settings.TileSize = tileSize
	}}
}

// WithSettings edits the settings before the level loads.
func WithSettings(edit func(*Settings)) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { edit(&ts.settings) }}
}

// WithNoSpawns disables the night spawner.
func WithNoSpawns() SimOption {
	return WithSettings(func(s *Settings) { s.MaxZombies = 0 })
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.SimLog = NewSimLog(v) }}
}

// WithBlocked adds permanent level geometry on the given tiles.
func WithBlocked(tiles ...GridPos) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.blocked = append(ts.blocked, tiles...)
	}}
}

// WithWall adds a straight horizontal or vertical wall of permanent blocks
// from (x0,y0) to (x1,y1) inclusive.
func WithWall(x0, y0, x1, y1 int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		dx, dy := sign(x1-x0), sign(y1-y0)
		for x, y := x0, y0; ; x, y = x+dx, y+dy {
			ts.blocked = append(ts.blocked, GridPos{X: x, Y: y})
			if x == x1 && y == y1 {
				break
			}
		}
	}}
}

// WithLayout adds a generated ruined-town layout with up to n ruins.
func WithLayout(n int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.layoutRuins = n }}
}

// WithPlayerAt places the player on tile (x,y).
func WithPlayerAt(x, y int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.playerStart = &GridPos{X: x, Y: y} }}
}

// WithInput drives the player from in.
func WithInput(in InputSource) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.input = in }}
}

// WithNight starts the level at night.
func WithNight() SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.atNight = true }}
}

// WithNotifier adds a notifier alongside the built-in counter.
func WithNotifier(n Notifier) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.notify = append(ts.notify, n) }}
}

// WithFeed mirrors level events into f.
func WithFeed(f *EventFeed) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) { ts.feed = f }}
}

// WithZombie spawns a zombie at the centre of tile (x,y).
func WithZombie(x, y int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.AddZombie(ts.Level.Config.GridToWorldCentered(GridPos{X: x, Y: y}))
	}}
}

// WithBlock places a destructible block on tile (x,y).
func WithBlock(x, y int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.AddBlock(GridPos{X: x, Y: y})
	}}
}

// WithCoins sets the wallet balance.
func WithCoins(n int) SimOption {
	return SimOption{simOptEntity, func(ts *TestSim) {
		ts.Level.Wallet.coins = n
	}}
}

// NewTestSim constructs a TestSim in two ordered passes:
//  1. Infrastructure (settings, seed, geometry, input), then the level loads
//  2. Entities placed into the loaded level
//
// It panics if the options describe an invalid grid, since that is a bug in
// the calling test.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		settings: DefaultSettings(),
		seed:     1,
		SimLog:   NewSimLog(false),
		Notify:   &NotifyCounter{},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	cfg := ts.settings.GridConfig()
	blocked := ts.blocked
	if ts.layoutRuins > 0 {
		start := GridPos{X: cfg.Width / 2, Y: cfg.Height / 2}
		if ts.playerStart != nil {
			start = *ts.playerStart
		}
		rng := rand.New(rand.NewSource(ts.seed)) // #nosec G404 -- test harness
		blocked = append(blocked, GenerateLayout(cfg, rng, start, ts.layoutRuins)...)
	}

	lv, err := NewLevel(LevelOptions{
		Settings:     &StaticSettings{S: ts.settings},
		Blocked:      blocked,
		PlayerStart:  ts.playerStart,
		Input:        ts.input,
		Notify:       append(Notifiers{ts.Notify}, ts.notify...),
		Log:          ts.SimLog,
		Feed:         ts.feed,
		Seed:         ts.seed,
		StartAtNight: ts.atNight,
	})
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	ts.Level = lv

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(ts)
		}
	}
	// Entities added after load must show up in the first tick's grid.
	lv.rebuild()
	return ts
}

// RunTicks advances the simulation n ticks of tickDT each.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Level.Step(tickDT)
	}
}

// RunSeconds advances the simulation by roughly sec seconds.
func (ts *TestSim) RunSeconds(sec float64) {
	ts.RunTicks(int(math.Round(sec / tickDT)))
}

// RunUntil advances until predicate returns true or maxTicks elapse.
// Returns the tick at which the predicate first held, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Level.Step(tickDT)
		if predicate(ts) {
			return ts.Level.Tick
		}
	}
	return -1
}

// Player returns the live player, or nil.
func (ts *TestSim) Player() *Player { return ts.Level.Player() }

// Zombies returns the live zombies in spawn order.
func (ts *TestSim) Zombies() []*Zombie { return ts.Level.Registry.Zombies() }

// Zombie returns the i-th live zombie, or nil.
func (ts *TestSim) Zombie(i int) *Zombie {
	zs := ts.Zombies()
	if i < 0 || i >= len(zs) {
		return nil
	}
	return zs[i]
}

// Tile returns the grid tile under a world position, or nil.
func (ts *TestSim) Tile(p WorldPos) *Tile {
	return ts.Level.Grid.At(ts.Level.Config.WorldToGrid(p))
}

// Report returns the level debug report.
func (ts *TestSim) Report() string { return DebugReport(ts.Level, 0) }

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// InputFunc adapts a function to an InputSource.
type InputFunc func(lv *Level, p *Player) Command

func (f InputFunc) Poll(lv *Level, p *Player) Command { return f(lv, p) }

// HoldInput repeats the same command every tick.
func HoldInput(cmd Command) InputSource {
	return InputFunc(func(*Level, *Player) Command { return cmd })
}

// TurretInput stands still and shoots the nearest active zombie it has a
// clear line to. Used by the headless report as a baseline defender.
type TurretInput struct{}

func (TurretInput) Poll(lv *Level, p *Player) Command {
	var cmd Command
	s := lv.Settings()
	best := math.Inf(1)
	var target *Zombie
	for _, z := range lv.Registry.Zombies() {
		if z.State() == ZombieWaitingForNight {
			continue
		}
		d := p.Pos.DistanceTo(z.Pos)
		if d > s.WeaponRange || d >= best {
			continue
		}
		if hit, ok := Raycast(p.Pos, p.Pos.AngleTo(z.Pos), d, lv.Grid); ok && hit.Distance < d-EntityRadius(lv.Config) {
			continue
		}
		best = d
		target = z
	}
	if target != nil {
		cmd.Aim = p.Pos.AngleTo(target.Pos)
		cmd.HasAim = true
		cmd.Fire = true
	}
	return cmd
}
