package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Wallet is the level's currency sink.
type Wallet struct {
	coins int
}

// Coins returns the current balance.
func (w *Wallet) Coins() int { return w.coins }

// Deposit adds n coins; non-positive amounts are ignored.
func (w *Wallet) Deposit(n int) {
	if n > 0 {
		w.coins += n
	}
}

// Spend removes n coins if the balance allows it.
func (w *Wallet) Spend(n int) bool {
	if n < 0 || w.coins < n {
		return false
	}
	w.coins -= n
	return true
}

// LevelStats are running counters for reports and the HUD.
type LevelStats struct {
	Spawned     int
	Kills       int
	Retreated   int
	BlocksLost  int
	BlocksBuilt int
	ShotsFired  int
	ShotsHit    int
	DamageTaken float64
	ZombieHits  int
}

// LevelOptions configures NewLevel. Zero values pick defaults.
type LevelOptions struct {
	Settings     SettingsProvider
	Blocked      []GridPos // static level geometry
	PlayerStart  *GridPos  // defaults to the grid centre
	Input        InputSource
	Notify       Notifier
	Log          *SimLog
	Feed         *EventFeed
	Seed         int64
	StartAtNight bool
}

// Level is the explicit context every core operation receives: layout,
// tunables, registry, the per-tick grid and flow fields, and collaborators.
// It is driven from a single goroutine.
type Level struct {
	SessionID string
	Config    GridConfig
	Registry  *Registry
	Grid      *Grid

	PlayerField   *FlowField
	RetreatFields []*FlowField

	Cycle   *DayNightCycle
	Spawner *Spawner
	Wallet  *Wallet
	Stats   LevelStats
	Notify  Notifier
	Log     *SimLog
	Feed    *EventFeed
	Rng     *rand.Rand

	Tick     int
	Time     float64
	GameOver bool

	settings SettingsProvider
	player   EntityRef

	// Retreat fields are cached against the static layout and the player
	// tile, the only non-static occupant that blocks a tile.
	retreatVersion    int
	retreatPlayerTile GridPos
}

// NewLevel loads a level. It fails only when the settings describe an
// invalid grid.
func NewLevel(opts LevelOptions) (*Level, error) {
	if opts.Settings == nil {
		opts.Settings = &StaticSettings{S: DefaultSettings()}
	}
	s := opts.Settings.Settings()
	cfg, err := NewGridConfig(s.TileSize, s.GridWidth, s.GridHeight)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	if opts.Notify == nil {
		opts.Notify = NopNotifier{}
	}
	if opts.Log == nil {
		opts.Log = NewSimLog(false)
	}

	lv := &Level{
		SessionID:      uuid.NewString(),
		Config:         cfg,
		Registry:       NewRegistry(),
		Cycle:          NewDayNightCycle(opts.StartAtNight),
		Spawner:        &Spawner{},
		Wallet:         &Wallet{coins: s.StartCoins},
		Notify:         opts.Notify,
		Log:            opts.Log,
		Feed:           opts.Feed,
		Rng:            rand.New(rand.NewSource(opts.Seed)), // #nosec G404 -- gameplay only
		settings:       opts.Settings,
		retreatVersion: -1,
	}

	for _, p := range opts.Blocked {
		if cfg.IsInside(p) {
			lv.Registry.Add(NewBlock(cfg.GridToWorldCentered(p), 0, true))
		}
	}

	start := GridPos{X: cfg.Width / 2, Y: cfg.Height / 2}
	if opts.PlayerStart != nil {
		start = *opts.PlayerStart
	}
	pl := NewPlayer(cfg.GridToWorldCentered(start), s.PlayerHealth, opts.Input)
	lv.player = lv.Registry.Add(pl)

	lv.rebuild()
	lv.event("--", "level", "load", fmt.Sprintf("session %s %dx%d tile=%d", lv.SessionID, cfg.Width, cfg.Height, cfg.TileSize), 0)
	return lv, nil
}

// Settings polls the settings provider.
func (lv *Level) Settings() Settings { return lv.settings.Settings() }

// IsDay reports the current phase of the day/night cycle.
func (lv *Level) IsDay() bool { return lv.Cycle.Phase() == PhaseDay }

// Player returns the live player, or nil once it has died.
func (lv *Level) Player() *Player {
	e, ok := lv.Registry.Get(lv.player)
	if !ok {
		return nil
	}
	p, _ := e.(*Player)
	return p
}

// Step advances the level by dt seconds. The grid is rebuilt and the flow
// fields recomputed before any entity consumes them.
func (lv *Level) Step(dt float64) {
	if lv.GameOver {
		return
	}
	lv.Tick++
	lv.Time += dt

	lv.rebuild()
	lv.Cycle.Update(lv, dt)
	lv.Spawner.Update(lv, dt)

	if p := lv.Player(); p != nil {
		p.Update(lv, dt)
	}
	for _, e := range lv.Registry.Snapshot() {
		b := e.Base()
		if b.Kind == KindPlayer || !b.Alive() {
			continue
		}
		e.Update(lv, dt)
	}

	if lv.Log.Verbose() {
		for _, z := range lv.Registry.Zombies() {
			lv.Log.AddVerbose(lv.Tick, z.Label(), "move", "position",
				fmt.Sprintf("(%.1f,%.1f)", z.Pos.X, z.Pos.Y), 0)
		}
	}
}

// rebuild refreshes the occupancy grid and the flow fields derived from it.
// Retreat fields are recomputed whenever the static layout or the player
// tile changes, so they always match the current grid.
func (lv *Level) rebuild() {
	lv.Grid = RebuildGrid(lv.Config, lv.Registry.Occupants())
	playerTile := GridPos{X: -1, Y: -1}
	if p := lv.Player(); p != nil {
		playerTile = lv.Config.WorldToGrid(p.Pos)
		lv.PlayerField = ComputeFlowField(lv.Grid, []GridPos{playerTile})
	} else {
		lv.PlayerField = nil
	}
	if v := lv.Registry.StaticVersion(); v != lv.retreatVersion || playerTile != lv.retreatPlayerTile {
		lv.RetreatFields = ComputeRetreatFields(lv.Grid)
		lv.retreatVersion = v
		lv.retreatPlayerTile = playerTile
	}
}

// AddZombie spawns a zombie at p using the current settings.
func (lv *Level) AddZombie(p WorldPos) *Zombie {
	s := lv.Settings()
	z := NewZombie(p, s.ZombieHealth)
	lv.Registry.Add(z)
	lv.Stats.Spawned++
	lv.event(z.Label(), "spawn", "zombie", fmt.Sprintf("at (%.0f,%.0f)", p.X, p.Y), 0)
	return z
}

// AddBlock places a destructible block on tile p.
func (lv *Level) AddBlock(p GridPos) *Block {
	b := NewBlock(lv.Config.GridToWorldCentered(p), lv.Settings().BlockHealth, false)
	lv.Registry.Add(b)
	return b
}

// randomInteriorPosition picks the centre of a random free tile away from
// the map edge.
func (lv *Level) randomInteriorPosition() WorldPos {
	cfg := lv.Config
	if cfg.Width > 2 && cfg.Height > 2 {
		for tries := 0; tries < 64; tries++ {
			p := GridPos{X: 1 + lv.Rng.Intn(cfg.Width-2), Y: 1 + lv.Rng.Intn(cfg.Height-2)}
			t := lv.Grid.At(p)
			if t != nil && t.State == TileAvailable && t.Ref == NoEntity {
				return cfg.GridToWorldCentered(p)
			}
		}
	}
	return cfg.GridToWorldCentered(GridPos{X: cfg.Width / 2, Y: cfg.Height / 2})
}

// event records to the SimLog and mirrors the line to the on-screen feed.
func (lv *Level) event(label, category, key, value string, num float64) {
	lv.Log.Add(lv.Tick, label, category, key, value, num)
	if lv.Feed != nil {
		lv.Feed.Add(lv.Tick, label, category, value)
	}
}
