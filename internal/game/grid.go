package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGridConfig is returned when a level is loaded with a non-positive
// tile size or grid dimension.
var ErrInvalidGridConfig = errors.New("invalid grid config")

// GridConfig describes the tile layout of a level. It never changes while
// the level is loaded.
type GridConfig struct {
	TileSize int // pixels per tile edge
	Width    int // tiles across
	Height   int // tiles down
}

// NewGridConfig validates and returns a grid config.
func NewGridConfig(tileSize, width, height int) (GridConfig, error) {
	cfg := GridConfig{TileSize: tileSize, Width: width, Height: height}
	if err := cfg.Validate(); err != nil {
		return GridConfig{}, err
	}
	return cfg, nil
}

// Validate rejects zero or negative sizes.
func (c GridConfig) Validate() error {
	if c.TileSize <= 0 || c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: tile=%d size=%dx%d", ErrInvalidGridConfig, c.TileSize, c.Width, c.Height)
	}
	return nil
}

// WorldWidth returns the level width in pixels.
func (c GridConfig) WorldWidth() float64 { return float64(c.TileSize * c.Width) }

// WorldHeight returns the level height in pixels.
func (c GridConfig) WorldHeight() float64 { return float64(c.TileSize * c.Height) }

// IsInside reports whether p addresses a tile of this grid.
func (c GridConfig) IsInside(p GridPos) bool {
	return p.X >= 0 && p.X < c.Width && p.Y >= 0 && p.Y < c.Height
}

// IsInside is the free-function form of GridConfig.IsInside.
func IsInside(p GridPos, c GridConfig) bool { return c.IsInside(p) }

// WorldToGrid floors a world position to the tile containing it.
// Negative coordinates floor toward -inf so they stay outside the grid.
func (c GridConfig) WorldToGrid(w WorldPos) GridPos {
	ts := float64(c.TileSize)
	return GridPos{X: int(math.Floor(w.X / ts)), Y: int(math.Floor(w.Y / ts))}
}

// GridToWorld returns the top-left corner of a tile.
func (c GridConfig) GridToWorld(p GridPos) WorldPos {
	return WorldPos{X: float64(p.X * c.TileSize), Y: float64(p.Y * c.TileSize)}
}

// GridToWorldCentered returns the centre of a tile.
func (c GridConfig) GridToWorldCentered(p GridPos) WorldPos {
	half := float64(c.TileSize) / 2
	w := c.GridToWorld(p)
	return WorldPos{X: w.X + half, Y: w.Y + half}
}

// GridPos is an integer tile coordinate.
type GridPos struct {
	X, Y int
}

// Add offsets p by a step.
func (p GridPos) Add(s Step) GridPos {
	return GridPos{X: p.X + int(s.DX), Y: p.Y + int(s.DY)}
}

// WorldPos is a continuous pixel-space position.
type WorldPos struct {
	X, Y float64
}

// DistanceTo returns the straight-line distance to o.
func (w WorldPos) DistanceTo(o WorldPos) float64 {
	return math.Hypot(o.X-w.X, o.Y-w.Y)
}

// AngleTo returns the heading from w toward o in radians.
func (w WorldPos) AngleTo(o WorldPos) float64 {
	return math.Atan2(o.Y-w.Y, o.X-w.X)
}

// TileState is the occupancy of one tile.
type TileState uint8

const (
	TileAvailable        TileState = iota // walkable, default
	TileBlocked                           // static block
	TileOccupiedByPlayer                  // the player's current tile
)

func (s TileState) String() string {
	switch s {
	case TileAvailable:
		return "available"
	case TileBlocked:
		return "blocked"
	case TileOccupiedByPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Tile is one cell of the occupancy grid.
type Tile struct {
	State TileState
	Ref   EntityRef // non-owning; resolve through the Registry
	Pos   GridPos
}

// Grid is the per-tile occupancy snapshot for one tick.
type Grid struct {
	cfg   GridConfig
	tiles []Tile // row-major: index = y*Width + x
}

// BuildGrid creates a grid where every tile is available except the given
// blocked positions. Out-of-range blocked entries are ignored.
func BuildGrid(cfg GridConfig, blocked []GridPos) *Grid {
	g := &Grid{cfg: cfg, tiles: make([]Tile, cfg.Width*cfg.Height)}
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			g.tiles[y*cfg.Width+x].Pos = GridPos{X: x, Y: y}
		}
	}
	for _, p := range blocked {
		g.MarkOccupied(p, TileBlocked, NoEntity)
	}
	return g
}

// Config returns the grid's layout.
func (g *Grid) Config() GridConfig { return g.cfg }

// At returns the tile at p, or nil if p is outside the grid.
func (g *Grid) At(p GridPos) *Tile {
	if !g.cfg.IsInside(p) {
		return nil
	}
	return &g.tiles[p.Y*g.cfg.Width+p.X]
}

// State returns the tile state at p. Outside tiles report available so that
// callers leaving the map (retreating zombies) are not pushed back in.
func (g *Grid) State(p GridPos) TileState {
	t := g.At(p)
	if t == nil {
		return TileAvailable
	}
	return t.State
}

// IsBlocked reports whether p is an in-bounds blocked tile.
func (g *Grid) IsBlocked(p GridPos) bool {
	t := g.At(p)
	return t != nil && t.State == TileBlocked
}

// MarkOccupied overwrites one tile's state and reference. Later stamps win.
// Returns false without writing when p is outside the grid.
func (g *Grid) MarkOccupied(p GridPos, state TileState, ref EntityRef) bool {
	t := g.At(p)
	if t == nil {
		return false
	}
	t.State = state
	t.Ref = ref
	return true
}

// Occupant is the minimal view RebuildGrid needs of a live entity.
type Occupant struct {
	Ref    EntityRef
	Kind   EntityKind
	Pos    WorldPos
	Static bool
}

// RebuildGrid rebuilds the occupancy grid from scratch. Static occupants
// block their tile, zombies stamp their reference on an available tile, and
// the player is stamped last so it always wins its own tile.
func RebuildGrid(cfg GridConfig, occupants []Occupant) *Grid {
	g := BuildGrid(cfg, nil)
	var player *Occupant
	for i := range occupants {
		o := &occupants[i]
		p := cfg.WorldToGrid(o.Pos)
		switch {
		case o.Kind == KindPlayer:
			player = o
		case o.Static:
			g.MarkOccupied(p, TileBlocked, o.Ref)
		case o.Kind == KindZombie:
			if g.State(p) == TileAvailable {
				g.MarkOccupied(p, TileAvailable, o.Ref)
			}
		}
	}
	if player != nil {
		g.MarkOccupied(cfg.WorldToGrid(player.Pos), TileOccupiedByPlayer, player.Ref)
	}
	return g
}

// CountState returns how many tiles are in the given state.
func (g *Grid) CountState(s TileState) int {
	n := 0
	for i := range g.tiles {
		if g.tiles[i].State == s {
			n++
		}
	}
	return n
}
