package game

import "math"

// Unreached is the distance of tiles no source can reach.
const Unreached = math.MaxInt32

// Step is a one-tile move with components in {-1, 0, 1}.
type Step struct {
	DX, DY int8
}

// IsZero reports whether the step does not move.
func (s Step) IsZero() bool { return s.DX == 0 && s.DY == 0 }

// neighbourSteps is the row-major scan order shared by the BFS expansion and
// the direction pass. Changing it changes tie-breaking.
var neighbourSteps = [8]Step{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// FlowField holds per-tile BFS distances to the nearest source and the step
// toward a strictly closer neighbour.
type FlowField struct {
	cfg  GridConfig
	dist []int
	dir  []Step
}

// ComputeFlowField runs a multi-source breadth-first search over the grid.
// Only available tiles are expanded. Sources that are outside the grid or
// blocked are skipped; if none remain every tile stays Unreached.
func ComputeFlowField(g *Grid, sources []GridPos) *FlowField {
	cfg := g.Config()
	n := cfg.Width * cfg.Height
	ff := &FlowField{
		cfg:  cfg,
		dist: make([]int, n),
		dir:  make([]Step, n),
	}
	for i := range ff.dist {
		ff.dist[i] = Unreached
	}

	queue := make([]int, 0, n)
	for _, s := range sources {
		if !cfg.IsInside(s) || g.IsBlocked(s) {
			continue
		}
		idx := s.Y*cfg.Width + s.X
		if ff.dist[idx] == 0 {
			continue
		}
		ff.dist[idx] = 0
		queue = append(queue, idx)
	}

	// Integration pass.
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		cx, cy := cur%cfg.Width, cur/cfg.Width
		next := ff.dist[cur] + 1
		for _, d := range neighbourSteps {
			np := GridPos{X: cx + int(d.DX), Y: cy + int(d.DY)}
			t := g.At(np)
			if t == nil || t.State != TileAvailable {
				continue
			}
			ni := np.Y*cfg.Width + np.X
			if ff.dist[ni] != Unreached {
				continue
			}
			ff.dist[ni] = next
			queue = append(queue, ni)
		}
	}

	// Direction pass: first strictly-smaller neighbour in scan order wins ties.
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			idx := y*cfg.Width + x
			best := ff.dist[idx]
			if best == Unreached {
				continue
			}
			for _, d := range neighbourSteps {
				np := GridPos{X: x + int(d.DX), Y: y + int(d.DY)}
				if !cfg.IsInside(np) {
					continue
				}
				if nd := ff.dist[np.Y*cfg.Width+np.X]; nd < best {
					best = nd
					ff.dir[idx] = d
				}
			}
		}
	}
	return ff
}

// Config returns the layout the field was computed for.
func (ff *FlowField) Config() GridConfig { return ff.cfg }

// Distance returns the BFS distance at p, or Unreached outside the grid.
func (ff *FlowField) Distance(p GridPos) int {
	if !ff.cfg.IsInside(p) {
		return Unreached
	}
	return ff.dist[p.Y*ff.cfg.Width+p.X]
}

// Reached reports whether p has a finite distance.
func (ff *FlowField) Reached(p GridPos) bool {
	return ff.Distance(p) != Unreached
}

// Direction returns the descent step at p (zero outside, at sources, and on
// unreached tiles).
func (ff *FlowField) Direction(p GridPos) Step {
	if !ff.cfg.IsInside(p) {
		return Step{}
	}
	return ff.dir[p.Y*ff.cfg.Width+p.X]
}

// NextTile returns the neighbour the field descends to from p.
func (ff *FlowField) NextTile(p GridPos) (GridPos, bool) {
	d := ff.Direction(p)
	if d.IsZero() {
		return p, false
	}
	return p.Add(d), true
}

// Edge identifies one side of the map.
type Edge uint8

const (
	EdgeNorth Edge = iota
	EdgeEast
	EdgeSouth
	EdgeWest
	edgeCount
)

func (e Edge) String() string {
	switch e {
	case EdgeNorth:
		return "north"
	case EdgeEast:
		return "east"
	case EdgeSouth:
		return "south"
	case EdgeWest:
		return "west"
	default:
		return "unknown"
	}
}

// Outward returns the step that leaves the map across this edge.
func (e Edge) Outward() Step {
	switch e {
	case EdgeNorth:
		return Step{0, -1}
	case EdgeEast:
		return Step{1, 0}
	case EdgeSouth:
		return Step{0, 1}
	default:
		return Step{-1, 0}
	}
}

// RetreatSources lists the tiles along one map edge.
func RetreatSources(cfg GridConfig, e Edge) []GridPos {
	var out []GridPos
	switch e {
	case EdgeNorth, EdgeSouth:
		y := 0
		if e == EdgeSouth {
			y = cfg.Height - 1
		}
		for x := 0; x < cfg.Width; x++ {
			out = append(out, GridPos{X: x, Y: y})
		}
	case EdgeEast, EdgeWest:
		x := 0
		if e == EdgeEast {
			x = cfg.Width - 1
		}
		for y := 0; y < cfg.Height; y++ {
			out = append(out, GridPos{X: x, Y: y})
		}
	}
	return out
}

// ComputeRetreatFields builds one field per map edge, in Edge order.
func ComputeRetreatFields(g *Grid) []*FlowField {
	fields := make([]*FlowField, 0, edgeCount)
	for e := Edge(0); e < edgeCount; e++ {
		fields = append(fields, ComputeFlowField(g, RetreatSources(g.Config(), e)))
	}
	return fields
}
