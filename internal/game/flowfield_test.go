package game

import "testing"

func openGrid(w, h int) *Grid {
	return BuildGrid(GridConfig{TileSize: 16, Width: w, Height: h}, nil)
}

func TestFlowField_OpenGridChebyshev(t *testing.T) {
	g := openGrid(10, 10)
	ff := ComputeFlowField(g, []GridPos{{X: 0, Y: 0}})

	if d := ff.Distance(GridPos{X: 0, Y: 0}); d != 0 {
		t.Fatalf("source distance should be 0, got %d", d)
	}
	if d := ff.Distance(GridPos{X: 9, Y: 9}); d != 9 {
		t.Fatalf("expected distance(9,9)=9, got %d", d)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := max(x, y)
			if d := ff.Distance(GridPos{X: x, Y: y}); d != want {
				t.Fatalf("distance(%d,%d)=%d, want %d", x, y, d, want)
			}
		}
	}
	if s := ff.Direction(GridPos{X: 9, Y: 9}); s != (Step{DX: -1, DY: -1}) {
		t.Fatalf("expected diagonal step toward source, got %+v", s)
	}
	if !ff.Direction(GridPos{X: 0, Y: 0}).IsZero() {
		t.Fatal("source tile should have no direction")
	}
}

// walkToSource follows NextTile from p and checks every step lowers the
// distance by exactly one.
func walkToSource(t *testing.T, ff *FlowField, p GridPos) {
	t.Helper()
	d := ff.Distance(p)
	for steps := 0; d > 0; steps++ {
		if steps > 1000 {
			t.Fatalf("walk from %v did not terminate", p)
		}
		next, ok := ff.NextTile(p)
		if !ok {
			t.Fatalf("reached tile %v (distance %d) has no next tile", p, d)
		}
		nd := ff.Distance(next)
		if nd != d-1 {
			t.Fatalf("step %v→%v went from distance %d to %d", p, next, d, nd)
		}
		p, d = next, nd
	}
}

func TestFlowField_DescentIsMonotonicAroundWalls(t *testing.T) {
	cfg := GridConfig{TileSize: 16, Width: 12, Height: 9}
	var blocked []GridPos
	for y := 0; y < 7; y++ {
		blocked = append(blocked, GridPos{X: 4, Y: y})
	}
	for y := 2; y < 9; y++ {
		blocked = append(blocked, GridPos{X: 8, Y: y})
	}
	g := BuildGrid(cfg, blocked)
	ff := ComputeFlowField(g, []GridPos{{X: 11, Y: 8}})

	reached := 0
	for y := 0; y < cfg.Height; y++ {
		for x := 0; x < cfg.Width; x++ {
			p := GridPos{X: x, Y: y}
			if g.IsBlocked(p) {
				if ff.Reached(p) {
					t.Fatalf("blocked tile %v must stay unreached", p)
				}
				continue
			}
			if !ff.Reached(p) {
				t.Fatalf("open tile %v should be reachable", p)
			}
			reached++
			walkToSource(t, ff, p)
		}
	}
	if reached != cfg.Width*cfg.Height-len(blocked) {
		t.Fatalf("expected every open tile reached, got %d", reached)
	}
	// The serpentine forces a detour: (0,0) is far more than 11 steps away.
	if d := ff.Distance(GridPos{X: 0, Y: 0}); d <= 11 {
		t.Fatalf("expected detour around walls, got distance %d", d)
	}
}

func TestFlowField_TieBreakFollowsScanOrder(t *testing.T) {
	g := openGrid(3, 3)
	ff := ComputeFlowField(g, []GridPos{{X: 0, Y: 0}, {X: 2, Y: 0}})
	if s := ff.Direction(GridPos{X: 1, Y: 1}); s != (Step{DX: -1, DY: -1}) {
		t.Fatalf("expected first source in scan order (up-left), got %+v", s)
	}
	if d := ff.Distance(GridPos{X: 1, Y: 0}); d != 1 {
		t.Fatalf("expected distance 1 between two sources, got %d", d)
	}
}

func TestFlowField_InvalidSourcesLeaveEverythingUnreached(t *testing.T) {
	cfg := GridConfig{TileSize: 16, Width: 5, Height: 5}
	g := BuildGrid(cfg, []GridPos{{X: 2, Y: 2}})

	for _, sources := range [][]GridPos{
		nil,
		{{X: -1, Y: 0}},
		{{X: 5, Y: 5}},
		{{X: 2, Y: 2}},
	} {
		ff := ComputeFlowField(g, sources)
		for y := 0; y < cfg.Height; y++ {
			for x := 0; x < cfg.Width; x++ {
				if ff.Reached(GridPos{X: x, Y: y}) {
					t.Fatalf("sources %v: tile (%d,%d) unexpectedly reached", sources, x, y)
				}
			}
		}
	}
}

func TestFlowField_EnclosedTileUnreached(t *testing.T) {
	cfg := GridConfig{TileSize: 16, Width: 7, Height: 7}
	var ring []GridPos
	for _, s := range neighbourSteps {
		ring = append(ring, GridPos{X: 3 + int(s.DX), Y: 3 + int(s.DY)})
	}
	g := BuildGrid(cfg, ring)
	ff := ComputeFlowField(g, []GridPos{{X: 0, Y: 0}})

	inner := GridPos{X: 3, Y: 3}
	if ff.Reached(inner) {
		t.Fatal("walled-in tile should be unreached")
	}
	if ff.Distance(inner) != Unreached {
		t.Fatalf("expected Unreached sentinel, got %d", ff.Distance(inner))
	}
	if _, ok := ff.NextTile(inner); ok {
		t.Fatal("unreached tile should have no next tile")
	}
	if ff.Distance(GridPos{X: 99, Y: 0}) != Unreached {
		t.Fatal("outside tiles should report Unreached")
	}
}

func TestRetreatFields_OnePerEdge(t *testing.T) {
	cfg := GridConfig{TileSize: 16, Width: 6, Height: 5}
	g := BuildGrid(cfg, []GridPos{{X: 2, Y: 0}})
	fields := ComputeRetreatFields(g)
	if len(fields) != int(edgeCount) {
		t.Fatalf("expected %d retreat fields, got %d", edgeCount, len(fields))
	}

	p := GridPos{X: 3, Y: 4}
	want := map[Edge]int{EdgeNorth: 4, EdgeEast: 2, EdgeSouth: 0, EdgeWest: 3}
	for e, d := range want {
		if got := fields[e].Distance(p); got != d {
			t.Fatalf("%s field: distance at %v = %d, want %d", e, p, got, d)
		}
	}
	if fields[EdgeNorth].Reached(GridPos{X: 2, Y: 0}) {
		t.Fatal("blocked edge tile must not become a retreat source")
	}
	if len(RetreatSources(cfg, EdgeEast)) != cfg.Height || len(RetreatSources(cfg, EdgeNorth)) != cfg.Width {
		t.Fatal("retreat sources should span the full edge")
	}
	if s := EdgeWest.Outward(); s != (Step{DX: -1}) {
		t.Fatalf("west should step -x, got %+v", s)
	}
}
