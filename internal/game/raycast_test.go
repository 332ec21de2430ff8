package game

import (
	"math"
	"testing"
)

func TestRaycast_EmptyGridNeverHits(t *testing.T) {
	g := openGrid(10, 10)
	origin := WorldPos{X: 40, Y: 40}
	for _, d := range []float64{0, -5, 1000} {
		if _, ok := Raycast(origin, 0.3, d, g); ok {
			t.Fatalf("empty grid hit with maxDistance=%g", d)
		}
	}
	if _, ok := Raycast(origin, 0, 1000, nil); ok {
		t.Fatal("nil grid must not hit")
	}
}

func TestRaycast_HitsOccupantWithinRange(t *testing.T) {
	cfg := GridConfig{TileSize: 32, Width: 10, Height: 10}
	target := GridPos{X: 5, Y: 2}
	g := RebuildGrid(cfg, []Occupant{
		{Ref: 9, Kind: KindBlock, Pos: cfg.GridToWorldCentered(target), Static: true},
	})
	origin := cfg.GridToWorldCentered(GridPos{X: 1, Y: 2}) // (48,80)

	hit, ok := Raycast(origin, 0, 200, g)
	if !ok {
		t.Fatal("expected a hit on the block")
	}
	if hit.Ref != 9 || hit.Tile != target {
		t.Fatalf("expected ref 9 at %v, got ref %d at %v", target, hit.Ref, hit.Tile)
	}
	if math.Abs(hit.Distance-112) > 1e-9 {
		t.Fatalf("expected entry distance 112, got %.3f", hit.Distance)
	}
	if _, ok := Raycast(origin, 0, 112, g); !ok {
		t.Fatal("hit exactly at maxDistance should count")
	}
	if _, ok := Raycast(origin, 0, 100, g); ok {
		t.Fatal("hit beyond maxDistance should be discarded")
	}
	if _, ok := Raycast(origin, math.Pi, 200, g); ok {
		t.Fatal("ray leaving the grid should report no hit")
	}
}

func TestRaycast_GeometryHasNoRef(t *testing.T) {
	cfg := GridConfig{TileSize: 32, Width: 10, Height: 10}
	g := BuildGrid(cfg, []GridPos{{X: 3, Y: 7}})
	origin := cfg.GridToWorldCentered(GridPos{X: 3, Y: 2})

	hit, ok := Raycast(origin, math.Pi/2, 500, g)
	if !ok || hit.Tile != (GridPos{X: 3, Y: 7}) {
		t.Fatalf("expected vertical ray to hit (3,7), got %+v ok=%v", hit, ok)
	}
	if hit.Ref != NoEntity {
		t.Fatalf("bare geometry should report NoEntity, got %d", hit.Ref)
	}
}

func TestRaycast_DiagonalStaysBounded(t *testing.T) {
	cfg := GridConfig{TileSize: 1, Width: 400, Height: 400}
	g := BuildGrid(cfg, []GridPos{{X: 399, Y: 399}})
	// 100 DDA steps cannot reach the far corner.
	if _, ok := Raycast(WorldPos{X: 0.5, Y: 0.5}, math.Pi/4, 1e6, g); ok {
		t.Fatal("ray should give up after the step cap")
	}
}

func TestRayCircleT(t *testing.T) {
	if d, ok := rayCircleT(WorldPos{}, 0, WorldPos{X: 50}, 10); !ok || math.Abs(d-40) > 1e-9 {
		t.Fatalf("expected entry at 40, got %.3f ok=%v", d, ok)
	}
	if _, ok := rayCircleT(WorldPos{}, math.Pi, WorldPos{X: 50}, 10); ok {
		t.Fatal("circle behind the ray must not hit")
	}
	if d, ok := rayCircleT(WorldPos{X: 48}, 0, WorldPos{X: 50}, 10); !ok || d != 0 {
		t.Fatalf("origin inside the circle should hit at 0, got %.3f ok=%v", d, ok)
	}
	if _, ok := rayCircleT(WorldPos{}, 0, WorldPos{X: 50, Y: 20}, 10); ok {
		t.Fatal("ray passing beside the circle must miss")
	}
}
