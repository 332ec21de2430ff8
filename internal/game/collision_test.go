package game

import (
	"math"
	"testing"
)

// circleOverlapsTile reports whether a circle intersects the interior of a tile.
func circleOverlapsTile(c WorldPos, r float64, tile GridPos, ts float64) bool {
	minX, minY := float64(tile.X)*ts, float64(tile.Y)*ts
	nx := math.Max(minX, math.Min(c.X, minX+ts))
	ny := math.Max(minY, math.Min(c.Y, minY+ts))
	return math.Hypot(c.X-nx, c.Y-ny) < r-1e-9
}

func TestResolveCollision_NilGridOnlyClamps(t *testing.T) {
	cfg := GridConfig{TileSize: 30, Width: 10, Height: 10}
	got := ResolveCollision(WorldPos{X: -5, Y: 400}, nil, cfg, true)
	if got != (WorldPos{X: 10, Y: 290}) {
		t.Fatalf("expected clamp to (10,290), got %v", got)
	}
	free := WorldPos{X: -5, Y: 400}
	if got := ResolveCollision(free, nil, cfg, false); got != free {
		t.Fatalf("without clamp and grid the position must pass through, got %v", got)
	}
}

func TestResolveCollision_SingleEdgeMinimalPush(t *testing.T) {
	cfg := GridConfig{TileSize: 30, Width: 10, Height: 10}
	tile := GridPos{X: 5, Y: 5}
	g := BuildGrid(cfg, []GridPos{tile})
	r := EntityRadius(cfg)

	desired := WorldPos{X: 145, Y: 165}
	if !circleOverlapsTile(desired, r, tile, 30) {
		t.Fatal("test setup: desired circle should overlap the blocked tile")
	}
	got := ResolveCollision(desired, g, cfg, true)
	if got != (WorldPos{X: 140, Y: 165}) {
		t.Fatalf("expected push to (140,165), got %v", got)
	}
	if circleOverlapsTile(got, r, tile, 30) {
		t.Fatalf("corrected circle at %v still overlaps the tile", got)
	}

	// Every other single-axis correction moves farther.
	alternatives := []WorldPos{
		{X: 180 + r, Y: 165},
		{X: 145, Y: 150 - r},
		{X: 145, Y: 180 + r},
	}
	moved := got.DistanceTo(desired)
	for _, a := range alternatives {
		if a.DistanceTo(desired) < moved {
			t.Fatalf("alternative %v is closer than the chosen correction", a)
		}
	}
}

func TestResolveCollision_EdgeSlidesAlongWall(t *testing.T) {
	cfg := GridConfig{TileSize: 30, Width: 10, Height: 10}
	var wall []GridPos
	for x := 0; x < 10; x++ {
		wall = append(wall, GridPos{X: x, Y: 5})
	}
	g := BuildGrid(cfg, wall)

	got := ResolveCollision(WorldPos{X: 77, Y: 145}, g, cfg, true)
	if got.X != 77 {
		t.Fatalf("sliding along a horizontal wall must keep x, got %v", got)
	}
	if want := 150 - EntityRadius(cfg); math.Abs(got.Y-want) > 1e-9 {
		t.Fatalf("expected y pushed to %.3f, got %.3f", want, got.Y)
	}
}

func TestResolveCollision_CornerUsesSmallerAxis(t *testing.T) {
	cfg := GridConfig{TileSize: 30, Width: 10, Height: 10}
	g := BuildGrid(cfg, []GridPos{{X: 5, Y: 5}})

	// Only the (+1,+1) diagonal sample lands in the tile.
	got := ResolveCollision(WorldPos{X: 143, Y: 146}, g, cfg, true)
	if got != (WorldPos{X: 140, Y: 146}) {
		t.Fatalf("expected x-only push to (140,146), got %v", got)
	}
	got = ResolveCollision(WorldPos{X: 146, Y: 143}, g, cfg, true)
	if got != (WorldPos{X: 146, Y: 140}) {
		t.Fatalf("expected y-only push to (146,140), got %v", got)
	}
}

func TestResolveCollision_OpenSpaceUnchanged(t *testing.T) {
	cfg := GridConfig{TileSize: 30, Width: 10, Height: 10}
	g := BuildGrid(cfg, []GridPos{{X: 0, Y: 0}})
	p := WorldPos{X: 150, Y: 150}
	if got := ResolveCollision(p, g, cfg, true); got != p {
		t.Fatalf("expected no correction in open space, got %v", got)
	}
}

func TestMoveToward(t *testing.T) {
	got := moveToward(WorldPos{}, WorldPos{X: 30, Y: 40}, 10)
	if math.Abs(got.X-6) > 1e-9 || math.Abs(got.Y-8) > 1e-9 {
		t.Fatalf("expected (6,8), got %v", got)
	}
	if got := moveToward(WorldPos{}, WorldPos{X: 3, Y: 4}, 10); got != (WorldPos{X: 3, Y: 4}) {
		t.Fatalf("short moves should land on the target, got %v", got)
	}
}
