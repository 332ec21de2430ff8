package game

import "math/rand"

// ruinSizes are the footprints (in tiles) tried when placing ruins.
var ruinSizes = [][2]int{
	{3, 3}, {3, 4}, {4, 3}, {4, 4}, {4, 5}, {5, 4}, {5, 5},
}

type tileRect struct {
	x, y, w, h int
}

func (r tileRect) overlaps(o tileRect, margin int) bool {
	return r.x-margin < o.x+o.w && o.x-margin < r.x+r.w &&
		r.y-margin < o.y+o.h && o.y-margin < r.y+r.h
}

// GenerateLayout returns the blocked tiles of a ruined-town level: a handful
// of walled ruins, each with a doorway and a few collapsed wall tiles. The
// border ring stays open so zombies can enter and leave, and the area around
// start stays clear.
func GenerateLayout(cfg GridConfig, rng *rand.Rand, start GridPos, count int) []GridPos {
	if cfg.Width < 9 || cfg.Height < 9 {
		return nil
	}
	keepClear := tileRect{x: start.X - 2, y: start.Y - 2, w: 5, h: 5}

	var ruins []tileRect
	for tries := 0; tries < count*20 && len(ruins) < count; tries++ {
		sz := ruinSizes[rng.Intn(len(ruinSizes))]
		w, h := sz[0], sz[1]
		if w > cfg.Width-4 || h > cfg.Height-4 {
			continue
		}
		r := tileRect{
			x: 2 + rng.Intn(cfg.Width-3-w),
			y: 2 + rng.Intn(cfg.Height-3-h),
			w: w,
			h: h,
		}
		if r.overlaps(keepClear, 0) {
			continue
		}
		clash := false
		for _, o := range ruins {
			if r.overlaps(o, 2) {
				clash = true
				break
			}
		}
		if !clash {
			ruins = append(ruins, r)
		}
	}

	var blocked []GridPos
	for _, r := range ruins {
		blocked = append(blocked, ruinWalls(rng, r)...)
	}
	return blocked
}

// ruinWalls traces the perimeter of r, leaving one doorway and knocking out
// the odd tile.
func ruinWalls(rng *rand.Rand, r tileRect) []GridPos {
	var ring []GridPos
	for x := r.x; x < r.x+r.w; x++ {
		ring = append(ring, GridPos{X: x, Y: r.y})
	}
	for y := r.y + 1; y < r.y+r.h; y++ {
		ring = append(ring, GridPos{X: r.x + r.w - 1, Y: y})
	}
	for x := r.x + r.w - 2; x >= r.x; x-- {
		ring = append(ring, GridPos{X: x, Y: r.y + r.h - 1})
	}
	for y := r.y + r.h - 2; y > r.y; y-- {
		ring = append(ring, GridPos{X: r.x, Y: y})
	}

	// Door on a random face, away from the corners.
	var door GridPos
	switch rng.Intn(4) {
	case 0:
		door = GridPos{X: r.x + 1 + rng.Intn(r.w-2), Y: r.y}
	case 1:
		door = GridPos{X: r.x + r.w - 1, Y: r.y + 1 + rng.Intn(r.h-2)}
	case 2:
		door = GridPos{X: r.x + 1 + rng.Intn(r.w-2), Y: r.y + r.h - 1}
	default:
		door = GridPos{X: r.x, Y: r.y + 1 + rng.Intn(r.h-2)}
	}

	out := make([]GridPos, 0, len(ring))
	for _, p := range ring {
		if p == door || rng.Intn(6) == 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
