package game

import "math"

// EntityRadius is the collision radius shared by every moving entity.
func EntityRadius(cfg GridConfig) float64 {
	return float64(cfg.TileSize) / 3
}

var (
	edgeSamples   = [4][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	cornerSamples = [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
)

// ResolveCollision corrects a desired position against world bounds and
// blocked tiles. A nil grid only clamps.
//
// Edge samples are resolved first; corners are only checked when no edge
// was hit, and only the first blocked corner is resolved.
func ResolveCollision(desired WorldPos, g *Grid, cfg GridConfig, clamp bool) WorldPos {
	r := EntityRadius(cfg)
	pos := desired
	if clamp {
		pos.X = clampRange(pos.X, r, cfg.WorldWidth()-r)
		pos.Y = clampRange(pos.Y, r, cfg.WorldHeight()-r)
	}
	if g == nil {
		return pos
	}

	ts := float64(cfg.TileSize)
	out := pos
	edgeHit := false
	for _, s := range edgeSamples {
		sample := WorldPos{X: pos.X + s[0]*r, Y: pos.Y + s[1]*r}
		tp := cfg.WorldToGrid(sample)
		if !g.IsBlocked(tp) {
			continue
		}
		edgeHit = true
		if s[0] != 0 {
			out.X = pushOut(tp.X, s[0], ts, r)
		} else {
			out.Y = pushOut(tp.Y, s[1], ts, r)
		}
	}
	if edgeHit {
		return out
	}

	for _, s := range cornerSamples {
		sample := WorldPos{X: pos.X + s[0]*r, Y: pos.Y + s[1]*r}
		tp := cfg.WorldToGrid(sample)
		if !g.IsBlocked(tp) {
			continue
		}
		px := pushOut(tp.X, s[0], ts, r)
		py := pushOut(tp.Y, s[1], ts, r)
		if math.Abs(px-pos.X) <= math.Abs(py-pos.Y) {
			out.X = px
		} else {
			out.Y = py
		}
		break
	}
	return out
}

// pushOut returns the axis coordinate that puts a sample taken on side sign
// of the centre just outside tile index t.
func pushOut(t int, sign, ts, r float64) float64 {
	if sign < 0 {
		return float64(t+1)*ts + r
	}
	return float64(t)*ts - r
}

func clampRange(v, lo, hi float64) float64 {
	if hi < lo {
		return (lo + hi) / 2
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// moveToward steps from toward to by at most step pixels.
func moveToward(from, to WorldPos, step float64) WorldPos {
	dx, dy := to.X-from.X, to.Y-from.Y
	d := math.Hypot(dx, dy)
	if d <= step || d < 1e-9 {
		return to
	}
	return WorldPos{X: from.X + dx/d*step, Y: from.Y + dy/d*step}
}
