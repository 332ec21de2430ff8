package game

import "math"

// maxRaySteps caps DDA traversal so a ray costs a bounded amount per frame.
const maxRaySteps = 100

// RayHit is the first blocked tile a ray entered.
type RayHit struct {
	Ref      EntityRef // occupant of the blocked tile (NoEntity for bare geometry)
	Tile     GridPos
	Distance float64 // along the ray to the tile boundary it entered through
}

// Raycast walks the grid from origin along angle with a DDA and returns the
// first blocked tile no farther than maxDistance.
func Raycast(origin WorldPos, angle, maxDistance float64, g *Grid) (RayHit, bool) {
	if g == nil || maxDistance <= 0 {
		return RayHit{}, false
	}
	cfg := g.Config()
	ts := float64(cfg.TileSize)
	dx, dy := math.Cos(angle), math.Sin(angle)

	cell := cfg.WorldToGrid(origin)
	stepX, stepY := 1, 1
	var sideX, sideY float64
	deltaX, deltaY := math.Inf(1), math.Inf(1)

	if math.Abs(dx) > 1e-12 {
		deltaX = ts / math.Abs(dx)
		if dx < 0 {
			stepX = -1
			sideX = (origin.X - float64(cell.X)*ts) / math.Abs(dx)
		} else {
			sideX = (float64(cell.X+1)*ts - origin.X) / dx
		}
	} else {
		sideX = math.Inf(1)
	}
	if math.Abs(dy) > 1e-12 {
		deltaY = ts / math.Abs(dy)
		if dy < 0 {
			stepY = -1
			sideY = (origin.Y - float64(cell.Y)*ts) / math.Abs(dy)
		} else {
			sideY = (float64(cell.Y+1)*ts - origin.Y) / dy
		}
	} else {
		sideY = math.Inf(1)
	}

	for i := 0; i < maxRaySteps; i++ {
		var travelled float64
		if sideX < sideY {
			travelled = sideX
			sideX += deltaX
			cell.X += stepX
		} else {
			travelled = sideY
			sideY += deltaY
			cell.Y += stepY
		}
		if travelled > maxDistance {
			return RayHit{}, false
		}
		t := g.At(cell)
		if t == nil {
			return RayHit{}, false
		}
		if t.State == TileBlocked {
			return RayHit{Ref: t.Ref, Tile: cell, Distance: travelled}, true
		}
	}
	return RayHit{}, false
}

// RayEnd returns the point dist pixels from origin along angle.
func RayEnd(origin WorldPos, angle, dist float64) WorldPos {
	return WorldPos{X: origin.X + math.Cos(angle)*dist, Y: origin.Y + math.Sin(angle)*dist}
}

// rayCircleT returns the distance along a unit ray at which it first enters
// a circle, if it does so in front of the origin.
func rayCircleT(origin WorldPos, angle float64, centre WorldPos, radius float64) (float64, bool) {
	dx, dy := math.Cos(angle), math.Sin(angle)
	ox, oy := origin.X-centre.X, origin.Y-centre.Y
	b := ox*dx + oy*dy
	c := ox*ox + oy*oy - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
		if t < 0 {
			return 0, false
		}
		return 0, true // origin inside the circle
	}
	return t, true
}
