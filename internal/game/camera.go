package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	cameraEase    = 6.0 // per second; higher snaps faster
	cameraZoomMin = 0.5
	cameraZoomMax = 3.0
)

// Camera is an eased follow camera over a world of fixed size. X and Y are
// the world point shown at the viewport centre.
type Camera struct {
	X, Y   float64
	Zoom   float64
	ViewW  int
	ViewH  int
	WorldW float64
	WorldH float64
}

// NewCamera centres a camera on the world at zoom 1.
func NewCamera(viewW, viewH int, worldW, worldH float64) *Camera {
	return &Camera{
		X: worldW / 2, Y: worldH / 2, Zoom: 1,
		ViewW: viewW, ViewH: viewH,
		WorldW: worldW, WorldH: worldH,
	}
}

// Follow eases the centre toward target and keeps the view inside the world.
func (c *Camera) Follow(target WorldPos, dt float64) {
	k := 1 - math.Exp(-cameraEase*dt)
	c.X += (target.X - c.X) * k
	c.Y += (target.Y - c.Y) * k
	c.clamp()
}

// SetZoom sets the zoom factor, limited to the supported range.
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(cameraZoomMin, math.Min(cameraZoomMax, z))
	c.clamp()
}

func (c *Camera) clamp() {
	halfW := float64(c.ViewW) / 2 / c.Zoom
	halfH := float64(c.ViewH) / 2 / c.Zoom
	c.X = clampAxis(c.X, halfW, c.WorldW-halfW, c.WorldW)
	c.Y = clampAxis(c.Y, halfH, c.WorldH-halfH, c.WorldH)
}

// clampAxis centres the axis when the world is smaller than the view.
func clampAxis(v, lo, hi, size float64) float64 {
	if lo > hi {
		return size / 2
	}
	return math.Max(lo, math.Min(hi, v))
}

// GeoM maps world coordinates to viewport coordinates.
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.X, -c.Y)
	m.Scale(c.Zoom, c.Zoom)
	m.Translate(float64(c.ViewW)/2, float64(c.ViewH)/2)
	return m
}

// ScreenToWorld maps a viewport pixel back into the world.
func (c *Camera) ScreenToWorld(sx, sy float64) WorldPos {
	return WorldPos{
		X: (sx-float64(c.ViewW)/2)/c.Zoom + c.X,
		Y: (sy-float64(c.ViewH)/2)/c.Zoom + c.Y,
	}
}
