package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	minExtent = 5.0
	maxExtent = 2000.0
)

// Camera looks down the field axis at the X-Z plane. Extent is the world
// distance from the centre to the nearest canvas edge; it eases toward its
// target on a critically damped spring so the view grows with the orbit
// without jumping.
type Camera struct {
	Extent   float64
	Zoom     float64
	velocity float64
	spring   harmonica.Spring
}

func NewCamera(extent float64) *Camera {
	return &Camera{
		Extent: clamp(extent, minExtent, maxExtent),
		Zoom:   1,
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (c *Camera) ZoomIn()  { c.Zoom = clamp(c.Zoom*1.2, 0.2, 10) }
func (c *Camera) ZoomOut() { c.Zoom = clamp(c.Zoom/1.2, 0.2, 10) }

// Follow moves one frame toward showing a disc of radius fit.
func (c *Camera) Follow(fit float64) {
	target := clamp(fit*1.15/c.Zoom, minExtent, maxExtent)
	c.Extent, c.velocity = c.spring.Update(c.Extent, c.velocity, target)
	if c.Extent < minExtent {
		c.Extent, c.velocity = minExtent, 0
	}
}

// Snap jumps straight to the target extent.
func (c *Camera) Snap(fit float64) {
	c.Extent = clamp(fit*1.15/c.Zoom, minExtent, maxExtent)
	c.velocity = 0
}

// Scale is sub-pixels per world unit for a canvas of sw x sh sub-pixels.
func (c *Camera) Scale(sw, sh int) float64 {
	return float64(min(sw, sh)) / 2 / c.Extent
}

// Project maps world (x, z) to canvas sub-pixels with +Z up.
func (c *Camera) Project(x, z float64, sw, sh int) (int, int) {
	s := c.Scale(sw, sh)
	return sw/2 + int(math.Round(x*s)), sh/2 - int(math.Round(z*s))
}
