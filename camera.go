package balloons

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultCameraDistance = 8.0
	defaultCameraFOV      = math.Pi / 3
	nearPlane             = 0.1
	maxElevation          = math.Pi/2 - 0.01
)

// focusAnim holds active focus tweens for the orbit target.
type focusAnim struct {
	tweens [3]*gween.Tween
	done   [3]bool
}

// Camera is an orbit camera: it circles Target at Distance, positioned by
// Azimuth (around the Y axis) and Elevation (above the XZ plane). Its
// Position is the viewer position a Field ranks visibility against.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target r3.Vector
	// Azimuth and Elevation are in radians.
	Azimuth   float64
	Elevation float64
	// Distance from Target, clamped to [MinDistance, MaxDistance] by Zoom.
	Distance    float64
	MinDistance float64
	MaxDistance float64
	// FOV is the vertical field of view in radians.
	FOV float64

	focus *focusAnim
}

// NewCamera creates a camera looking at the origin from slightly above.
func NewCamera() *Camera {
	return &Camera{
		Elevation:   0.3,
		Distance:    defaultCameraDistance,
		MinDistance: 2,
		MaxDistance: 30,
		FOV:         defaultCameraFOV,
	}
}

// Position returns the camera's world-space position.
func (c *Camera) Position() r3.Vector {
	sinEl, cosEl := math.Sincos(c.Elevation)
	sinAz, cosAz := math.Sincos(c.Azimuth)
	return c.Target.Add(r3.Vector{
		X: c.Distance * cosEl * sinAz,
		Y: c.Distance * sinEl,
		Z: c.Distance * cosEl * cosAz,
	})
}

// Orbit rotates the camera around its target. Elevation is clamped short of
// straight up or down.
func (c *Camera) Orbit(dAzimuth, dElevation float64) {
	c.Azimuth = math.Mod(c.Azimuth+dAzimuth, 2*math.Pi)
	c.Elevation = math.Max(-maxElevation, math.Min(c.Elevation+dElevation, maxElevation))
}

// Zoom scales the orbit distance by factor (<1 moves closer).
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Distance = math.Max(c.MinDistance, math.Min(c.Distance*factor, c.MaxDistance))
}

// FocusOn animates the orbit target to p over duration seconds.
func (c *Camera) FocusOn(p r3.Vector, duration float32, easeFn ease.TweenFunc) {
	c.focus = &focusAnim{
		tweens: [3]*gween.Tween{
			gween.New(float32(c.Target.X), float32(p.X), duration, easeFn),
			gween.New(float32(c.Target.Y), float32(p.Y), duration, easeFn),
			gween.New(float32(c.Target.Z), float32(p.Z), duration, easeFn),
		},
	}
}

// Focusing reports whether a FocusOn animation is in progress.
func (c *Camera) Focusing() bool {
	return c.focus != nil
}

// Update advances the focus animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.focus == nil {
		return
	}
	fields := [3]*float64{&c.Target.X, &c.Target.Y, &c.Target.Z}
	allDone := true
	for i, tw := range c.focus.tweens {
		if c.focus.done[i] {
			continue
		}
		val, done := tw.Update(dt)
		*fields[i] = float64(val)
		c.focus.done[i] = done
		if !done {
			allDone = false
		}
	}
	if allDone {
		c.focus = nil
	}
}

// basis returns the camera's forward, right and up unit vectors.
func (c *Camera) basis() (forward, right, up r3.Vector) {
	forward = c.Target.Sub(c.Position()).Normalize()
	right = forward.Cross(r3.Vector{Y: 1}).Normalize()
	up = right.Cross(forward)
	return
}

// Project maps a world point into a width x height viewport with a
// perspective projection. scale is the screen size of one world unit at the
// point's depth. ok is false for points behind the near plane.
func (c *Camera) Project(p r3.Vector, width, height float64) (sx, sy, scale float64, ok bool) {
	forward, right, up := c.basis()
	rel := p.Sub(c.Position())
	depth := rel.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, 0, false
	}
	focal := (height / 2) / math.Tan(c.FOV/2)
	scale = focal / depth
	sx = width/2 + rel.Dot(right)*scale
	sy = height/2 - rel.Dot(up)*scale
	return sx, sy, scale, true
}

// Depth returns the distance of p along the camera's view direction.
func (c *Camera) Depth(p r3.Vector) float64 {
	forward, _, _ := c.basis()
	return p.Sub(c.Position()).Dot(forward)
}
