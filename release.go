package balloons

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// ReleaseHeight is how far a released balloon rises before it is gone.
	ReleaseHeight = 12.0
	// ReleaseDuration is the rise time in seconds.
	ReleaseDuration = 4.0

	swayAmplitude = 0.3
	swayFrequency = 1.7
)

// Release animates a sent balloon floating away: it accelerates upward and
// sways on X and Z. There is no global animation manager; callers Update it
// once per frame.
type Release struct {
	origin  r3.Vector
	rise    *gween.Tween
	elapsed float64
	pos     r3.Vector
	done    bool
}

// NewRelease starts a rise of height world units from origin over duration
// seconds.
func NewRelease(origin r3.Vector, height float64, duration float32) *Release {
	return &Release{
		origin: origin,
		rise:   gween.New(float32(origin.Y), float32(origin.Y+height), duration, ease.InQuad),
		pos:    origin,
	}
}

// Update advances the rise by dt seconds and returns the new position.
func (r *Release) Update(dt float32) r3.Vector {
	if r.done {
		return r.pos
	}
	y, finished := r.rise.Update(dt)
	r.elapsed += float64(dt)
	phase := r.elapsed * swayFrequency
	r.pos = r3.Vector{
		X: r.origin.X + swayAmplitude*math.Sin(phase),
		Y: float64(y),
		Z: r.origin.Z + swayAmplitude*0.5*math.Sin(phase*0.7),
	}
	r.done = finished
	return r.pos
}

// Position returns the balloon's current position.
func (r *Release) Position() r3.Vector {
	return r.pos
}

// Done reports whether the balloon has floated out of sight.
func (r *Release) Done() bool {
	return r.done
}
