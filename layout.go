package balloons

import (
	"math"
	"math/rand/v2"

	"github.com/golang/geo/r3"
)

const (
	// DefaultScope is the half-width of the cube balloons are placed in.
	DefaultScope = 2.0
	// DefaultMinDistance is the minimum separation between two balloons.
	DefaultMinDistance = 1.5
	// AttemptsPerItem bounds random sampling to count*AttemptsPerItem
	// candidates before the grid fallback takes over.
	AttemptsPerItem = 100
)

// Layout places points in the cube [-Scope, Scope]^3 so that no two are
// closer than MinDistance.
type Layout struct {
	Scope       float64
	MinDistance float64
	// Rand is the random source. Nil uses the global math/rand/v2 source.
	Rand *rand.Rand
}

// Placement is the result of one Generate call.
type Placement struct {
	Points []r3.Vector
	// Fallback is the number of trailing points that came from the grid
	// rather than random sampling.
	Fallback int
}

// Generate places count points with a fresh Layout on the global random
// source. Negative counts are treated as zero.
func Generate(count int, scope, minDistance float64) []r3.Vector {
	l := Layout{Scope: scope, MinDistance: minDistance}
	return l.Generate(count).Points
}

// Generate places count points. Candidates are sampled uniformly on each
// axis and accepted only when they keep MinDistance from every point already
// accepted. Once count*AttemptsPerItem candidates have been drawn, the
// remaining slots are filled from a deterministic grid indexed by slot, which
// may break the separation but always terminates.
func (l *Layout) Generate(count int) Placement {
	if count < 0 {
		count = 0
	}
	points := make([]r3.Vector, 0, count)

	budget := count * AttemptsPerItem
	for attempts := 0; len(points) < count && attempts < budget; attempts++ {
		p := l.sample()
		if separated(p, points, l.MinDistance) {
			points = append(points, p)
		}
	}

	accepted := len(points)
	for slot := accepted; slot < count; slot++ {
		points = append(points, GridPoint(slot, count, l.MinDistance))
	}
	return Placement{Points: points, Fallback: count - accepted}
}

func (l *Layout) sample() r3.Vector {
	return r3.Vector{
		X: l.coord(),
		Y: l.coord(),
		Z: l.coord(),
	}
}

// coord returns a value in [-Scope, Scope].
func (l *Layout) coord() float64 {
	var f float64
	if l.Rand != nil {
		f = l.Rand.Float64()
	} else {
		f = rand.Float64()
	}
	return l.Scope - f*l.Scope*2
}

// separated reports whether p is at least minDistance from every point.
func separated(p r3.Vector, points []r3.Vector, minDistance float64) bool {
	for _, q := range points {
		if p.Distance(q) < minDistance {
			return false
		}
	}
	return true
}

// GridPoint returns the grid position for slot in a batch of count items.
// The grid is a cube with ceil(cbrt(count)) cells per side, spaced by
// spacing and centred on the origin. Distinct slots below count map to
// distinct cells.
func GridPoint(slot, count int, spacing float64) r3.Vector {
	side := gridSide(count)
	offset := float64(side-1) * spacing / 2
	x := slot % side
	y := (slot / side) % side
	z := slot / (side * side)
	return r3.Vector{
		X: float64(x)*spacing - offset,
		Y: float64(y)*spacing - offset,
		Z: float64(z)*spacing - offset,
	}
}

func gridSide(count int) int {
	if count <= 1 {
		return 1
	}
	// Cbrt is not exact for perfect cubes; settle on the integer side.
	side := int(math.Round(math.Cbrt(float64(count))))
	for side*side*side < count {
		side++
	}
	for side > 1 && (side-1)*(side-1)*(side-1) >= count {
		side--
	}
	return side
}
