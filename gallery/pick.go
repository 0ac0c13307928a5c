package gallery

import (
	"cmp"
	"slices"
)

// balloonRadius is the balloon body radius in world units.
const balloonRadius = 0.35

// disc is a visible balloon projected to the screen.
type disc struct {
	index  int
	x, y   float64
	radius float64
	depth  float64
}

func (d disc) hit() HitCircle {
	return HitCircle{CenterX: d.x, CenterY: d.y, Radius: d.radius}
}

// project appends the visible balloons in front of the camera to dst,
// farthest first so they can be painted in order.
func (g *Game) project(dst []disc) []disc {
	w, h := float64(g.width), float64(g.height)
	for _, i := range g.field.Frame().Visible {
		p := g.field.Current(i)
		sx, sy, scale, ok := g.camera.Project(p, w, h)
		if !ok {
			continue
		}
		dst = append(dst, disc{
			index:  i,
			x:      sx,
			y:      sy,
			radius: balloonRadius * scale,
			depth:  g.camera.Depth(p),
		})
	}
	slices.SortStableFunc(dst, func(a, b disc) int {
		return cmp.Compare(b.depth, a.depth)
	})
	return dst
}

// pick returns the nearest disc containing (x, y). discs must be sorted
// farthest first.
func pick(discs []disc, x, y float64) (disc, bool) {
	for i := len(discs) - 1; i >= 0; i-- {
		if discs[i].hit().Contains(x, y) {
			return discs[i], true
		}
	}
	return disc{}, false
}
