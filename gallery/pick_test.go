package gallery

import "testing"

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 10, CenterY: 10, Radius: 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{15, 10, true}, // on the edge
		{13, 13, true},
		{14, 14, false},
		{-10, 10, false},
	}
	for _, tt := range tests {
		if got := c.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestPickPrefersNearest(t *testing.T) {
	// Sorted farthest first, as project returns them.
	discs := []disc{
		{index: 0, x: 100, y: 100, radius: 30, depth: 9},
		{index: 1, x: 110, y: 100, radius: 30, depth: 5},
		{index: 2, x: 400, y: 100, radius: 30, depth: 2},
	}

	d, ok := pick(discs, 105, 100)
	if !ok || d.index != 1 {
		t.Errorf("pick(overlap) = %d, %v; want 1", d.index, ok)
	}
	d, ok = pick(discs, 75, 100)
	if !ok || d.index != 0 {
		t.Errorf("pick(far only) = %d, %v; want 0", d.index, ok)
	}
	if _, ok := pick(discs, 250, 300); ok {
		t.Error("pick in empty space should miss")
	}
	if _, ok := pick(nil, 0, 0); ok {
		t.Error("pick with no discs should miss")
	}
}

func TestProjectSortsFarthestFirst(t *testing.T) {
	g := newTestGame(Options{})
	g.SetItems(makeItems(8))
	settle(t, g)

	if len(g.discs) == 0 {
		t.Fatal("no discs projected")
	}
	for i := 1; i < len(g.discs); i++ {
		if g.discs[i].depth > g.discs[i-1].depth {
			t.Fatalf("discs[%d].depth = %f > discs[%d].depth = %f", i, g.discs[i].depth, i-1, g.discs[i-1].depth)
		}
	}
	for _, d := range g.discs {
		if d.radius <= 0 {
			t.Errorf("disc %d radius = %f", d.index, d.radius)
		}
	}
}

func TestProjectSkipsBehindCamera(t *testing.T) {
	g := newTestGame(Options{})
	g.SetItems(makeItems(1))
	settle(t, g)

	// Slide the orbit past the balloon so it ends up behind the camera.
	p := g.field.Current(0)
	g.camera.Target = p.Add(p.Sub(g.camera.Position()).Normalize().Mul(20))
	g.discs = g.project(g.discs[:0])
	if len(g.discs) != 0 {
		t.Errorf("balloon behind the camera projected: %+v", g.discs)
	}
}
