package balloons

import (
	"math/rand/v2"
	"testing"

	"github.com/golang/geo/r3"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestGenerateReturnsCount(t *testing.T) {
	for _, count := range []int{0, 1, 2, 5, 20, 100} {
		pts := Generate(count, DefaultScope, DefaultMinDistance)
		if len(pts) != count {
			t.Errorf("Generate(%d) returned %d points", count, len(pts))
		}
	}
}

func TestGenerateZeroIsEmptyNotNil(t *testing.T) {
	pts := Generate(0, 2, 1.5)
	if pts == nil {
		t.Fatal("Generate(0) = nil, want empty slice")
	}
	if len(pts) != 0 {
		t.Errorf("len = %d, want 0", len(pts))
	}
}

func TestGenerateNegativeCount(t *testing.T) {
	l := Layout{Scope: 2, MinDistance: 1.5}
	p := l.Generate(-3)
	if len(p.Points) != 0 || p.Fallback != 0 {
		t.Errorf("Generate(-3) = %d points, %d fallback; want 0, 0", len(p.Points), p.Fallback)
	}
}

func TestGenerateSingleWithinScope(t *testing.T) {
	for i := 0; i < 50; i++ {
		pts := Generate(1, 2, 1.5)
		if len(pts) != 1 {
			t.Fatalf("len = %d, want 1", len(pts))
		}
		p := pts[0]
		if p.X < -2 || p.X > 2 || p.Y < -2 || p.Y > 2 || p.Z < -2 || p.Z > 2 {
			t.Fatalf("point %v outside [-2,2]^3", p)
		}
	}
}

func TestGenerateSampledPointsSeparated(t *testing.T) {
	l := Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(7)}
	p := l.Generate(5)
	if len(p.Points) != 5 {
		t.Fatalf("len = %d, want 5", len(p.Points))
	}
	sampled := p.Points[:len(p.Points)-p.Fallback]
	for i := range sampled {
		for j := i + 1; j < len(sampled); j++ {
			if d := sampled[i].Distance(sampled[j]); d < 1.5 {
				t.Errorf("points %d and %d are %f apart, want >= 1.5", i, j, d)
			}
		}
	}
	for _, pt := range sampled {
		if pt.X < -2 || pt.X > 2 || pt.Y < -2 || pt.Y > 2 || pt.Z < -2 || pt.Z > 2 {
			t.Errorf("sampled point %v outside [-2,2]^3", pt)
		}
	}
}

func TestGenerateSparseRarelyFallsBack(t *testing.T) {
	fallbacks := 0
	for seed := uint64(0); seed < 20; seed++ {
		l := Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(seed)}
		if l.Generate(5).Fallback > 0 {
			fallbacks++
		}
	}
	if fallbacks > 2 {
		t.Errorf("5 points in [-2,2]^3 fell back to the grid in %d/20 runs", fallbacks)
	}
}

func TestGenerateTwentyMostlySampled(t *testing.T) {
	const runs = 50
	fallbacks := 0
	for seed := uint64(0); seed < runs; seed++ {
		l := Layout{Scope: DefaultScope, MinDistance: DefaultMinDistance, Rand: seeded(seed)}
		p := l.Generate(20)
		if len(p.Points) != 20 {
			t.Fatalf("seed %d: len = %d, want 20", seed, len(p.Points))
		}
		if p.Fallback > 0 {
			fallbacks++
			continue
		}
		for i := range p.Points {
			for j := i + 1; j < len(p.Points); j++ {
				if d := p.Points[i].Distance(p.Points[j]); d < DefaultMinDistance {
					t.Errorf("seed %d: points %d and %d are %f apart", seed, i, j, d)
				}
			}
		}
	}
	// Sampling usually places all 20; a few runs exhaust the attempt budget.
	if fallbacks > runs/4 {
		t.Errorf("20 points in [-2,2]^3 fell back to the grid in %d/%d runs", fallbacks, runs)
	}
}

func TestGenerateDenseFallsBackToDistinctPoints(t *testing.T) {
	l := Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(3)}
	p := l.Generate(1000)
	if len(p.Points) != 1000 {
		t.Fatalf("len = %d, want 1000", len(p.Points))
	}
	if p.Fallback == 0 {
		t.Fatal("expected grid fallback for 1000 points in [-2,2]^3 at distance 1.5")
	}
	seen := make(map[r3.Vector]int, len(p.Points))
	for i, pt := range p.Points {
		if j, ok := seen[pt]; ok {
			t.Fatalf("points %d and %d are both %v", j, i, pt)
		}
		seen[pt] = i
	}
}

func TestGridFallbackDeterministic(t *testing.T) {
	a := (&Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(1)}).Generate(300)
	b := (&Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(99)}).Generate(300)

	first := max(300-a.Fallback, 300-b.Fallback)
	for slot := first; slot < 300; slot++ {
		if a.Points[slot] != b.Points[slot] {
			t.Errorf("slot %d: %v vs %v, want identical grid points", slot, a.Points[slot], b.Points[slot])
		}
	}
}

func TestGridPointSpacing(t *testing.T) {
	const count = 27
	seen := make(map[r3.Vector]bool)
	for slot := 0; slot < count; slot++ {
		p := GridPoint(slot, count, 1.5)
		if seen[p] {
			t.Fatalf("slot %d reuses point %v", slot, p)
		}
		seen[p] = true
	}
	// 3x3x3 grid centred on the origin.
	if got := GridPoint(0, count, 1.5); got != (r3.Vector{X: -1.5, Y: -1.5, Z: -1.5}) {
		t.Errorf("GridPoint(0) = %v, want (-1.5,-1.5,-1.5)", got)
	}
	if got := GridPoint(13, count, 1.5); got != (r3.Vector{}) {
		t.Errorf("GridPoint(13) = %v, want origin", got)
	}
	if got := GridPoint(1, count, 1.5); got.X != 0 || got.Y != -1.5 {
		t.Errorf("GridPoint(1) = %v, want X step of 1.5", got)
	}
}

func TestGridSide(t *testing.T) {
	tests := []struct{ count, want int }{
		{0, 1}, {1, 1}, {2, 2}, {8, 2}, {9, 3}, {27, 3}, {28, 4}, {1000, 10}, {1001, 11},
	}
	for _, tt := range tests {
		if got := gridSide(tt.count); got != tt.want {
			t.Errorf("gridSide(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestLayoutSeedReproducible(t *testing.T) {
	a := (&Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(42)}).Generate(8)
	b := (&Layout{Scope: 2, MinDistance: 1.5, Rand: seeded(42)}).Generate(8)
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("point %d differs across identical seeds: %v vs %v", i, a.Points[i], b.Points[i])
		}
	}
}
