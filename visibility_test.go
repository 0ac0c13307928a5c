package balloons

import (
	"slices"
	"testing"
)

func TestRangeLenContains(t *testing.T) {
	r := Range{Start: 2, End: 5}
	if r.Len() != 3 {
		t.Errorf("Len = %d, want 3", r.Len())
	}
	for i, want := range map[int]bool{1: false, 2: true, 4: true, 5: false} {
		if got := r.Contains(i); got != want {
			t.Errorf("Contains(%d) = %v, want %v", i, got, want)
		}
	}
	if (Range{Start: 4, End: 1}).Len() != 0 {
		t.Error("inverted range should be empty")
	}
}

func TestEnvelope(t *testing.T) {
	if got := envelope(nil); got != (Range{}) {
		t.Errorf("envelope(nil) = %+v, want empty", got)
	}
	if got := envelope([]int{7, 2, 9, 4}); got != (Range{Start: 2, End: 10}) {
		t.Errorf("envelope = %+v, want [2,10)", got)
	}
	if got := envelope([]int{3}); got != (Range{Start: 3, End: 4}) {
		t.Errorf("envelope single = %+v, want [3,4)", got)
	}
}

func TestWindowStrategySelect(t *testing.T) {
	r, vis := WindowStrategy{}.Select([]int{6, 3, 4}, nil)
	if r != (Range{Start: 3, End: 7}) {
		t.Errorf("Range = %+v, want [3,7)", r)
	}
	if !slices.Equal(vis, []int{3, 4, 5, 6}) {
		t.Errorf("Visible = %v, want [3 4 5 6]", vis)
	}
}

func TestNearestStrategySelectReusesBuffer(t *testing.T) {
	buf := make([]int, 0, 8)
	r, vis := NearestStrategy{}.Select([]int{6, 3, 4}, buf)
	if r != (Range{Start: 3, End: 7}) {
		t.Errorf("Range = %+v, want [3,7)", r)
	}
	if !slices.Equal(vis, []int{6, 3, 4}) {
		t.Errorf("Visible = %v, want [6 3 4]", vis)
	}
	if &vis[0] != &buf[:1][0] {
		t.Error("Select did not append into the provided buffer")
	}
}

func TestStrategyByName(t *testing.T) {
	if s, ok := StrategyByName("window"); !ok || s != (WindowStrategy{}) {
		t.Errorf("window -> %T, %v", s, ok)
	}
	if s, ok := StrategyByName(""); !ok || s != (WindowStrategy{}) {
		t.Errorf("empty -> %T, %v", s, ok)
	}
	if s, ok := StrategyByName("nearest"); !ok || s != (NearestStrategy{}) {
		t.Errorf("nearest -> %T, %v", s, ok)
	}
	if _, ok := StrategyByName("closest"); ok {
		t.Error("unknown strategy name accepted")
	}
}
