package balloons

// Range is a half-open index window [Start, End) over the item list.
type Range struct {
	Start, End int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether index i lies inside the range.
func (r Range) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// envelope returns the smallest range covering every index in idx.
func envelope(idx []int) Range {
	if len(idx) == 0 {
		return Range{}
	}
	lo, hi := idx[0], idx[0]
	for _, i := range idx[1:] {
		if i < lo {
			lo = i
		}
		if i > hi {
			hi = i
		}
	}
	return Range{Start: lo, End: hi + 1}
}

// VisibilityStrategy decides which items are drawn given the K nearest
// indices, ordered by ascending distance to the viewer. It appends the
// selected indices to dst and returns them with the range they span.
type VisibilityStrategy interface {
	Select(nearest []int, dst []int) (Range, []int)
}

// WindowStrategy draws every index in the contiguous range that envelops
// the K nearest items. The window can hold far more than K items when the
// nearest ones are spread out in the list; in exchange it maps onto a
// plain slice of the item list.
type WindowStrategy struct{}

// Select implements VisibilityStrategy.
func (WindowStrategy) Select(nearest []int, dst []int) (Range, []int) {
	r := envelope(nearest)
	for i := r.Start; i < r.End; i++ {
		dst = append(dst, i)
	}
	return r, dst
}

// NearestStrategy draws exactly the K nearest items, nearest first. The
// reported range still envelops them.
type NearestStrategy struct{}

// Select implements VisibilityStrategy.
func (NearestStrategy) Select(nearest []int, dst []int) (Range, []int) {
	return envelope(nearest), append(dst, nearest...)
}

// StrategyByName maps "window" and "nearest" to their strategies. Unknown
// names return nil and false.
func StrategyByName(name string) (VisibilityStrategy, bool) {
	switch name {
	case "", "window":
		return WindowStrategy{}, true
	case "nearest":
		return NearestStrategy{}, true
	default:
		return nil, false
	}
}
