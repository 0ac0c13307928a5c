package balloons

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/golang/geo/r3"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const (
	// InitialY is the height balloons start from before rising into place.
	InitialY = -10.0
	// Smoothing is the fraction of the remaining distance covered per frame.
	Smoothing = 0.02
	// Epsilon is the per-axis movement below which a frame counts as still,
	// and the distance within which an item counts as settled.
	Epsilon = 0.001
	// VisibleCount is the number of nearest items ranked for rendering.
	VisibleCount = 10
)

// ItemState tracks where an item is on its way to its target.
type ItemState uint8

const (
	StatePending    ItemState = iota // at its below-horizon start, not stepped yet
	StateConverging                  // moving toward its target
	StateSettled                     // within Epsilon of its target, no longer stepped
)

// String returns the state name.
func (s ItemState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateConverging:
		return "converging"
	case StateSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// FieldConfig holds the tuning constants of a Field. Zero fields are
// replaced by their defaults in NewField.
type FieldConfig struct {
	Scope       float64
	MinDistance float64
	// InitialY is the start height below the horizon. Nil uses the InitialY
	// constant; a pointer to zero starts balloons at ground level.
	InitialY     *float64
	Smoothing    float64
	Epsilon      float64
	VisibleCount int
	Strategy     VisibilityStrategy

	// Rand seeds target placement. Nil uses the global source.
	Rand *rand.Rand
	// Logger receives placement and debug messages. Nil disables logging.
	Logger *zap.Logger
}

// DefaultFieldConfig returns the gallery's stock tuning.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Scope:        DefaultScope,
		MinDistance:  DefaultMinDistance,
		InitialY:     lo.ToPtr(InitialY),
		Smoothing:    Smoothing,
		Epsilon:      Epsilon,
		VisibleCount: VisibleCount,
		Strategy:     WindowStrategy{},
	}
}

func (c *FieldConfig) applyDefaults() {
	d := DefaultFieldConfig()
	if c.Scope <= 0 {
		c.Scope = d.Scope
	}
	if c.MinDistance <= 0 {
		c.MinDistance = d.MinDistance
	}
	if c.InitialY == nil {
		c.InitialY = d.InitialY
	}
	if c.Smoothing <= 0 || c.Smoothing >= 1 {
		c.Smoothing = d.Smoothing
	}
	if c.Epsilon <= 0 {
		c.Epsilon = d.Epsilon
	}
	if c.VisibleCount <= 0 {
		c.VisibleCount = d.VisibleCount
	}
	if c.Strategy == nil {
		c.Strategy = d.Strategy
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Frame is what one Step produces for the renderer.
type Frame struct {
	// Moved is true when at least one item moved more than Epsilon on some
	// axis. Renderers may skip re-reading positions when it is false.
	Moved bool
	// Range spans the items selected for rendering.
	Range Range
	// Visible lists the selected indices. Owned by the Field and reused by
	// the next Step.
	Visible []int
}

// Placed pairs an item with its current position.
type Placed struct {
	Index    int
	Item     Item
	Position r3.Vector
}

// Field drives one gallery's worth of balloons: it assigns targets when the
// item list changes, eases current positions toward them every frame, and
// picks the subset nearest to the viewer.
//
// A Field is not safe for concurrent use.
type Field struct {
	cfg    FieldConfig
	layout Layout
	logger *zap.Logger
	debug  bool

	items   []Item
	targets []r3.Vector
	current []r3.Vector
	state   []ItemState

	frame  Frame
	viewer r3.Vector

	// Reused ranking buffers.
	order   []int
	dist    []float64
	visible []int
}

// NewField creates an empty field.
func NewField(cfg FieldConfig) *Field {
	cfg.applyDefaults()
	return &Field{
		cfg:    cfg,
		logger: cfg.Logger,
		layout: Layout{
			Scope:       cfg.Scope,
			MinDistance: cfg.MinDistance,
			Rand:        cfg.Rand,
		},
	}
}

// Config returns the field's effective configuration.
func (f *Field) Config() FieldConfig {
	return f.cfg
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (f *Field) SetDebugMode(enabled bool) {
	f.debug = enabled
}

// SetItems replaces the item list. If items holds exactly the IDs of the
// current list in another order, every item keeps its target and current
// position. Otherwise targets are generated for the whole batch and every
// item restarts below the horizon. Either way the visible subset is ranked
// again from the last viewer position, so Frame and VisibleItems describe
// the new list before the next Step.
func (f *Field) SetItems(items []Item) {
	if f.reorder(items) {
		f.frame.Range, f.frame.Visible = f.rank(f.viewer)
		return
	}

	placement := f.layout.Generate(len(items))
	if placement.Fallback > 0 {
		f.logger.Info("grid fallback engaged",
			zap.Int("items", len(items)),
			zap.Int("fallback", placement.Fallback),
			zap.Float64("scope", f.cfg.Scope),
			zap.Float64("minDistance", f.cfg.MinDistance))
	}

	n := len(items)
	startY := *f.cfg.InitialY
	f.items = items
	f.targets = placement.Points
	f.current = make([]r3.Vector, n)
	f.state = make([]ItemState, n)
	for i, t := range f.targets {
		f.current[i] = r3.Vector{X: t.X, Y: startY, Z: t.Z}
	}
	f.frame = Frame{}
	f.frame.Range, f.frame.Visible = f.rank(f.viewer)
}

// reorder adopts items when they are a permutation of the current list,
// carrying each item's layout along by ID.
func (f *Field) reorder(items []Item) bool {
	if len(items) == 0 || len(items) != len(f.items) {
		return false
	}
	prev := make(map[string]int, len(f.items))
	for i, it := range f.items {
		prev[it.ID] = i
	}
	if len(prev) != len(f.items) {
		return false // duplicate IDs, cannot key by ID
	}

	perm := make([]int, len(items))
	for i, it := range items {
		j, ok := prev[it.ID]
		if !ok {
			return false
		}
		delete(prev, it.ID)
		perm[i] = j
	}

	targets := make([]r3.Vector, len(items))
	current := make([]r3.Vector, len(items))
	state := make([]ItemState, len(items))
	for i, j := range perm {
		targets[i] = f.targets[j]
		current[i] = f.current[j]
		state[i] = f.state[j]
	}
	f.items, f.targets, f.current, f.state = items, targets, current, state
	return true
}

// Len returns the number of items.
func (f *Field) Len() int { return len(f.items) }

// Items returns the item list. The returned slice MUST NOT be mutated.
func (f *Field) Items() []Item { return f.items }

// Item returns the item at index i.
func (f *Field) Item(i int) Item { return f.items[i] }

// Target returns the target position of item i.
func (f *Field) Target(i int) r3.Vector { return f.targets[i] }

// Current returns the current position of item i.
func (f *Field) Current(i int) r3.Vector { return f.current[i] }

// State returns the animation state of item i.
func (f *Field) State(i int) ItemState { return f.state[i] }

// Frame returns the result of the most recent Step.
func (f *Field) Frame() Frame { return f.frame }

// Converge moves current toward target by factor of the remaining distance
// on each axis. For 0 < factor < 1 it never overshoots.
func Converge(current, target r3.Vector, factor float64) r3.Vector {
	return r3.Vector{
		X: current.X + (target.X-current.X)*factor,
		Y: current.Y + (target.Y-current.Y)*factor,
		Z: current.Z + (target.Z-current.Z)*factor,
	}
}

// Step advances every unsettled item one frame toward its target and
// recomputes the visible subset for a viewer at the given position.
func (f *Field) Step(viewer r3.Vector) Frame {
	var t0 time.Time
	if f.debug {
		t0 = time.Now()
	}

	moved := false
	eps := f.cfg.Epsilon
	for i, cur := range f.current {
		if f.state[i] == StateSettled {
			continue
		}
		target := f.targets[i]
		next := Converge(cur, target, f.cfg.Smoothing)
		if math.Abs(next.X-cur.X) > eps || math.Abs(next.Y-cur.Y) > eps || math.Abs(next.Z-cur.Z) > eps {
			moved = true
		}
		f.current[i] = next
		if next.Distance(target) <= eps {
			f.state[i] = StateSettled
		} else {
			f.state[i] = StateConverging
		}
	}

	var stepTime time.Duration
	if f.debug {
		stepTime = time.Since(t0)
		t0 = time.Now()
	}

	f.viewer = viewer
	f.frame.Moved = moved
	f.frame.Range, f.frame.Visible = f.rank(viewer)

	if f.debug {
		f.debugLog(debugStats{
			stepTime:  stepTime,
			rankTime:  time.Since(t0),
			items:     len(f.items),
			visible:   len(f.frame.Visible),
			moved:     moved,
			settled:   f.countState(StateSettled),
			windowLen: f.frame.Range.Len(),
		})
	}
	return f.frame
}

// rank selects the items to render. Lists no longer than VisibleCount are
// rendered whole.
func (f *Field) rank(viewer r3.Vector) (Range, []int) {
	n := len(f.current)
	f.visible = f.visible[:0]
	if n <= f.cfg.VisibleCount {
		for i := 0; i < n; i++ {
			f.visible = append(f.visible, i)
		}
		return Range{End: n}, f.visible
	}

	f.order = f.order[:0]
	f.dist = f.dist[:0]
	for i, p := range f.current {
		f.order = append(f.order, i)
		f.dist = append(f.dist, p.Distance(viewer))
	}
	dist := f.dist
	slices.SortStableFunc(f.order, func(a, b int) int {
		return cmp.Compare(dist[a], dist[b])
	})

	r, visible := f.cfg.Strategy.Select(f.order[:f.cfg.VisibleCount], f.visible)
	f.visible = visible
	return r, visible
}

// VisibleItems returns the items selected by the last Step or SetItems with
// their current positions, in the strategy's order.
func (f *Field) VisibleItems() []Placed {
	return lo.Map(f.frame.Visible, func(i int, _ int) Placed {
		return Placed{Index: i, Item: f.items[i], Position: f.current[i]}
	})
}

// Settled reports whether every item has reached its target.
func (f *Field) Settled() bool {
	return f.countState(StateSettled) == len(f.state)
}

func (f *Field) countState(s ItemState) int {
	return lo.CountBy(f.state, func(st ItemState) bool { return st == s })
}
