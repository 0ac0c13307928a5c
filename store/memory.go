package store

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/phanxgames/balloons"
)

// Memory is an in-process Store. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	clock clock.Clock
	items []balloons.Item // oldest first
}

// NewMemory returns an empty Memory store. A nil clk uses the wall clock.
func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.New()
	}
	return &Memory{clock: clk}
}

// Add implements Store.
func (m *Memory) Add(_ context.Context, d balloons.Draft) (balloons.Item, error) {
	if err := d.Validate(); err != nil {
		return balloons.Item{}, err
	}
	item := d.Item()
	item.ID = uuid.NewString()
	item.CreatedAt = m.clock.Now().UTC()

	m.mu.Lock()
	m.items = append(m.items, item)
	m.mu.Unlock()
	return item, nil
}

// List implements Store.
func (m *Memory) List(ctx context.Context, page Page) ([]balloons.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	page = page.normalize()

	m.mu.RLock()
	out := make([]balloons.Item, len(m.items))
	copy(out, m.items)
	m.mu.RUnlock()

	// Equal timestamps list the latest insert first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	balloons.SortByRecency(out)

	if page.Offset >= len(out) {
		return []balloons.Item{}, nil
	}
	out = out[page.Offset:]
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, nil
}

// Len returns the number of stored messages.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
