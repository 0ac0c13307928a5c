// Package store persists balloon messages.
//
// Three backends implement [Store]: [Supabase] talks to the hosted
// PostgREST API the web client uses, [Postgres] connects to the same
// database directly, and [Memory] keeps messages in process for demos and
// tests. [Limited] rate limits sends on top of any of them.
package store

import (
	"context"
	"errors"

	"github.com/phanxgames/balloons"
)

// Table is the table messages are stored in.
const Table = "balloons"

// DefaultPageSize bounds a gallery page to a few hundred balloons.
const DefaultPageSize = 200

// ErrRateLimited is returned by Limited.Add when sends arrive too fast.
var ErrRateLimited = errors.New("store: too many messages, slow down")

// Page selects a window of messages, newest first.
type Page struct {
	Limit  int
	Offset int
}

// normalize fills in the default page size and clamps negative offsets.
func (p Page) normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Store adds and lists balloon messages.
type Store interface {
	// Add validates d and stores it, returning the stored item with its
	// ID and creation time.
	Add(ctx context.Context, d balloons.Draft) (balloons.Item, error)
	// List returns one page of messages, newest first.
	List(ctx context.Context, page Page) ([]balloons.Item, error)
}
