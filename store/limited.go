package store

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/phanxgames/balloons"
)

// Limited wraps a Store and rejects sends over a token-bucket rate with
// ErrRateLimited. Listing is not limited.
type Limited struct {
	Store
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewLimited allows perSecond sends with bursts of up to burst. A
// non-positive perSecond disables limiting.
func NewLimited(s Store, perSecond float64, burst int, logger *zap.Logger) *Limited {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limited{
		Store:   s,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// Add implements Store.
func (l *Limited) Add(ctx context.Context, d balloons.Draft) (balloons.Item, error) {
	if !l.limiter.Allow() {
		l.logger.Warn("message rejected", zap.Error(ErrRateLimited))
		return balloons.Item{}, ErrRateLimited
	}
	return l.Store.Add(ctx, d)
}
