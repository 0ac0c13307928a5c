package store

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons/config"
)

// Open builds the Store cfg selects, wrapped in Limited when a rate limit
// is configured. The returned close function releases any connection.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func() error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("store")
	noop := func() error { return nil }

	var (
		s       Store
		closeFn = noop
	)
	switch cfg.Store {
	case config.StoreSupabase:
		sb, err := NewSupabase(SupabaseConfig{
			URL:    cfg.SupabaseURL,
			APIKey: cfg.SupabaseKey,
			Logger: logger,
		})
		if err != nil {
			return nil, noop, err
		}
		s = sb
	case config.StorePostgres:
		pg, err := OpenPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return nil, noop, err
		}
		if err := pg.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, noop, err
		}
		s, closeFn = pg, pg.Close
	case config.StoreMemory:
		s = NewMemory(nil)
	default:
		return nil, noop, errors.Errorf("store: unknown backend %q", cfg.Store)
	}

	logger.Info("store opened", zap.String("backend", cfg.Store))
	if cfg.RateLimit > 0 {
		s = NewLimited(s, cfg.RateLimit, cfg.RateBurst, logger)
	}
	return s, closeFn, nil
}
