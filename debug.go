package balloons

import (
	"time"

	"go.uber.org/zap"
)

// debugStats holds per-frame timing and visibility metrics.
// Only populated when the field is in debug mode.
type debugStats struct {
	stepTime  time.Duration
	rankTime  time.Duration
	items     int
	visible   int
	settled   int
	windowLen int
	moved     bool
}

// debugLog writes one frame's stats at debug level.
func (f *Field) debugLog(stats debugStats) {
	if !f.debug {
		return
	}
	f.logger.Debug("field step",
		zap.Duration("step", stats.stepTime),
		zap.Duration("rank", stats.rankTime),
		zap.Duration("total", stats.stepTime+stats.rankTime),
		zap.Int("items", stats.items),
		zap.Int("visible", stats.visible),
		zap.Int("window", stats.windowLen),
		zap.Int("settled", stats.settled),
		zap.Bool("moved", stats.moved),
	)
}
