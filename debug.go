package morph

import (
	"log/slog"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime time.Duration
	sortTime     time.Duration
	submitTime   time.Duration
	commandCount int
	labelCount   int
}

// debugLog writes timing and draw stats at Debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	total := stats.traverseTime + stats.sortTime + stats.submitTime
	s.logger.Debug("draw", slog.Group("morph",
		slog.Duration("traverse", stats.traverseTime),
		slog.Duration("sort", stats.sortTime),
		slog.Duration("submit", stats.submitTime),
		slog.Duration("total", total),
		slog.Int("triangles", stats.commandCount),
		slog.Int("labels", stats.labelCount),
	))
}
