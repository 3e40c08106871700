package audit

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// RunRetention deletes entries older than maxAge once at start and then on
// every interval, until ctx is cancelled. A non-positive maxAge keeps
// everything and returns immediately.
func (s *Store) RunRetention(ctx context.Context, maxAge, interval time.Duration, logger *log.Logger) {
	if maxAge <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Hour
	}

	prune := func() {
		n, err := s.DeleteBefore(ctx, time.Now().Add(-maxAge))
		if err != nil {
			if ctx.Err() == nil && logger != nil {
				logger.Warn("audit retention", "err", err)
			}
			return
		}
		if n > 0 && logger != nil {
			logger.Info("pruned audit entries", "count", n, "max_age", maxAge)
		}
	}

	prune()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			prune()
		}
	}
}
