package docstore

import (
	"context"

	"github.com/sirdesai22/hackathon-docsync/internal/logger"
	"github.com/sirdesai22/hackathon-docsync/internal/metrics"
)

// bestEffort runs an optional step. A failure is logged and counted but
// never returned to the caller.
func bestEffort(ctx context.Context, step string, fn func(context.Context) error) bool {
	if err := fn(ctx); err != nil {
		metrics.CleanupFailures.Inc()
		logger.Warn().Err(err).Str("step", step).Msg("⚠️ Optional step failed, continuing")
		return false
	}
	return true
}
