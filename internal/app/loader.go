package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/five82/catalogue/internal/catalog"
	"github.com/five82/catalogue/internal/state"
)

// refresh fetches the catalogue once and publishes the outcome. Fetch
// failures are recorded in the store, never returned.
func refresh(ctx context.Context, store *state.Store, src catalog.Source, logger *zap.Logger) {
	started := time.Now()
	items, err := catalog.Load(ctx, src, logger)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Warn("catalogue load failed", zap.Error(err))
		store.Update(nil, err)
		return
	}
	logger.Debug("catalogue refreshed",
		zap.Int("items", len(items)),
		zap.Duration("took", time.Since(started)),
	)
	store.Update(items, nil)
}
