package state

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-booth-service/pkg/logger"
	"go.uber.org/zap"
)

// Refresher polls the store on a fixed interval. It is the only background
// writer of the snapshot besides post-commit refreshes.
type Refresher struct {
	store    *Store
	interval time.Duration
	logger   logger.ZapLogger
	onResult func(err error)
}

func NewRefresher(store *Store, interval time.Duration, log logger.ZapLogger) *Refresher {
	return &Refresher{store: store, interval: interval, logger: log}
}

// OnResult registers a hook called after every poll, e.g. to flip a health
// status.
func (r *Refresher) OnResult(fn func(err error)) {
	r.onResult = fn
}

func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("Starting state refresher", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Stopping state refresher")
			return
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *Refresher) poll(ctx context.Context) {
	_, err := r.store.Refresh(ctx)
	if err != nil && ctx.Err() == nil {
		r.logger.Error("Failed to refresh state", zap.Error(err))
	}
	if r.onResult != nil && ctx.Err() == nil {
		r.onResult(err)
	}
}
