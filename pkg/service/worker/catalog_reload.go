package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/pathfinder/pkg/utils/logging"
)

// Reloader rematerializes and publishes the survey catalog
type Reloader interface {
	Reload(ctx context.Context)
}

// CatalogReloadWorker periodically reloads the catalog so changes to remote
// custom questions (gs://) are picked up without a restart.
//
// Architecture assumptions:
// - Each server instance reloads independently; catalogs may briefly differ between instances
type CatalogReloadWorker struct {
	reloader Reloader
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewCatalogReloadWorker creates a new worker reloading every interval
func NewCatalogReloadWorker(reloader Reloader, interval time.Duration) *CatalogReloadWorker {
	return &CatalogReloadWorker{
		reloader: reloader,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background reload loop. The catalog is already loaded at
// startup, so the first reload happens after one interval.
func (w *CatalogReloadWorker) Start(ctx context.Context) error {
	logging.Default().Info("Catalog reload worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *CatalogReloadWorker) Stop() {
	logging.Default().Info("Catalog reload worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Catalog reload worker stopped")
}

func (w *CatalogReloadWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.reload(ctx)

		case <-w.stopCh:
			logging.Default().Info("Catalog reload worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("Catalog reload worker context cancelled")
			return
		}
	}
}

func (w *CatalogReloadWorker) reload(ctx context.Context) {
	startTime := time.Now()
	w.reloader.Reload(ctx)
	logging.Default().Info("Catalog reload completed",
		"duration", time.Since(startTime).String())
}
