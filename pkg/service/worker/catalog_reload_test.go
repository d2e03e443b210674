package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/pathfinder/pkg/service/worker"
)

type countingReloader struct {
	mu    sync.Mutex
	count int
}

func (r *countingReloader) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
}

func (r *countingReloader) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

func TestCatalogReloadWorker_ReloadsPeriodically(t *testing.T) {
	reloader := &countingReloader{}
	w := worker.NewCatalogReloadWorker(reloader, 20*time.Millisecond)

	gt.NoError(t, w.Start(context.Background())).Required()

	deadline := time.Now().Add(2 * time.Second)
	for reloader.calls() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	gt.Bool(t, reloader.calls() >= 2).True()
}

func TestCatalogReloadWorker_StopBeforeFirstTick(t *testing.T) {
	reloader := &countingReloader{}
	w := worker.NewCatalogReloadWorker(reloader, time.Hour)

	gt.NoError(t, w.Start(context.Background())).Required()
	w.Stop()

	gt.Number(t, reloader.calls()).Equal(0)
}

func TestCatalogReloadWorker_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reloader := &countingReloader{}
	w := worker.NewCatalogReloadWorker(reloader, time.Hour)

	gt.NoError(t, w.Start(ctx)).Required()
	cancel()

	done := make(chan struct{})
	go func() {
		w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancel")
	}
}
